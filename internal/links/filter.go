package links

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// Filter reduces raw hrefs to external URLs using host substring terms.
// An empty list puts no constraint on its direction.
type Filter struct {
	Blacklist []string
	Whitelist []string
	Logger    *slog.Logger
}

// Parse decomposes raw into a URL. Surrounding spaces and control characters
// are dropped first. When net/url rejects the string, only scheme and host
// are recovered from a "scheme://authority" prefix; anything else parses to
// an empty URL, which has no host and is therefore never external.
func Parse(raw string) *url.URL {
	s := clean(raw)
	u, err := url.Parse(s)
	if err != nil {
		return lenientParse(s)
	}
	return u
}

// clean trims C0 controls and spaces and removes embedded tabs and newlines
func clean(raw string) string {
	s := strings.TrimFunc(raw, func(r rune) bool { return r <= ' ' })
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
}

var schemeRegex = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.-]*):`)

func lenientParse(s string) *url.URL {
	m := schemeRegex.FindStringSubmatch(s)
	if m == nil {
		return &url.URL{}
	}
	rest, ok := strings.CutPrefix(s[len(m[0]):], "//")
	if !ok {
		return &url.URL{Scheme: strings.ToLower(m[1])}
	}
	authority := rest
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		authority = rest[:i]
	}
	// unbalanced IPv6 brackets have no usable host
	if strings.Count(authority, "[") != strings.Count(authority, "]") {
		return &url.URL{}
	}
	if i := strings.LastIndex(authority, "@"); i >= 0 {
		authority = authority[i+1:]
	}
	return &url.URL{Scheme: strings.ToLower(m[1]), Host: authority}
}

// parsedLink keeps the href as found next to its decomposition, so output is
// not re-encoded by url.URL.String
type parsedLink struct {
	raw string
	u   *url.URL
}

// IsExternal reports whether u points off-site, i.e. has a host.
func IsExternal(u *url.URL) bool {
	return u.Host != ""
}

// Apply runs, in order: host presence, blacklist exclusion, whitelist
// narrowing over what the blacklist left. Survivors keep their input order
// and are emitted as found, minus surrounding whitespace.
func (f Filter) Apply(raw []string) []string {
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}

	parsed := make([]parsedLink, 0, len(raw))
	for _, r := range raw {
		parsed = append(parsed, parsedLink{raw: clean(r), u: Parse(r)})
	}

	external := parsed[:0]
	for _, l := range parsed {
		if !IsExternal(l.u) {
			logger.Debug("Excluding relative link", "url", l.raw)
			continue
		}
		external = append(external, l)
	}
	parsed = external

	if len(f.Blacklist) > 0 {
		kept := make([]parsedLink, 0, len(parsed))
		for _, l := range parsed {
			if hostMatches(l.u, f.Blacklist) {
				logger.Debug("Excluding blacklisted link", "url", l.raw)
				continue
			}
			kept = append(kept, l)
		}
		logger.Debug("Applied blacklist", "remaining", len(kept))
		parsed = kept
	}

	if len(f.Whitelist) > 0 {
		kept := make([]parsedLink, 0, len(parsed))
		for _, l := range parsed {
			if !hostMatches(l.u, f.Whitelist) {
				logger.Debug("Excluding non-whitelisted link", "url", l.raw)
				continue
			}
			kept = append(kept, l)
		}
		logger.Debug("Applied whitelist", "remaining", len(kept))
		parsed = kept
	}

	out := make([]string, 0, len(parsed))
	for _, l := range parsed {
		out = append(out, l.raw)
	}
	return out
}

// hostMatches reports whether the host contains any term, ignoring case.
func hostMatches(u *url.URL, terms []string) bool {
	host := strings.ToLower(u.Host)
	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(host, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
