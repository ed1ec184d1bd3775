package ingest

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// Regex for valid subreddit names (after lowercasing)
var subNameRegex = regexp.MustCompile(`^[a-z0-9_]{3,21}$`)

// LoadList reads a line-delimited term list. Blank lines and lines starting
// with '#' are skipped, terms are trimmed and lowercased. Any I/O failure is
// logged and yields an empty list.
func LoadList(path string, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		logger.Debug("List file not configured")
		return []string{}
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Warn("Could not load list, using empty list", "path", path, "err", err)
		return []string{}
	}
	defer f.Close()

	terms, err := ReadList(f)
	if err != nil {
		logger.Warn("Could not read list, using empty list", "path", path, "err", err)
		return []string{}
	}
	return terms
}

// ReadList parses the list format from r.
func ReadList(r io.Reader) ([]string, error) {
	terms := []string{}
	scanner := bufio.NewScanner(stripBOM(r))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return terms, nil
}

// LoadSubreddits loads the target subreddit list. A leading "r/" or "/r/" is
// dropped and names that are not valid subreddit names are skipped (fail-soft).
func LoadSubreddits(path string, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.Default()
	}

	var subs []string
	for _, term := range LoadList(path, logger) {
		sub := strings.TrimPrefix(strings.TrimPrefix(term, "/"), "r/")
		if !subNameRegex.MatchString(sub) {
			logger.Warn("Skipping invalid subreddit name", "name", term)
			continue
		}
		subs = append(subs, sub)
	}
	return subs
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
