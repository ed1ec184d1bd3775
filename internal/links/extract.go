package links

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/qepting91/saved-links/internal/domain"
)

// Extract returns the href of every anchor in the item's rendered body, in
// document order. removed reports that the body was empty, in which case no
// parsing is attempted. Anchors without an href are skipped.
func Extract(item domain.SavedItem) (hrefs []string, removed bool) {
	body, ok := item.RenderedBody()
	if !ok {
		return []string{}, false
	}
	if strings.TrimSpace(body) == "" {
		return []string{}, true
	}

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return []string{}, false
	}

	hrefs = []string{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href, found := attr(n, "href"); found {
				hrefs = append(hrefs, href)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return hrefs, false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}
