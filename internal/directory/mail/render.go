package mail

import (
	"strings"

	"golang.org/x/net/html"
)

// linkPlaceholder is the literal token email authors put in their bodies
// where the per-recipient registration link should appear.
const linkPlaceholder = "{link}"

// InviteLink builds the registration URL for a minted invite code.
func InviteLink(baseURL, code string) string {
	return strings.TrimRight(baseURL, "/") + "/create-account?invite=" + code
}

// RenderBody substitutes every occurrence of the link placeholder.
func RenderBody(body, link string) string {
	return strings.ReplaceAll(body, linkPlaceholder, link)
}

// StripHTML reduces an HTML body to its visible text, used as the plain
// text alternative when the author supplies none. Script and style
// contents are dropped; block-ish elements become line breaks so the text
// part stays readable.
func StripHTML(src string) string {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		// Parse only fails on reader errors, not malformed markup, but
		// fall back to the raw source rather than losing the body.
		return src
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "head":
				return
			case "br", "p", "div", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6":
				if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
					b.WriteByte('\n')
				}
			}
		case html.TextNode:
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	lines := strings.Split(b.String(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}
