package emailhtml

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	blockTags = map[string]bool{
		"p": true, "div": true, "table": true, "tr": true, "li": true, "ul": true, "ol": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true, "hr": true,
		"blockquote": true, "section": true, "header": true, "footer": true,
	}
	spaceRun = regexp.MustCompile(`[ \t\f\r\x{00a0}]+`)
	blankRun = regexp.MustCompile(`\n{3,}`)
)

// PlainText extracts the plain-text alternative of a rendered email. Links keep
// their target in parentheses.
func PlainText(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}
	doc.Find("head, script, style, title").Remove()

	var b strings.Builder
	writeText(&b, doc.Find("body"))

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	text := blankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text), nil
}

func writeText(b *strings.Builder, sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		name := goquery.NodeName(node)
		switch name {
		case "#text":
			b.WriteString(strings.ReplaceAll(node.Text(), "\n", " "))
			return
		case "#comment":
			return
		case "br":
			b.WriteString("\n")
			return
		case "img":
			return
		}

		// the preheader is hidden from readers
		if style, ok := node.Attr("style"); ok && strings.Contains(style, "display:none") {
			return
		}

		if blockTags[name] {
			b.WriteString("\n")
		}
		if name == "td" {
			b.WriteString(" ")
		}
		writeText(b, node)

		if name == "a" {
			href, _ := node.Attr("href")
			label := strings.TrimSpace(node.Text())
			if href != "" && href != "#" && href != label && !strings.HasPrefix(href, "data:") {
				b.WriteString(" (" + href + ")")
			}
		}
		if blockTags[name] {
			b.WriteString("\n")
		}
	})
}
