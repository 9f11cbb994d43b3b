package note

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// Title returns the text of the first top-level heading in the body. Without
// one it falls back to the frontmatter name, then the identifier name.
func (n *Note) Title() string {
	if h := firstHeading(n.Content); h != "" {
		return h
	}
	if n.Matter.Name != "" {
		return n.Matter.Name
	}
	return n.ID.Name
}

func firstHeading(content string) string {
	src := []byte(content)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var title string
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok || heading.Level != 1 {
			return ast.WalkContinue, nil
		}

		var b strings.Builder
		_ = ast.Walk(heading, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
			if t, ok := child.(*ast.Text); ok && entering {
				b.Write(t.Segment.Value(src))
			}
			return ast.WalkContinue, nil
		})
		if s := strings.TrimSpace(b.String()); s != "" {
			title = s
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}
