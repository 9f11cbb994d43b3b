package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// NoteIndent is how far note bodies are indented when rendered.
const NoteIndent = 2

// RenderMarkdown renders a note body for the terminal, wrapped at width.
// The output always ends in exactly one newline; an empty body renders as
// an empty string.
func RenderMarkdown(content string, width int) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(noteStyle()),
		glamour.WithWordWrap(width-NoteIndent),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// StripTitle drops a leading level-1 heading equal to title, so a body is
// not printed under its own title twice.
func StripTitle(content, title string) string {
	trimmed := strings.TrimLeft(content, "\n")
	first, rest, _ := strings.Cut(trimmed, "\n")
	heading, ok := strings.CutPrefix(first, "# ")
	if !ok || strings.TrimSpace(heading) != title {
		return content
	}
	return strings.TrimLeft(rest, "\n")
}

func noteStyle() ansi.StyleConfig {
	muted := ptr("8")
	var accent *string
	if color, ok := AccentColor(); ok {
		accent = ptr(color)
	}
	yes := ptr(true)

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{Margin: ptr(uint(NoteIndent))},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockSuffix: "\n", Bold: yes},
		},
		H1:        ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Color: accent, Underline: yes}},
		H2:        ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Color: accent}},
		H3:        ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "› "}},
		Paragraph: ansi.StyleBlock{},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: muted, Italic: yes},
			Indent:         ptr(uint(1)),
			IndentToken:    ptr("┃ "),
		},
		List:          ansi.StyleList{LevelIndent: NoteIndent},
		Item:          ansi.StylePrimitive{BlockPrefix: "- "},
		Enumeration:   ansi.StylePrimitive{BlockPrefix: ". "},
		Task:          ansi.StyleTask{Ticked: "☑ ", Unticked: "☐ "},
		Emph:          ansi.StylePrimitive{Italic: yes},
		Strong:        ansi.StylePrimitive{Bold: yes},
		Strikethrough: ansi.StylePrimitive{CrossedOut: yes},
		HorizontalRule: ansi.StylePrimitive{
			Color:  muted,
			Format: "\n" + strings.Repeat("─", 12) + "\n",
		},
		// Links between notes are plain filenames; show them in the accent
		// colour and keep URLs muted.
		Link:     ansi.StylePrimitive{Color: muted},
		LinkText: ansi.StylePrimitive{Color: accent, Underline: yes},
		Code:     ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Color: accent}},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: muted},
				Margin:         ptr(uint(NoteIndent)),
			},
		},
		Table: ansi.StyleTable{
			CenterSeparator: ptr("┼"),
			ColumnSeparator: ptr("│"),
			RowSeparator:    ptr("─"),
		},
	}
}

func ptr[T any](v T) *T { return &v }
