package matter

import (
	"errors"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestDefault(t *testing.T) {
	got := string(Default("recipe"))
	want := "---\nname: recipe\n---\n"
	if got != want {
		t.Fatalf("Default = %q, want %q", got, want)
	}

	block, body, err := Split(got)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if body != "" {
		t.Errorf("body = %q, want empty", body)
	}
	m, err := Parse(block)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !Equal(m, New("recipe")) {
		t.Errorf("parsed default = %#v, want name only", m)
	}
}

func TestSerializeEmptyListsExplicit(t *testing.T) {
	got := Serialize(Matter{Name: "a"})
	want := "---\nname: a\ntags: []\nlinks: []\n---\n"
	if got != want {
		t.Fatalf("Serialize = %q, want %q", got, want)
	}
}

func TestSerializeLists(t *testing.T) {
	got := Serialize(Matter{
		Name:  "a",
		Tags:  []string{"software", "go"},
		Links: []string{"1600000000-b.md"},
	})
	want := "---\nname: a\ntags:\n  - software\n  - go\nlinks:\n  - 1600000000-b.md\n---\n"
	if got != want {
		t.Fatalf("Serialize =\n%s\nwant\n%s", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		block   string
		want    Matter
		wantErr bool
	}{
		{
			name:  "full",
			block: "name: a\ntags:\n - x\n - y\nlinks:\n - 1-b.md",
			want:  Matter{Name: "a", Tags: []string{"x", "y"}, Links: []string{"1-b.md"}},
		},
		{
			name:  "flow lists",
			block: "name: a\ntags: [x]\nlinks: []",
			want:  Matter{Name: "a", Tags: []string{"x"}},
		},
		{
			name:  "empty block",
			block: "",
			want:  Matter{},
		},
		{name: "unknown key", block: "name: a\ntitle: nope", wantErr: true},
		{name: "bad yaml", block: "name: [unterminated", wantErr: true},
		{name: "tags not a list", block: "name: a\ntags: {x: 1}", wantErr: true},
		{name: "duplicate tag", block: "name: a\ntags: [x, x]", wantErr: true},
		{name: "duplicate link", block: "name: a\nlinks: [1-b.md, 1-b.md]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.block)
			if tt.wantErr {
				if !errors.Is(err, ErrFrontmatter) {
					t.Fatalf("expected ErrFrontmatter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !Equal(got, tt.want) {
				t.Fatalf("Parse = %#v, want %#v", got, tt.want)
			}
			if got.Tags == nil || got.Links == nil {
				t.Errorf("expected non-nil lists, got %#v", got)
			}
		})
	}
}

func TestParseRejectsOversizedBlock(t *testing.T) {
	block := "name: " + strings.Repeat("a", MaxBlockBytes)
	var fmErr *Error
	if _, err := Parse(block); !errors.As(err, &fmErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantBlock string
		wantBody  string
		wantErr   bool
	}{
		{name: "block and body", raw: "---\nname: a\n---\n# Title\n\nbody\n", wantBlock: "name: a\n", wantBody: "# Title\n\nbody\n"},
		{name: "no body", raw: "---\nname: a\n---\n", wantBlock: "name: a\n", wantBody: ""},
		{name: "no trailing newline", raw: "---\nname: a\n---", wantBlock: "name: a\n", wantBody: ""},
		{name: "empty block", raw: "---\n---\nbody", wantBlock: "", wantBody: "body"},
		{name: "crlf", raw: "---\r\nname: a\r\n---\r\nbody\r\n", wantBlock: "name: a\r\n", wantBody: "body\r\n"},
		{name: "dashes inside body kept", raw: "---\nname: a\n---\nx\n---\ny\n", wantBlock: "name: a\n", wantBody: "x\n---\ny\n"},
		{name: "missing opening", raw: "# just text\n", wantErr: true},
		{name: "missing closing", raw: "---\nname: a\n", wantErr: true},
		{name: "only opening", raw: "---", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, body, err := Split(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrFrontmatter) {
					t.Fatalf("expected ErrFrontmatter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Split: %v", err)
			}
			if block != tt.wantBlock {
				t.Errorf("block = %q, want %q", block, tt.wantBlock)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := Matter{Name: "a", Tags: []string{"x"}, Links: []string{"1-b.md"}}
	c := m.Clone()
	c.Tags[0] = "changed"
	c.Links = append(c.Links, "2-c.md")
	if m.Tags[0] != "x" || len(m.Links) != 1 {
		t.Fatalf("clone shares storage with original: %#v", m)
	}
}

func TestSerializeParseLineBreaks(t *testing.T) {
	tests := []struct {
		name string
		m    Matter
	}{
		{name: "trailing newline in last link", m: Matter{Name: "a", Links: []string{"x", "a\n"}}},
		{name: "only newline", m: Matter{Name: "a", Tags: []string{"\n"}}},
		{name: "leading newline", m: Matter{Name: "\nA"}},
		{name: "carriage return", m: Matter{Name: "a\rb", Links: []string{"\r\n"}}},
		{name: "tab and line separator", m: Matter{Name: "\tx\u2028y", Tags: []string{"\u0085"}}},
		{name: "surrounding spaces", m: Matter{Name: "  a  ", Tags: []string{" "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := Serialize(tt.m)
			block, body, err := Split(raw)
			if err != nil {
				t.Fatalf("Split(%q): %v", raw, err)
			}
			if body != "" {
				t.Fatalf("unexpected body %q", body)
			}
			got, err := Parse(block)
			if err != nil {
				t.Fatalf("Parse(%q): %v", block, err)
			}
			if !Equal(got, tt.m) {
				t.Fatalf("round trip through %q: got %#v, want %#v", raw, got, tt.m)
			}
		})
	}
}

func TestDefaultQuotesLineBreaks(t *testing.T) {
	block, _, err := Split(string(Default("a\n")))
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	m, err := Parse(block)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Name != "a\n" {
		t.Fatalf("Name = %q, want %q", m.Name, "a\n")
	}
}

func matterGenerator() *rapid.Generator[Matter] {
	text := rapid.String()
	return rapid.Custom(func(t *rapid.T) Matter {
		return Matter{
			Name:  text.Draw(t, "name"),
			Tags:  rapid.SliceOfDistinct(text, rapid.ID[string]).Draw(t, "tags"),
			Links: rapid.SliceOfDistinct(text, rapid.ID[string]).Draw(t, "links"),
		}
	})
}

func TestSerializeParseRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := matterGenerator().Draw(t, "matter")
		raw := Serialize(m)

		block, body, err := Split(raw)
		if err != nil {
			t.Fatalf("Split(%q): %v", raw, err)
		}
		if body != "" {
			t.Fatalf("unexpected body %q", body)
		}
		got, err := Parse(block)
		if err != nil {
			t.Fatalf("Parse(%q): %v", block, err)
		}
		if !Equal(got, m) {
			t.Fatalf("round trip: got %#v, want %#v", got, m)
		}
	})
}
