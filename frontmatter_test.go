package sprokkel

import (
	"errors"
	"testing"
)

func TestParseFrontMatterTOML(t *testing.T) {
	t.Parallel()

	content := []byte("+++\ntitle = \"Hello\"\nrelease = true\ntags = [\"go\"]\n+++\nBody text.\n")
	fm, rest, err := parseFrontMatter(content)
	if err != nil {
		t.Fatalf("parseFrontMatter error = %v", err)
	}
	if fm.Title != "Hello" {
		t.Errorf("Title = %q, want Hello", fm.Title)
	}
	if !fm.Released {
		t.Error("Released = false, want true")
	}
	if _, ok := fm.Extra["tags"]; !ok {
		t.Error("Extra is missing the tags key")
	}
	if _, ok := fm.Extra["title"]; ok {
		t.Error("title leaked into Extra")
	}
	if string(rest) != "Body text.\n" {
		t.Errorf("rest = %q, want the body", rest)
	}
}

func TestParseFrontMatterYAML(t *testing.T) {
	t.Parallel()

	content := []byte("---\ntitle: Hello\nrelease: \"yes\"\n---\nBody.\n")
	fm, rest, err := parseFrontMatter(content)
	if err != nil {
		t.Fatalf("parseFrontMatter error = %v", err)
	}
	if fm.Title != "Hello" {
		t.Errorf("Title = %q, want Hello", fm.Title)
	}
	if !fm.Released {
		t.Error("Released = false, want true")
	}
	if string(rest) != "Body.\n" {
		t.Errorf("rest = %q, want the body", rest)
	}
}

func TestParseFrontMatterAbsent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "plain document", content: "# Heading\n\nText.\n"},
		{name: "unterminated fence", content: "+++\ntitle = \"Hello\"\n"},
		{name: "fence not at line start", content: " +++\ntitle = \"x\"\n+++\n"},
		{name: "thematic break", content: "---text\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fm, rest, err := parseFrontMatter([]byte(tt.content))
			if err != nil {
				t.Fatalf("parseFrontMatter error = %v", err)
			}
			if fm.Title != "" || fm.Released {
				t.Errorf("front matter = %+v, want zero", fm)
			}
			if string(rest) != tt.content {
				t.Errorf("rest = %q, want the input untouched", rest)
			}
		})
	}
}

func TestParseFrontMatterMalformed(t *testing.T) {
	t.Parallel()

	content := []byte("+++\ntitle = \n+++\nBody.\n")
	_, _, err := parseFrontMatter(content)
	if !errors.Is(err, ErrFrontMatter) {
		t.Errorf("error = %v, want ErrFrontMatter", err)
	}
}

func TestCoerceBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value any
		want  bool
	}{
		{value: true, want: true},
		{value: false, want: false},
		{value: "true", want: true},
		{value: "yes", want: true},
		{value: "no", want: false},
		{value: 1, want: false},
	}

	for _, tt := range tests {
		tt := tt
		if got := coerceBool(tt.value); got != tt.want {
			t.Errorf("coerceBool(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
