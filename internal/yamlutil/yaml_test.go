package yamlutil_test

// Notes:
// - front matter blocks are the only call site, so the tests exercise the
//   map destination shape the builder actually uses

import (
	"errors"
	"strings"
	"testing"

	"github.com/tomcur/sprokkel/internal/yamlutil"
)

// ---------------------------------------------------------------------------
// TestUnmarshal - Parses YAML Metadata
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "metadata map",
			data: []byte("title: A post\nrelease: yes\ntags:\n  - go\n"),
			dest: &map[string]any{},
			check: func(t *testing.T, v any) {
				meta := *v.(*map[string]any)
				if meta["title"] != "A post" {
					t.Errorf("title = %v, want %q", meta["title"], "A post")
				}
				if _, ok := meta["tags"]; !ok {
					t.Error("expected tags to be present")
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &map[string]any{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("title: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "oversized input",
			data:    []byte("title: " + strings.Repeat("x", yamlutil.MaxInputSize)),
			dest:    &map[string]any{},
			wantErr: yamlutil.ErrInputTooLarge,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, tt.dest)
		})
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	t.Parallel()

	err := yamlutil.Unmarshal([]byte("title: [unclosed"), &map[string]any{})
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), "yamlutil") {
		t.Errorf("expected a wrapped error, got %v", err)
	}
}
