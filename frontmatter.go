package sprokkel

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/tomcur/sprokkel/internal/yamlutil"
)

var (
	tomlFence = []byte("+++")
	yamlFence = []byte("---")
)

// parseFrontMatter splits a leading metadata block off content. The block
// format is sniffed from the fence: +++ encloses TOML, --- encloses YAML.
// Without a block the content comes back untouched with a zero FrontMatter.
func parseFrontMatter(content []byte) (FrontMatter, []byte, error) {
	block, rest, ok := cutFence(content, tomlFence)
	if ok {
		meta := map[string]any{}
		if err := toml.Unmarshal(block, &meta); err != nil {
			return FrontMatter{}, nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
		}
		return interpretFrontMatter(meta), rest, nil
	}

	block, rest, ok = cutFence(content, yamlFence)
	if ok {
		meta := map[string]any{}
		if err := yamlutil.Unmarshal(block, &meta); err != nil {
			return FrontMatter{}, nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
		}
		return interpretFrontMatter(meta), rest, nil
	}

	return FrontMatter{}, content, nil
}

// cutFence splits content of the form "<fence>\n<block>\n<fence>\n<rest>".
func cutFence(content, fence []byte) (block, rest []byte, ok bool) {
	if !bytes.HasPrefix(content, fence) {
		return nil, nil, false
	}
	after := content[len(fence):]
	if len(after) == 0 || (after[0] != '\n' && !bytes.HasPrefix(after, []byte("\r\n"))) {
		return nil, nil, false
	}

	closing := append([]byte("\n"), fence...)
	idx := bytes.Index(after, closing)
	if idx < 0 {
		return nil, nil, false
	}
	block = after[:idx]

	rest = after[idx+len(closing):]
	if nl := bytes.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	} else {
		rest = nil
	}
	return block, rest, true
}

// interpretFrontMatter lifts the keys the builder understands out of the
// raw metadata map.
func interpretFrontMatter(meta map[string]any) FrontMatter {
	fm := FrontMatter{Extra: meta}
	if title, ok := meta["title"].(string); ok {
		fm.Title = title
		delete(meta, "title")
	}
	if release, ok := meta["release"]; ok {
		fm.Released = coerceBool(release)
		delete(meta, "release")
	}
	return fm
}

// coerceBool accepts the spellings of truth front matter files use in the
// wild: booleans, and the strings "true" and "yes".
func coerceBool(v any) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return value == "true" || value == "yes"
	}
	return false
}
