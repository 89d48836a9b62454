package markup

import "sort"

// Attr is a single HTML attribute.
type Attr struct {
	Key   string
	Value string
}

// Attributes holds element attributes ordered deterministically by key.
// Setting an existing key overwrites its value in place, so equality of two
// attribute sets is invariant over insertion order.
type Attributes struct {
	attrs []Attr
}

// NewAttributes builds an attribute set from the given pairs.
func NewAttributes(attrs ...Attr) Attributes {
	var a Attributes
	for _, attr := range attrs {
		a.Set(attr.Key, attr.Value)
	}
	return a
}

// Set inserts or overwrites the value for key, keeping keys sorted.
func (a *Attributes) Set(key, value string) {
	idx := sort.Search(len(a.attrs), func(i int) bool { return a.attrs[i].Key >= key })
	if idx < len(a.attrs) && a.attrs[idx].Key == key {
		a.attrs[idx].Value = value
		return
	}
	a.attrs = append(a.attrs, Attr{})
	copy(a.attrs[idx+1:], a.attrs[idx:])
	a.attrs[idx] = Attr{Key: key, Value: value}
}

// Delete removes key if present.
func (a *Attributes) Delete(key string) {
	idx := sort.Search(len(a.attrs), func(i int) bool { return a.attrs[i].Key >= key })
	if idx < len(a.attrs) && a.attrs[idx].Key == key {
		a.attrs = append(a.attrs[:idx], a.attrs[idx+1:]...)
	}
}

// Get returns the value for key and whether it is present.
func (a Attributes) Get(key string) (string, bool) {
	idx := sort.Search(len(a.attrs), func(i int) bool { return a.attrs[i].Key >= key })
	if idx < len(a.attrs) && a.attrs[idx].Key == key {
		return a.attrs[idx].Value, true
	}
	return "", false
}

// Len returns the number of distinct keys.
func (a Attributes) Len() int { return len(a.attrs) }

// IsEmpty reports whether the set holds no attributes.
func (a Attributes) IsEmpty() bool { return len(a.attrs) == 0 }

// All returns the attributes in lexicographic key order. The returned slice
// is owned by the set and must not be mutated.
func (a Attributes) All() []Attr { return a.attrs }

// Equal reports whether both sets hold the same key/value pairs.
func (a Attributes) Equal(b Attributes) bool {
	if len(a.attrs) != len(b.attrs) {
		return false
	}
	for i, attr := range a.attrs {
		if b.attrs[i] != attr {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (a Attributes) Clone() Attributes {
	if len(a.attrs) == 0 {
		return Attributes{}
	}
	attrs := make([]Attr, len(a.attrs))
	copy(attrs, a.attrs)
	return Attributes{attrs: attrs}
}
