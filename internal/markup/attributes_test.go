package markup

// Notes:
// - Attributes.Set: tests lexicographic iteration order and overwrite-in-place
// - Attributes.Equal: tests insertion-order invariance
// - Attributes.Delete: tests key removal

import "testing"

// ---------------------------------------------------------------------------
// TestAttributesOrder - Lexicographic Iteration
// ---------------------------------------------------------------------------

func TestAttributesOrder(t *testing.T) {
	t.Parallel()

	var attrs Attributes
	attrs.Set("foo", "")
	attrs.Set("bar", "")
	attrs.Set("qux", "")
	attrs.Set("cafe", "")

	want := []string{"bar", "cafe", "foo", "qux"}
	all := attrs.All()
	if len(all) != len(want) {
		t.Fatalf("expected %d attributes, got %d", len(want), len(all))
	}
	for i, key := range want {
		if all[i].Key != key {
			t.Errorf("attribute %d: expected key %q, got %q", i, key, all[i].Key)
		}
	}
}

// ---------------------------------------------------------------------------
// TestAttributesOverride - Idempotent Insert
// ---------------------------------------------------------------------------

func TestAttributesOverride(t *testing.T) {
	t.Parallel()

	var attrs Attributes
	attrs.Set("foo", "")
	if v, ok := attrs.Get("foo"); !ok || v != "" {
		t.Fatalf("expected empty value, got %q (present=%v)", v, ok)
	}

	attrs.Set("foo", "bar")
	if v, _ := attrs.Get("foo"); v != "bar" {
		t.Errorf("expected overwritten value %q, got %q", "bar", v)
	}
	if attrs.Len() != 1 {
		t.Errorf("expected a single key after overwrite, got %d", attrs.Len())
	}
}

// ---------------------------------------------------------------------------
// TestAttributesEqual - Insertion Order Invariance
// ---------------------------------------------------------------------------

func TestAttributesEqual(t *testing.T) {
	t.Parallel()

	var a, b Attributes
	a.Set("class", "figure")
	a.Set("id", "x")
	b.Set("id", "x")
	b.Set("class", "figure")

	if !a.Equal(b) {
		t.Error("expected attribute sets to be equal regardless of insertion order")
	}

	b.Set("id", "y")
	if a.Equal(b) {
		t.Error("expected attribute sets with different values to differ")
	}
}

// ---------------------------------------------------------------------------
// TestAttributesDelete - Key Removal
// ---------------------------------------------------------------------------

func TestAttributesDelete(t *testing.T) {
	t.Parallel()

	var attrs Attributes
	attrs.Set("class", "figure")
	attrs.Set("id", "x")

	attrs.Delete("class")
	if _, ok := attrs.Get("class"); ok {
		t.Error("expected class to be removed")
	}
	if v, ok := attrs.Get("id"); !ok || v != "x" {
		t.Errorf("expected id to survive deletion, got %q (present=%v)", v, ok)
	}

	attrs.Delete("missing")
	if attrs.Len() != 1 {
		t.Errorf("expected deleting a missing key to be a no-op, got len %d", attrs.Len())
	}
}
