package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-5); got != DefaultLimit {
		t.Fatalf("expected default limit for negative, got %d", got)
	}
	if got := NormalizeLimit(500); got != MaxLimit {
		t.Fatalf("expected max limit cap, got %d", got)
	}
	if got := NormalizeLimit(25); got != 25 {
		t.Fatalf("expected pass-through, got %d", got)
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 1, Limit: 10}).Offset(); got != 0 {
		t.Fatalf("expected offset 0, got %d", got)
	}
	if got := (Params{Page: 3, Limit: 10}).Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}
	if got := (Params{Page: 0, Limit: 0}).Offset(); got != 0 {
		t.Fatalf("expected offset 0 for unset params, got %d", got)
	}
}

func TestMetaFor(t *testing.T) {
	meta := MetaFor(25, Params{Page: 2, Limit: 10})
	if meta.Pages != 3 {
		t.Fatalf("expected 3 pages, got %d", meta.Pages)
	}
	if meta.Count != 25 || meta.Page != 2 || meta.Limit != 10 {
		t.Fatalf("unexpected meta %+v", meta)
	}

	empty := MetaFor(0, Params{})
	if empty.Pages != 1 {
		t.Fatalf("expected 1 page for empty set, got %d", empty.Pages)
	}

	// repositories hand over gorm counts, which are int64
	var total int64 = 11
	meta = MetaFor(total, Params{Page: 1, Limit: 10})
	if meta.Count != 11 || meta.Pages != 2 {
		t.Fatalf("unexpected meta for int64 total %+v", meta)
	}
}
