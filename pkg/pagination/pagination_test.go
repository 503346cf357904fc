package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "zero falls back to default", limit: 0, want: DefaultLimit},
		{name: "negative falls back to default", limit: -5, want: DefaultLimit},
		{name: "within bounds kept", limit: 40, want: 40},
		{name: "above max capped", limit: 500, want: MaxLimit},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeLimit(tc.limit); got != tc.want {
				t.Fatalf("NormalizeLimit(%d) = %d, want %d", tc.limit, got, tc.want)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, Limit: 10}
	if got := p.Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}

	p = Params{Page: 0, Limit: 0}
	if got := p.Offset(); got != 0 {
		t.Fatalf("expected offset 0 for defaults, got %d", got)
	}
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Page: 2, Limit: 10}, 25)
	if meta.Pages != 3 {
		t.Fatalf("expected 3 pages, got %d", meta.Pages)
	}
	if meta.Total != 25 || meta.Page != 2 || meta.Limit != 10 {
		t.Fatalf("unexpected meta: %+v", meta)
	}

	meta = NewMeta(Params{Page: 1, Limit: 10}, 30)
	if meta.Pages != 3 {
		t.Fatalf("expected exact division to yield 3 pages, got %d", meta.Pages)
	}
}
