package tracking

import (
	"regexp"
	"testing"
)

func TestNewCodeShape(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{10}$`)
	for i := 0; i < 100; i++ {
		code, err := NewCode()
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}
		if !pattern.MatchString(code) {
			t.Fatalf("code %q does not match expected shape", code)
		}
	}
}

func TestNewCodeVariance(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := NewCode()
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}
		seen[code] = true
	}
	if len(seen) < 45 {
		t.Fatalf("expected distinct codes, got %d unique out of 50", len(seen))
	}
}
