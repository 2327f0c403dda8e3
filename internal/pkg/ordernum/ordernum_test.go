package ordernum

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateShape(t *testing.T) {
	before := time.Now()
	number := Generate("CS")

	if !strings.HasPrefix(number, "CS") {
		t.Fatalf("expected CS prefix, got %s", number)
	}
	// prefix + 14 digit timestamp + 3 digit millis + 6 char suffix
	if len(number) != 2+14+3+suffixLen {
		t.Fatalf("unexpected length %d for %s", len(number), number)
	}
	stamp := number[2 : 2+14]
	parsed, err := time.ParseInLocation("20060102150405", stamp, time.Local)
	if err != nil {
		t.Fatalf("timestamp component not parseable: %v", err)
	}
	if parsed.Before(before.Truncate(time.Second).Add(-time.Second)) {
		t.Fatalf("timestamp %s predates generation time", stamp)
	}
}

func TestGenerateEmptyPrefix(t *testing.T) {
	number := Generate("")
	if len(number) != 14+3+suffixLen {
		t.Fatalf("unexpected length %d for %s", len(number), number)
	}
}

func TestGeneratePairwiseDistinct(t *testing.T) {
	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		seen[Generate("CS")] = struct{}{}
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct numbers, got %d", n, len(seen))
	}
}
