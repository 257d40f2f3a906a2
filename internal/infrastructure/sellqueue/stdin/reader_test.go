package stdin

import (
	"context"
	"sort"
	"strings"
	"testing"

	"papertrader/internal/infrastructure/sellqueue/memory"
)

func TestReaderPushesLines(t *testing.T) {
	q := memory.New()
	r := New(strings.NewReader("aapl,msft\n\nGOOG\n"), q)

	r.Run(context.Background())

	got, err := q.Drain(context.Background())
	if err != nil {
		t.Fatalf("Drain failed: %v", err)
	}
	sort.Strings(got)
	want := []string{"AAPL", "GOOG", "MSFT"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}
