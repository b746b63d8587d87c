package structdiff

import (
	"strings"
	"testing"
)

func TestNeedsChunking(t *testing.T) {
	if NeedsChunking("short diff", 100) {
		t.Error("small diff should not need chunking")
	}
	if !NeedsChunking(strings.Repeat("x", 101), 100) {
		t.Error("diff over threshold should need chunking")
	}
	if NeedsChunking(strings.Repeat("x", 100), 100) {
		t.Error("threshold is exclusive")
	}
	// Zero threshold falls back to the default.
	if NeedsChunking(strings.Repeat("x", DefaultChunkThreshold), 0) {
		t.Error("default threshold should apply when zero")
	}
}

func TestSplitByFile(t *testing.T) {
	t.Run("splits at boundaries", func(t *testing.T) {
		diff := `diff --git a/first.go b/first.go
index 1234..5678 100644
--- a/first.go
+++ b/first.go
@@ -1,3 +1,4 @@
+added line
diff --git a/second.go b/second.go
--- a/second.go
+++ b/second.go
@@ -10,2 +10,1 @@
-removed line`
		fragments := SplitByFile(diff)
		if len(fragments) != 2 {
			t.Fatalf("len(fragments) = %d, want 2", len(fragments))
		}
		if fragments[0].Name != "first.go" {
			t.Errorf("first name = %q", fragments[0].Name)
		}
		if fragments[1].Name != "second.go" {
			t.Errorf("second name = %q", fragments[1].Name)
		}
		if !strings.Contains(fragments[0].Content, "+added line") {
			t.Errorf("first content missing hunk: %q", fragments[0].Content)
		}
		if strings.Contains(fragments[0].Content, "removed line") {
			t.Error("first fragment leaked into second")
		}
	})

	t.Run("no boundaries yields nil", func(t *testing.T) {
		if got := SplitByFile("just some text\nwithout markers"); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})

	t.Run("unparseable boundary gets placeholder name", func(t *testing.T) {
		fragments := SplitByFile("diff --git\n+change")
		if len(fragments) != 1 {
			t.Fatalf("len(fragments) = %d, want 1", len(fragments))
		}
		if fragments[0].Name != "unknown_file_0" {
			t.Errorf("name = %q", fragments[0].Name)
		}
	})
}

func TestBatch(t *testing.T) {
	files := func(n int) []FileDiff {
		out := make([]FileDiff, n)
		for i := range out {
			out[i] = FileDiff{Name: strings.Repeat("a", i+1)}
		}
		return out
	}

	t.Run("splits evenly", func(t *testing.T) {
		groups := Batch(files(10), 5)
		if len(groups) != 5 {
			t.Fatalf("len(groups) = %d, want 5", len(groups))
		}
		for i, g := range groups {
			if len(g) != 2 {
				t.Errorf("group %d size = %d, want 2", i, len(g))
			}
		}
	})

	t.Run("fewer files than batches", func(t *testing.T) {
		groups := Batch(files(3), 5)
		if len(groups) != 3 {
			t.Fatalf("len(groups) = %d, want 3", len(groups))
		}
	})

	t.Run("preserves order", func(t *testing.T) {
		groups := Batch(files(7), 3)
		var flat []FileDiff
		for _, g := range groups {
			flat = append(flat, g...)
		}
		for i, f := range flat {
			if len(f.Name) != i+1 {
				t.Fatalf("order broken at %d: %q", i, f.Name)
			}
		}
	})

	t.Run("empty input yields nil", func(t *testing.T) {
		if got := Batch(nil, 5); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}
