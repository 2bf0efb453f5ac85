package term_test

import (
	"os"
	"testing"

	"github.com/idelchi/da/internal/term"
)

func TestColumns_NotATerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		r.Close()
		w.Close()
	})

	if term.IsTerminal(w.Fd()) {
		t.Fatal("pipe reported as terminal")
	}

	if got := term.Columns(w.Fd()); got != 0 {
		t.Errorf("Columns(pipe) = %d, want 0", got)
	}
}

func TestColumns_RegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "cols")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got := term.Columns(f.Fd()); got != 0 {
		t.Errorf("Columns(file) = %d, want 0", got)
	}
}
