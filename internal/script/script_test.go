package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/vimkit/internal/input/remap"
)

func TestMapFunctions(t *testing.T) {
	engine := remap.NewEngine()
	r := NewRunner(engine)
	defer r.Close()

	err := r.Run(`
		noremap("normal", "Q", "dd")
		map("insert", "jk", "<Esc>")
	`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	normal := engine.Mappings("normal")
	if len(normal) != 1 || normal[0].Recursive {
		t.Fatalf("normal mappings = %+v", normal)
	}
	insert := engine.Mappings("insert")
	if len(insert) != 1 || !insert[0].Recursive {
		t.Fatalf("insert mappings = %+v", insert)
	}
	if insert[0].RHS.String() != "<Esc>" {
		t.Fatalf("rhs = %q", insert[0].RHS.String())
	}
}

func TestUnmapAndClear(t *testing.T) {
	engine := remap.NewEngine()
	r := NewRunner(engine)
	defer r.Close()

	err := r.Run(`
		noremap("normal", "Q", "dd")
		noremap("normal", "W", "yy")
		unmap("normal", "Q")
	`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := len(engine.Mappings("normal")); got != 1 {
		t.Fatalf("mappings = %d, want 1", got)
	}

	if err := r.Run(`mapclear("normal")`); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := len(engine.Mappings("normal")); got != 0 {
		t.Fatalf("mappings = %d, want 0", got)
	}
}

func TestInvalidSequenceFails(t *testing.T) {
	engine := remap.NewEngine()
	r := NewRunner(engine)
	defer r.Close()

	err := r.Run(`noremap("normal", "", "dd")`)
	if !errors.Is(err, ErrScript) {
		t.Fatalf("err = %v", err)
	}
}

func TestRunFile(t *testing.T) {
	engine := remap.NewEngine()
	r := NewRunner(engine)
	defer r.Close()

	path := filepath.Join(t.TempDir(), "init.lua")
	src := `
		-- personal mappings
		for _, lhs in ipairs({"H", "L"}) do
			noremap("normal", lhs, lhs == "H" and "0" or "$")
		end
	`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	if err := r.RunFile(path); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if got := len(engine.Mappings("normal")); got != 2 {
		t.Fatalf("mappings = %d, want 2", got)
	}
}

func TestSandboxExcludesOS(t *testing.T) {
	r := NewRunner(remap.NewEngine())
	defer r.Close()

	if err := r.Run(`os.exit(1)`); err == nil {
		t.Fatal("expected os library to be unavailable")
	}
}
