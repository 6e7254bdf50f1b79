package macro

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/vimkit/internal/input/key"
)

// persistedMacro stores one register's macro in key notation, the
// same notation mapping files use.
type persistedMacro struct {
	Register string `json:"register"`
	Keys     string `json:"keys"`
}

// persistedFile is the on-disk root structure.
type persistedFile struct {
	Version    int              `json:"version"`
	SavedAt    time.Time        `json:"saved_at"`
	LastPlayed string           `json:"last_played,omitempty"`
	Macros     []persistedMacro `json:"macros"`
}

const persistVersion = 1

// Save writes all macros to path, atomically via a temporary file.
func Save(recorder *Recorder, path string) error {
	out := persistedFile{
		Version: persistVersion,
		SavedAt: time.Now(),
	}
	if last := recorder.LastPlayed(); last != 0 {
		out.LastPlayed = string(last)
	}
	for _, reg := range recorder.Registers() {
		out.Macros = append(out.Macros, persistedMacro{
			Register: string(reg),
			Keys:     recorder.Get(reg).String(),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding macros: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating macro directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing macros: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing macro file: %w", err)
	}
	return nil
}

// Load replaces the recorder's registers with the macros stored at
// path. A missing file leaves the recorder untouched.
func Load(recorder *Recorder, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading macros: %w", err)
	}

	var in persistedFile
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decoding macros: %w", err)
	}
	if in.Version != persistVersion {
		return fmt.Errorf("unsupported macro file version %d", in.Version)
	}

	recorder.Clear()
	for _, m := range in.Macros {
		if m.Register == "" {
			continue
		}
		reg := []rune(m.Register)[0]
		seq, err := key.ParseSequence(m.Keys)
		if err != nil {
			return fmt.Errorf("macro %q: %w", m.Register, err)
		}
		if err := recorder.Set(reg, seq); err != nil {
			return fmt.Errorf("macro %q: %w", m.Register, err)
		}
	}
	if in.LastPlayed != "" {
		recorder.setLastPlayed([]rune(in.LastPlayed)[0])
	}
	return nil
}
