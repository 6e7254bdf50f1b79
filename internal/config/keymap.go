package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/vimkit/internal/input/key"
	"github.com/dshills/vimkit/internal/input/remap"
)

const mappingVersion = 1

// LoadMappings reads a JSON mapping file. Sequences are written in
// key notation ("dd", "<C-w>k"); scope names follow the mode scopes.
func LoadMappings(path string) ([]remap.Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s: not valid JSON", ErrBadMappingFile, path)
	}

	doc := gjson.ParseBytes(data)
	if v := doc.Get("version"); v.Exists() && v.Int() != mappingVersion {
		return nil, fmt.Errorf("%w: %s: version %d", ErrBadVersion, path, v.Int())
	}

	var mappings []remap.Mapping
	var loadErr error
	doc.Get("mappings").ForEach(func(_, entry gjson.Result) bool {
		scope := entry.Get("scope").String()
		if scope == "" {
			loadErr = fmt.Errorf("%w: %s: mapping without scope", ErrBadMappingFile, path)
			return false
		}

		lhs, err := key.ParseSequence(entry.Get("lhs").String())
		if err != nil || lhs.IsEmpty() {
			loadErr = fmt.Errorf("%w: %s: lhs %q", ErrBadMappingFile, path, entry.Get("lhs").String())
			return false
		}
		rhs, err := key.ParseSequence(entry.Get("rhs").String())
		if err != nil {
			loadErr = fmt.Errorf("%w: %s: rhs %q", ErrBadMappingFile, path, entry.Get("rhs").String())
			return false
		}

		mappings = append(mappings, remap.Mapping{
			Scope:     scope,
			LHS:       lhs,
			RHS:       rhs,
			Recursive: entry.Get("recursive").Bool(),
		})
		return true
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return mappings, nil
}

// SaveMappings writes mappings as a JSON mapping file, atomically via
// a temporary file.
func SaveMappings(path string, mappings []remap.Mapping) error {
	out, err := sjson.Set("{}", "version", mappingVersion)
	if err != nil {
		return fmt.Errorf("encoding mapping file: %w", err)
	}
	out, _ = sjson.SetRaw(out, "mappings", "[]")
	for i, m := range mappings {
		prefix := fmt.Sprintf("mappings.%d.", i)
		out, _ = sjson.Set(out, prefix+"scope", m.Scope)
		out, _ = sjson.Set(out, prefix+"lhs", m.LHS.String())
		out, _ = sjson.Set(out, prefix+"rhs", m.RHS.String())
		if m.Recursive {
			out, _ = sjson.Set(out, prefix+"recursive", true)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating mapping directory: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing mapping file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing mapping file: %w", err)
	}
	return nil
}

// InstallMappings loads every *.json mapping file under dir into the
// engine. A missing directory installs nothing.
func InstallMappings(engine *remap.Engine, dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("scanning mapping directory: %w", err)
	}
	for _, path := range matches {
		mappings, err := LoadMappings(path)
		if err != nil {
			return err
		}
		for _, m := range mappings {
			engine.Map(m)
		}
	}
	return nil
}
