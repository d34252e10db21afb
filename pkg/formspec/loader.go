package formspec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidForm wraps structural problems found while loading a form.
var ErrInvalidForm = errors.New("formspec: invalid form")

// Load decodes a form from JSON or YAML and validates it.
func Load(data []byte) (Form, error) {
	return parseDocument(data, "<inline>")
}

// LoadFile reads and decodes a single form document.
func LoadFile(path string) (Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Form{}, fmt.Errorf("formspec: read %s: %w", path, err)
	}
	return parseDocument(data, path)
}

// Set holds forms keyed by id.
type Set struct {
	forms map[string]Form
}

// LoadFS walks fsys and loads every JSON or YAML document as a form. Form
// ids must be unique across files.
func LoadFS(fsys fs.FS) (*Set, error) {
	set := &Set{forms: make(map[string]Form)}
	if fsys == nil {
		return set, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isFormFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formspec: read %s: %w", path, err)
		}
		form, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		if _, exists := set.forms[form.ID]; exists {
			return fmt.Errorf("%w: duplicate form %q (file %s)", ErrInvalidForm, form.ID, path)
		}
		set.forms[form.ID] = form
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Form returns the form with the given id.
func (s *Set) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// IDs lists the loaded form ids in sorted order.
func (s *Set) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.forms))
	for id := range s.forms {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func parseDocument(data []byte, source string) (Form, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Form{}, fmt.Errorf("formspec: file %s is empty", source)
	}

	var form Form
	if err := json.Unmarshal(data, &form); err != nil {
		form = Form{}
		if yerr := yaml.Unmarshal(data, &form); yerr != nil {
			return Form{}, fmt.Errorf("formspec: parse %s: %w", source, yerr)
		}
	}
	if err := form.normalise(source); err != nil {
		return Form{}, err
	}
	return form, nil
}

// Normalize applies the checks and defaults Load applies to documents, for
// forms built in code or derived from other schemas.
func Normalize(form Form) (Form, error) {
	if err := form.normalise(form.ID); err != nil {
		return Form{}, err
	}
	return form, nil
}

func (f *Form) normalise(source string) error {
	f.ID = strings.TrimSpace(f.ID)
	if f.ID == "" {
		f.ID = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	if len(f.Fields) == 0 {
		return fmt.Errorf("%w: form %q (file %s) has no fields", ErrInvalidForm, f.ID, source)
	}

	seen := make(map[string]struct{}, len(f.Fields))
	for i := range f.Fields {
		field := &f.Fields[i]
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return fmt.Errorf("%w: form %q (file %s) field %d has no name", ErrInvalidForm, f.ID, source, i)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("%w: form %q (file %s) defines duplicate field %q", ErrInvalidForm, f.ID, source, field.Name)
		}
		seen[field.Name] = struct{}{}

		field.Input = strings.ToLower(strings.TrimSpace(field.Input))
		switch field.Input {
		case "", InputText, InputPassword, InputNumber, InputCheckbox:
		default:
			return fmt.Errorf("%w: form %q field %q has unknown input %q", ErrInvalidForm, f.ID, field.Name, field.Input)
		}
		if field.Variant == "" {
			field.Variant = defaultVariant(*field)
		}
	}
	return nil
}

func isFormFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
