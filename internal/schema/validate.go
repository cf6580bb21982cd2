package schema

import (
	"fmt"
	"strings"

	"github.com/sovrium/sovrium/internal/errors"
)

// Validate checks structural invariants that downstream pipeline stages depend
// on. It returns the first fatal problem found; the pipeline must not run on
// an App that fails validation.
func (a *App) Validate() error {
	if a.Name == "" {
		return errors.ConfigRequired("app.name")
	}
	if err := a.Languages.validate(); err != nil {
		return err
	}
	seen := make(map[string]string, len(a.Pages))
	for _, p := range a.Pages {
		if p.Path == "" {
			return errors.SchemaInvalid(fmt.Sprintf("page %q has no path", p.Name))
		}
		if !strings.HasPrefix(p.Path, "/") {
			return errors.SchemaInvalid(fmt.Sprintf("page %q path %q must start with /", p.Name, p.Path))
		}
		if other, dup := seen[p.Path]; dup {
			return errors.SchemaInvalid(fmt.Sprintf("pages %q and %q declare the same path %q", other, p.Name, p.Path))
		}
		seen[p.Path] = p.Name
		for i := range p.Sections {
			if err := validateSection(&p.Sections[i], p.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l Languages) validate() error {
	if !l.Configured() {
		if l.Default != "" {
			return errors.DefaultLanguageUnknown(l.Default)
		}
		return nil
	}
	if l.Default == "" {
		return errors.ConfigRequired("languages.default")
	}
	codes := make(map[string]bool, len(l.Supported))
	for _, lang := range l.Supported {
		if lang.Code == "" {
			return errors.SchemaInvalid("supported language with empty code")
		}
		if codes[lang.Code] {
			return errors.SchemaInvalid(fmt.Sprintf("language %q declared twice", lang.Code))
		}
		codes[lang.Code] = true
	}
	if !codes[l.Default] {
		return errors.DefaultLanguageUnknown(l.Default)
	}
	return nil
}

func validateSection(s *Section, page string) error {
	if s.Type == "" {
		return errors.SchemaInvalid(fmt.Sprintf("page %q contains a section without a type", page))
	}
	for _, child := range s.Children {
		if child.Section != nil {
			if err := validateSection(child.Section, page); err != nil {
				return err
			}
		}
	}
	return nil
}
