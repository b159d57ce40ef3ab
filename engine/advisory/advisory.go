// Package advisory holds the static catalog of localized crop-disease
// advisories and projects a record into a single language.
package advisory

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Sentinel errors.
var (
	ErrMissingTranslation = errors.New("missing translation")
	ErrInvalidCatalog     = errors.New("invalid catalog")
)

// MissingTranslationError reports a field with neither the requested language
// nor the English fallback. It indicates corrupted catalog data.
type MissingTranslationError struct {
	ID       string
	Field    string
	Language Language
}

func (e *MissingTranslationError) Error() string {
	return fmt.Sprintf("advisory %s: field %s has no %q or %q text", e.ID, e.Field, e.Language, Fallback)
}

func (e *MissingTranslationError) Unwrap() error { return ErrMissingTranslation }

// LocalizedText maps a language to a string.
type LocalizedText map[Language]string

// LocalizedList maps a language to ordered steps.
type LocalizedList map[Language][]string

// Record is the full remediation knowledge for one disease.
type Record struct {
	ID         string        `json:"id" yaml:"id"`
	Name       LocalizedText `json:"name" yaml:"name"`
	Cause      LocalizedText `json:"cause" yaml:"cause"`
	Treatment  LocalizedList `json:"treatment" yaml:"treatment"`
	Prevention LocalizedList `json:"prevention" yaml:"prevention"`
	Fertilizer LocalizedText `json:"fertilizer,omitempty" yaml:"fertilizer,omitempty"`
	Irrigation LocalizedText `json:"irrigation,omitempty" yaml:"irrigation,omitempty"`
}

// Projected is a record rendered in one language. Empty Fertilizer or
// Irrigation means the advice is absent.
type Projected struct {
	Name       string   `json:"name" yaml:"name"`
	Cause      string   `json:"cause" yaml:"cause"`
	Treatment  []string `json:"treatment" yaml:"treatment"`
	Prevention []string `json:"prevention" yaml:"prevention"`
	Fertilizer string   `json:"fertilizer,omitempty" yaml:"fertilizer,omitempty"`
	Irrigation string   `json:"irrigation,omitempty" yaml:"irrigation,omitempty"`
}

// Catalog is an immutable id -> record mapping. It is safe for concurrent use.
type Catalog struct {
	records map[string]Record
	ids     []string
}

var idRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// New validates every record and builds a catalog. Any invalid record fails
// the whole build.
func New(records ...Record) (*Catalog, error) {
	c := &Catalog{records: make(map[string]Record, len(records))}
	for _, r := range records {
		if !idRegex.MatchString(r.ID) {
			return nil, fmt.Errorf("%w: bad id %q", ErrInvalidCatalog, r.ID)
		}
		if _, dup := c.records[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, r.ID)
		}
		if err := validate(r); err != nil {
			return nil, err
		}
		c.records[r.ID] = r
		c.ids = append(c.ids, r.ID)
	}
	sort.Strings(c.ids)
	return c, nil
}

func validate(r Record) error {
	texts := []struct {
		field    string
		v        LocalizedText
		optional bool
	}{
		{"name", r.Name, false},
		{"cause", r.Cause, false},
		{"fertilizer", r.Fertilizer, true},
		{"irrigation", r.Irrigation, true},
	}
	for _, t := range texts {
		if t.optional && t.v == nil {
			continue
		}
		if strings.TrimSpace(t.v[Fallback]) == "" {
			return fmt.Errorf("%w: %w", ErrInvalidCatalog, &MissingTranslationError{ID: r.ID, Field: t.field, Language: Fallback})
		}
	}

	for field, list := range map[string]LocalizedList{"treatment": r.Treatment, "prevention": r.Prevention} {
		if len(list[Fallback]) == 0 {
			return fmt.Errorf("%w: %w", ErrInvalidCatalog, &MissingTranslationError{ID: r.ID, Field: field, Language: Fallback})
		}
		for lang, steps := range list {
			if len(steps) == 0 {
				return fmt.Errorf("%w: %s %s has no %s steps", ErrInvalidCatalog, r.ID, field, lang)
			}
			for i, s := range steps {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("%w: %s %s[%s][%d] is blank", ErrInvalidCatalog, r.ID, field, lang, i)
				}
			}
		}
	}
	return nil
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := New(builtin()...)
	if err != nil {
		panic(fmt.Sprintf("advisory: built-in catalog: %v", err))
	}
	return c
})

// Default returns the built-in catalog.
func Default() *Catalog { return defaultCatalog() }

// Lookup returns the record with exactly this id.
func (c *Catalog) Lookup(id string) (Record, bool) {
	r, ok := c.records[id]
	return r, ok
}

// IDs returns the sorted record ids.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// Project selects the strings for lang, falling back to English per field.
func Project(r Record, lang Language) (Projected, error) {
	var (
		p   Projected
		err error
	)
	if p.Name, err = pickText(r, "name", r.Name, lang, false); err != nil {
		return Projected{}, err
	}
	if p.Cause, err = pickText(r, "cause", r.Cause, lang, false); err != nil {
		return Projected{}, err
	}
	if p.Treatment, err = pickList(r, "treatment", r.Treatment, lang); err != nil {
		return Projected{}, err
	}
	if p.Prevention, err = pickList(r, "prevention", r.Prevention, lang); err != nil {
		return Projected{}, err
	}
	if p.Fertilizer, err = pickText(r, "fertilizer", r.Fertilizer, lang, true); err != nil {
		return Projected{}, err
	}
	if p.Irrigation, err = pickText(r, "irrigation", r.Irrigation, lang, true); err != nil {
		return Projected{}, err
	}
	return p, nil
}

func pickText(r Record, field string, t LocalizedText, lang Language, optional bool) (string, error) {
	if optional && t == nil {
		return "", nil
	}
	if s := t[lang]; s != "" {
		return s, nil
	}
	if s := t[Fallback]; s != "" {
		return s, nil
	}
	return "", &MissingTranslationError{ID: r.ID, Field: field, Language: lang}
}

func pickList(r Record, field string, l LocalizedList, lang Language) ([]string, error) {
	steps := l[lang]
	if len(steps) == 0 {
		steps = l[Fallback]
	}
	if len(steps) == 0 {
		return nil, &MissingTranslationError{ID: r.ID, Field: field, Language: lang}
	}
	out := make([]string, len(steps))
	copy(out, steps)
	return out, nil
}

var idSeparators = regexp.MustCompile(`[\s_]+`)

// ToID converts a classifier label to the catalog id convention:
// "Leaf Rust" -> "leaf-rust", "Potato___Early_Blight" -> "potato-early-blight".
func ToID(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = idSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
