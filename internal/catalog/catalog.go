// Package catalog loads the compliance standards and synthetic-data templates
// shipped with the binary.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"copilot/internal/domain"
)

//go:embed standards.yaml
var standardsYAML []byte

//go:embed templates.yaml
var templatesYAML []byte

// Catalog is the read-only set of standards and templates.
type Catalog struct {
	defaultStandard string
	defaultTemplate string
	standards       []domain.Standard
	templates       []domain.DataTemplate
}

type standardsFile struct {
	Default   string            `yaml:"default"`
	Standards []domain.Standard `yaml:"standards"`
}

type templatesFile struct {
	Default   string                `yaml:"default"`
	Templates []domain.DataTemplate `yaml:"templates"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(standardsYAML, templatesYAML)
}

// MustLoad is Load that panics on a malformed embedded catalog.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a catalog from YAML documents.
func Parse(standards, templates []byte) (*Catalog, error) {
	var sf standardsFile
	if err := yaml.Unmarshal(standards, &sf); err != nil {
		return nil, fmt.Errorf("parsing standards: %w", err)
	}
	var tf templatesFile
	if err := yaml.Unmarshal(templates, &tf); err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	c := &Catalog{
		defaultStandard: sf.Default,
		defaultTemplate: tf.Default,
		standards:       sf.Standards,
		templates:       tf.Templates,
	}
	if len(c.standards) == 0 {
		return nil, fmt.Errorf("catalog has no standards")
	}
	if _, err := c.Standard(c.defaultStandard); err != nil {
		return nil, fmt.Errorf("default standard %q: %w", c.defaultStandard, err)
	}
	if tf.Default != "" {
		if _, err := c.Template(tf.Default); err != nil {
			return nil, fmt.Errorf("default template %q: %w", tf.Default, err)
		}
	}
	return c, nil
}

// Standards returns every standard in catalog order.
func (c *Catalog) Standards() []domain.Standard {
	out := make([]domain.Standard, len(c.standards))
	copy(out, c.standards)
	return out
}

// Templates returns every template in catalog order.
func (c *Catalog) Templates() []domain.DataTemplate {
	out := make([]domain.DataTemplate, len(c.templates))
	copy(out, c.templates)
	return out
}

// DefaultStandard returns the standard used when none is chosen.
func (c *Catalog) DefaultStandard() domain.Standard {
	s, _ := c.Standard(c.defaultStandard)
	return s
}

// DefaultTemplate returns the template that seeds the synthetic-data prompt.
func (c *Catalog) DefaultTemplate() domain.DataTemplate {
	t, _ := c.Template(c.defaultTemplate)
	return t
}

// Standard looks a standard up by key or display name, case-insensitively.
// An empty key selects the default.
func (c *Catalog) Standard(key string) (domain.Standard, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		key = c.defaultStandard
	}
	for _, s := range c.standards {
		if strings.EqualFold(s.Key, key) || strings.EqualFold(s.Name, key) {
			return s, nil
		}
	}
	return domain.Standard{}, domain.ErrUnknownStandard
}

// Template looks a template up by key or display name, case-insensitively.
func (c *Catalog) Template(key string) (domain.DataTemplate, error) {
	key = strings.TrimSpace(key)
	for _, t := range c.templates {
		if strings.EqualFold(t.Key, key) || strings.EqualFold(t.Name, key) {
			return t, nil
		}
	}
	return domain.DataTemplate{}, domain.ErrUnknownTemplate
}
