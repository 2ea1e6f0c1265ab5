// Package catalog loads the read-only first-aid procedure catalog.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/raphaelgruber/crisis-assistant/internal/models"
	"gopkg.in/yaml.v3"
)

// EmbeddedSource is reported by Source for the built-in catalog.
const EmbeddedSource = "embedded"

//go:embed data/procedures.yaml
var embeddedDocument []byte

// document is the on-disk shape of a catalog.
type document struct {
	Keywords []struct {
		Category string   `yaml:"category"`
		Phrases  []string `yaml:"phrases"`
	} `yaml:"keywords"`
	Procedures []models.Procedure `yaml:"procedures"`
}

// Catalog holds keyword lists and procedure records, in catalog order.
// It is never modified after construction and is safe for concurrent reads.
type Catalog struct {
	source     string
	table      models.KeywordTable
	procedures map[string]models.Procedure
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	c, err := Parse(embeddedDocument)
	if err != nil {
		return nil, err
	}
	c.source = EmbeddedSource
	return c, nil
}

// Load reads a catalog from a YAML file. An empty path loads the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.source = path
	return c, nil
}

// Parse decodes and validates a YAML catalog document.
// Keyword phrases are lowercased here, once.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		table:      make(models.KeywordTable, 0, len(doc.Keywords)),
		procedures: make(map[string]models.Procedure, len(doc.Procedures)),
	}

	for _, kw := range doc.Keywords {
		id := strings.TrimSpace(kw.Category)
		if id == "" {
			return nil, fmt.Errorf("%w: keyword entry without category", ErrIntegrity)
		}
		if id == models.UnknownCategory {
			return nil, fmt.Errorf("%w: %q is reserved", ErrIntegrity, id)
		}
		if _, dup := c.table.Phrases(id); dup {
			return nil, fmt.Errorf("%w: duplicate keyword list for %q", ErrIntegrity, id)
		}
		if len(kw.Phrases) == 0 {
			return nil, fmt.Errorf("%w: empty keyword list for %q", ErrIntegrity, id)
		}

		phrases := make([]string, len(kw.Phrases))
		for i, p := range kw.Phrases {
			if strings.TrimSpace(p) == "" {
				return nil, fmt.Errorf("%w: blank phrase #%d for %q", ErrIntegrity, i+1, id)
			}
			phrases[i] = strings.ToLower(p)
		}
		c.table = append(c.table, models.KeywordEntry{CategoryID: id, Phrases: phrases})
	}

	for _, p := range doc.Procedures {
		p.ID = strings.TrimSpace(p.ID)
		if err := validateProcedure(&p); err != nil {
			return nil, err
		}
		if _, dup := c.procedures[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate procedure %q", ErrIntegrity, p.ID)
		}
		if _, ok := c.table.Phrases(p.ID); !ok {
			return nil, fmt.Errorf("%w: procedure %q has no keyword list", ErrIntegrity, p.ID)
		}
		c.procedures[p.ID] = p
	}

	for _, e := range c.table {
		if _, ok := c.procedures[e.CategoryID]; !ok {
			return nil, fmt.Errorf("%w: keyword list %q has no procedure", ErrIntegrity, e.CategoryID)
		}
	}

	if len(c.table) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrIntegrity)
	}

	return c, nil
}

func validateProcedure(p *models.Procedure) error {
	if p.ID == "" {
		return fmt.Errorf("%w: procedure without id", ErrIntegrity)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: procedure %q has no title", ErrIntegrity, p.ID)
	}
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: procedure %q has no steps", ErrIntegrity, p.ID)
	}
	u, err := models.ParseUrgency(string(p.Urgency))
	if err != nil {
		return fmt.Errorf("%w: procedure %q: %v", ErrIntegrity, p.ID, err)
	}
	p.Urgency = u
	return nil
}

// Source names where the catalog was loaded from.
func (c *Catalog) Source() string {
	return c.source
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.table)
}

// KeywordTable returns a copy of the keyword table in catalog order.
func (c *Catalog) KeywordTable() models.KeywordTable {
	return c.table.Clone()
}

// Procedure returns the record for a category.
func (c *Catalog) Procedure(categoryID string) (models.Procedure, bool) {
	p, ok := c.procedures[categoryID]
	if !ok {
		return models.Procedure{}, false
	}
	return p.Clone(), true
}

// MustProcedure is like Procedure but returns ErrUnknownCategory on a miss.
func (c *Catalog) MustProcedure(categoryID string) (models.Procedure, error) {
	p, ok := c.Procedure(categoryID)
	if !ok {
		return models.Procedure{}, fmt.Errorf("%w: %s", ErrUnknownCategory, categoryID)
	}
	return p, nil
}

// Procedures returns every record in catalog order.
func (c *Catalog) Procedures() []models.Procedure {
	out := make([]models.Procedure, 0, len(c.table))
	for _, e := range c.table {
		out = append(out, c.procedures[e.CategoryID].Clone())
	}
	return out
}

// SearchByKeyword returns the categories with at least one phrase containing word.
func (c *Catalog) SearchByKeyword(word string) []string {
	word = strings.ToLower(word)
	var matches []string
	for _, e := range c.table {
		for _, p := range e.Phrases {
			if strings.Contains(p, word) {
				matches = append(matches, e.CategoryID)
				break
			}
		}
	}
	return matches
}
