package templates

import (
	"fmt"
	"slices"
	"strings"
)

// Category is a named, ordered batch of prompts analyzed together
type Category struct {
	Name    string   `json:"name"`
	Prompts []string `json:"prompts"`
}

// Catalog is the ordered set of categories available for analysis
type Catalog struct {
	categories []Category
}

// NewCatalog builds a catalog from categories in declaration order.
// A category whose name was already seen replaces the earlier definition in place.
func NewCatalog(categories ...Category) (*Catalog, error) {
	c := &Catalog{}
	if err := c.merge(categories); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) merge(categories []Category) error {
	for _, category := range categories {
		if strings.TrimSpace(category.Name) == "" {
			return fmt.Errorf("category name must not be empty")
		}
		if len(category.Prompts) == 0 {
			return fmt.Errorf("category '%s' has no prompts", category.Name)
		}

		category = Category{Name: category.Name, Prompts: slices.Clone(category.Prompts)}
		if i := c.index(category.Name); i >= 0 {
			c.categories[i] = category
			continue
		}
		c.categories = append(c.categories, category)
	}
	return nil
}

func (c *Catalog) index(name string) int {
	return slices.IndexFunc(c.categories, func(category Category) bool {
		return category.Name == name
	})
}

// Lookup finds a category by exact name
func (c *Catalog) Lookup(name string) (Category, bool) {
	i := c.index(name)
	if i < 0 {
		return Category{}, false
	}
	category := c.categories[i]
	return Category{Name: category.Name, Prompts: slices.Clone(category.Prompts)}, true
}

// Names lists category names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.categories))
	for i, category := range c.categories {
		names[i] = category.Name
	}
	return names
}

// Categories returns a copy of every category in catalog order
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, category := range c.categories {
		out[i] = Category{Name: category.Name, Prompts: slices.Clone(category.Prompts)}
	}
	return out
}
