package task

import (
	"slices"
	"strings"
	"sync"
)

// Category is a named keyword set used for auto-categorization.
type Category struct {
	Name     string   `json:"name" yaml:"name" mapstructure:"name"`
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
}

// DefaultCategories returns the built-in category table in match order.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Work", Keywords: []string{"meeting", "project", "deadline", "client", "report", "presentation"}},
		{Name: "Personal", Keywords: []string{"gym", "shopping", "family", "health", "hobby", "exercise"}},
		{Name: "Urgent", Keywords: []string{"urgent", "asap", "emergency", "important", "critical", "due"}},
		{Name: "Learning", Keywords: []string{"study", "learn", "course", "read", "practice", "research"}},
		{Name: "Home", Keywords: []string{"clean", "cook", "laundry", "groceries", "repair", "organize"}},
	}
}

// Categorizer assigns a category to task text by case-insensitive keyword
// substring match. Categories are tried in insertion order; the first hit wins.
type Categorizer struct {
	mu         sync.RWMutex
	categories []Category
}

// NewCategorizer creates a categorizer over a copy of cats.
// A nil slice yields the default table.
func NewCategorizer(cats []Category) *Categorizer {
	if cats == nil {
		cats = DefaultCategories()
	}
	c := &Categorizer{}
	for _, cat := range cats {
		c.categories = append(c.categories, cloneCategory(cat))
	}
	return c
}

// Detect returns the first matching category name, or DefaultCategory.
func (c *Categorizer) Detect(text string) string {
	lower := strings.ToLower(text)

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, cat := range c.categories {
		for _, kw := range cat.Keywords {
			kw = strings.ToLower(kw)
			if kw != "" && strings.Contains(lower, kw) {
				return cat.Name
			}
		}
	}
	return DefaultCategory
}

// Add inserts or replaces a category. Replacing keeps its position.
func (c *Categorizer) Add(name string, keywords []string) {
	c.Update(name, keywords)
}

// Update upserts a category's keyword list.
func (c *Categorizer) Update(name string, keywords []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cat := Category{Name: name, Keywords: slices.Clone(keywords)}
	if i := c.indexLocked(name); i >= 0 {
		c.categories[i] = cat
		return
	}
	c.categories = append(c.categories, cat)
}

// Remove deletes a category. It reports whether the name existed.
func (c *Categorizer) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexLocked(name)
	if i < 0 {
		return false
	}
	c.categories = slices.Delete(c.categories, i, i+1)
	return true
}

// Categories returns a copy of the table in match order.
func (c *Categorizer) Categories() []Category {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Category, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cloneCategory(cat))
	}
	return out
}

// Names returns category names in match order.
func (c *Categorizer) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		names = append(names, cat.Name)
	}
	return names
}

func (c *Categorizer) indexLocked(name string) int {
	return slices.IndexFunc(c.categories, func(cat Category) bool {
		return cat.Name == name
	})
}

func cloneCategory(cat Category) Category {
	return Category{Name: cat.Name, Keywords: slices.Clone(cat.Keywords)}
}
