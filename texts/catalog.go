package texts

import (
	"sync"

	"golang.org/x/text/language"
)

// Catalog holds one table per language and picks the best match for a
// request's Accept-Language value. The first language registered is the
// fallback.
type Catalog struct {
	mu     sync.RWMutex
	tags   []language.Tag
	tables map[language.Tag]Table
}

// FallbackTag is the language of the built-in table.
var FallbackTag = language.English

// DefaultCatalog builds an English catalog from the built-in table with
// host overrides layered on top.
func DefaultCatalog(overrides Table) *Catalog {
	return NewCatalog(FallbackTag, Merge(Default(), overrides))
}

// NewCatalog creates a catalog with fallback as the default language.
func NewCatalog(fallback language.Tag, table Table) *Catalog {
	return &Catalog{
		tags:   []language.Tag{fallback},
		tables: map[language.Tag]Table{fallback: table},
	}
}

// Add registers a table for a language, layering it over any table already
// registered for that tag. Keys missing from a language fall through to the
// fallback language at lookup time, so fallback updates (a reloaded texts
// file, say) reach every language no matter when it was added.
func (c *Catalog) Add(tag language.Tag, table Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.tables[tag]; !exists {
		c.tags = append(c.tags, tag)
	}
	c.tables[tag] = Merge(c.tables[tag], table)
}

// Table returns the best table for an Accept-Language header value. An
// empty or unparseable value yields the fallback table.
func (c *Catalog) Table(acceptLanguage string) Table {
	c.mu.RLock()
	defer c.mu.RUnlock()
	matcher := language.NewMatcher(c.tags)
	// The matched tag may carry request extensions; the index identifies
	// the registered tag.
	_, index := language.MatchStrings(matcher, acceptLanguage)
	if index == 0 {
		return c.tables[c.tags[0]]
	}
	return Merge(c.tables[c.tags[0]], c.tables[c.tags[index]])
}
