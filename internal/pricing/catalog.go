package pricing

import (
	"strings"

	"github.com/vuhd/tourbooking/internal/domain"
)

// Category is one bookable person category of a tour: the backend-issued id,
// the semantic key inferred from its display name, and the per-head surcharge
// applied to seats counted beyond capacity.
type Category struct {
	ID            string
	Key           domain.PersonTypeKey
	Name          string
	SurchargeRate int64
}

// Catalog holds the person categories of a single tour, immutable for the
// duration of a booking session.
type Catalog struct {
	categories []Category
	index      map[string]int
}

// BuildCatalog merges a tour's surcharge table with its allow-list into a
// deduplicated category set. Entries that resolve no id are dropped. A
// category present in both sources keeps the allow-list display name.
func BuildCatalog(additional []domain.AdditionalPrice, allow []domain.PersonTypeRef) *Catalog {
	c := &Catalog{index: make(map[string]int)}

	for _, ap := range additional {
		if ap.TypeOfPerson.ID == "" {
			continue
		}
		c.upsert(ap.TypeOfPerson.ID, ap.TypeOfPerson.Name, ap.MoneyMore)
	}
	for _, ref := range allow {
		if ref.ID == "" {
			continue
		}
		c.upsert(ref.ID, ref.Name, 0)
	}

	return c
}

func (c *Catalog) upsert(id, name string, rate int64) {
	if i, ok := c.index[id]; ok {
		if name != "" {
			c.categories[i].Name = name
			c.categories[i].Key = KeyForName(name)
		}
		if rate > 0 {
			c.categories[i].SurchargeRate = rate
		}
		return
	}
	c.index[id] = len(c.categories)
	c.categories = append(c.categories, Category{
		ID:            id,
		Key:           KeyForName(name),
		Name:          name,
		SurchargeRate: rate,
	})
}

// All returns every category, keyed or not. Unkeyed categories still carry
// surcharge rates and participate in totals.
func (c *Catalog) All() []Category {
	return c.categories
}

// Known returns the categories that matched one of the four semantic keys,
// in catalog order. Categories whose names match no heuristic are excluded.
func (c *Catalog) Known() []Category {
	known := make([]Category, 0, len(c.categories))
	for _, cat := range c.categories {
		if cat.Key != "" {
			known = append(known, cat)
		}
	}
	return known
}

// ByKey finds the category carrying the given semantic key.
func (c *Catalog) ByKey(key domain.PersonTypeKey) (Category, bool) {
	for _, cat := range c.categories {
		if cat.Key == key {
			return cat, true
		}
	}
	return Category{}, false
}

// Rate returns the per-head surcharge for a category id, zero when the
// category carries no surcharge entry.
func (c *Catalog) Rate(id string) int64 {
	if i, ok := c.index[id]; ok {
		return c.categories[i].SurchargeRate
	}
	return 0
}

func (c *Catalog) Len() int {
	return len(c.categories)
}

// KeyForName infers the semantic key from a localized display name. The
// backend issues Vietnamese names, so matching is case-insensitive but
// diacritics-sensitive, checked in priority order. Names matching nothing
// get no key.
func KeyForName(name string) domain.PersonTypeKey {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "người lớn"):
		return domain.PersonTypeAdult
	case strings.Contains(lower, "trẻ em") && !strings.Contains(lower, "2-5"):
		return domain.PersonTypeChild
	case strings.Contains(lower, "2-5"):
		return domain.PersonTypeSmallChild
	case strings.Contains(lower, "em bé"):
		return domain.PersonTypeInfant
	}
	return ""
}
