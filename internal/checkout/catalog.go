package checkout

import "sort"

// CatalogEntry ties a sellable product to its provider-side identifiers and
// the CRM automation tag a purchase should carry.
type CatalogEntry struct {
	ProductID       string
	Name            string
	StripeProductID string
	StripePriceID   string
	CRMTag          string
}

// Catalog is the fixed product-to-price table checkout-by-product requests
// resolve against.
type Catalog struct {
	byID map[string]CatalogEntry
}

// NewCatalog indexes entries by product id. Later duplicates overwrite
// earlier ones.
func NewCatalog(entries []CatalogEntry) *Catalog {
	byID := make(map[string]CatalogEntry, len(entries))
	for _, entry := range entries {
		if entry.ProductID == "" {
			continue
		}
		byID[entry.ProductID] = entry
	}
	return &Catalog{byID: byID}
}

// Lookup returns the entry for a product id.
func (c *Catalog) Lookup(productID string) (CatalogEntry, bool) {
	entry, ok := c.byID[productID]
	return entry, ok
}

// ProductIDs lists the catalog's product ids in sorted order.
func (c *Catalog) ProductIDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len reports how many products the catalog holds.
func (c *Catalog) Len() int {
	return len(c.byID)
}
