// Package menu holds the storefront catalog. Prices here are authoritative:
// order creation reprices any line item whose id matches the catalog.
package menu

import "github.com/gosimple/slug"

type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"amount"`
	Image       string `json:"image"`
}

var items []Item

var index map[string]Item

func init() {
	catalog := []Item{
		{Name: "Babi Panggang 1/4 Ekor", Description: "Babi panggang khas Apung, porsi 1/4 ekor", Price: 40000, Image: "/images/bipang-quarter.jpg"},
		{Name: "Babi Panggang 1/2 Ekor", Description: "Babi panggang khas Apung, porsi 1/2 ekor", Price: 75000, Image: "/images/bipang-half.jpg"},
		{Name: "Babi Panggang 1 Ekor", Description: "Babi panggang khas Apung, porsi utuh", Price: 140000, Image: "/images/bipang-whole.jpg"},
		{Name: "Saus Bipang", Description: "Saus spesial botolan", Price: 12000, Image: "/images/saus.jpg"},
		{Name: "Nasi Putih", Description: "Nasi putih per porsi", Price: 5000, Image: "/images/nasi.jpg"},
	}

	index = make(map[string]Item, len(catalog))
	for _, it := range catalog {
		it.ID = slug.Make(it.Name)
		items = append(items, it)
		index[it.ID] = it
	}
}

// Items returns the full catalog in display order.
func Items() []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Lookup finds a catalog item by id.
func Lookup(id string) (Item, bool) {
	it, ok := index[id]
	return it, ok
}
