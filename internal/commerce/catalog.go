package commerce

// Product describes a catalog entry: pricing plus the ordered asset
// candidates the 3D viewer and gallery probe for.
type Product struct {
	Key          string
	ID           string
	Name         string
	Price        float64
	Options      []string
	ModelSources []string
	// ImageSlots holds, per gallery slot, the ordered filename candidates
	// to probe. The first existing file wins.
	ImageSlots [][]string
}

// DefaultCatalog mirrors the marketing site's current drop. The sweater is
// the hero model on the home viewer.
func DefaultCatalog() []Product {
	return []Product{
		{
			Key:   "sweater",
			ID:    "p01",
			Name:  "Filial Sweater",
			Price: 70,
			Options: []string{
				"ecru", "charcoal",
			},
			ModelSources: []string{
				"assets/models/sweater.glb",
				"assets/models/sweater1.glb",
			},
			ImageSlots: [][]string{
				{"assets/products/sweater-1.jpg", "assets/products/sweater-1.png"},
				{"assets/products/sweater-2.jpg", "assets/products/sweater-2.png"},
				{"assets/products/sweater-3.jpg"},
			},
		},
		{
			Key:   "mw1",
			ID:    "p02",
			Name:  "MW1 Knit",
			Price: 85,
			ModelSources: []string{
				"assets/models/mw1.glp",
				"assets/models/mw1.glb",
			},
			ImageSlots: [][]string{
				{"assets/products/mw1-1.jpg", "assets/products/mw1-1.png"},
				{"assets/products/mw1-2.jpg"},
			},
		},
		{
			Key:   "button1",
			ID:    "p03",
			Name:  "Silver Button Set",
			Price: 24,
			ModelSources: []string{
				"assets/models/button1.glb",
			},
			ImageSlots: [][]string{
				{"assets/products/button1-1.jpg"},
			},
		},
	}
}

// FindProduct looks a product up by key.
func FindProduct(catalog []Product, key string) (Product, bool) {
	for _, p := range catalog {
		if p.Key == key {
			return p, true
		}
	}
	return Product{}, false
}
