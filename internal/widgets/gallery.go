// Package widgets holds the page-scoped interaction helpers that survive a
// headless port: gallery image resolution and the size-guide unit table.
// Each widget no-ops silently when its subject is unknown, mirroring the
// page scripts' anchor checks.
package widgets

import (
	"context"

	"github.com/atelier-filial/filial/internal/assets"
	"github.com/atelier-filial/filial/internal/commerce"
)

// Gallery resolves a product's gallery images from ordered filename
// candidates, keeping the first existing file per slot.
type Gallery struct {
	resolver *assets.Resolver
	catalog  []commerce.Product
}

// NewGallery builds a gallery over the catalog.
func NewGallery(resolver *assets.Resolver, catalog []commerce.Product) *Gallery {
	return &Gallery{resolver: resolver, catalog: catalog}
}

// Resolve returns the resolved image URLs for the product, in slot order.
// Slots whose every candidate is missing are skipped; an unknown product key
// yields nil. Neither case is an error.
func (g *Gallery) Resolve(ctx context.Context, productKey string) []string {
	product, ok := commerce.FindProduct(g.catalog, productKey)
	if !ok {
		return nil
	}

	var images []string
	for _, slot := range product.ImageSlots {
		src, err := g.resolver.First(ctx, slot)
		if err != nil {
			continue
		}
		images = append(images, src)
	}
	return images
}
