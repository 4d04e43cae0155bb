package commerce

import "testing"

func TestFindProduct(t *testing.T) {
	catalog := DefaultCatalog()

	p, ok := FindProduct(catalog, "sweater")
	if !ok {
		t.Fatalf("FindProduct(sweater) = false; want true")
	}
	if p.ID != "p01" || p.Price != 70 {
		t.Errorf("sweater = %+v; want id p01 price 70", p)
	}

	if _, ok := FindProduct(catalog, "missing"); ok {
		t.Errorf("FindProduct(missing) = true; want false")
	}
}

func TestDefaultCatalog_ModelCandidates(t *testing.T) {
	p, _ := FindProduct(DefaultCatalog(), "mw1")
	if len(p.ModelSources) < 2 {
		t.Fatalf("mw1 model candidates = %d; want the misnamed-first fallback pair", len(p.ModelSources))
	}
}
