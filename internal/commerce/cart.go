package commerce

import "math"

// CartItem is one cart line. Identity is Key; adding the same key again
// increments the quantity instead of duplicating the line.
type CartItem struct {
	Key      string  `json:"key"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
	Option   string  `json:"option"`
}

// normalizeItem coerces a line into its invariants: price > 0 else 0,
// quantity a positive integer, name defaulted, id defaulted to the key.
func normalizeItem(item CartItem) CartItem {
	if item.ID == "" {
		item.ID = item.Key
	}
	if item.Name == "" {
		item.Name = "Product"
	}
	if !(item.Price > 0) || math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
		item.Price = 0
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	return item
}

// Cart returns the stored cart lines, normalized. Lines without a key are
// dropped. A missing or corrupt record reads as an empty cart.
func (s *Store) Cart() []CartItem {
	var items []CartItem
	s.kv.Get(cartKey, &items)

	valid := items[:0]
	for _, item := range items {
		if item.Key == "" {
			continue
		}
		valid = append(valid, normalizeItem(item))
	}
	return valid
}

// SaveCart stores the given lines, best-effort.
func (s *Store) SaveCart(items []CartItem) {
	s.kv.Put(cartKey, items)
	s.notifyCart(items)
}

func (s *Store) notifyCart(items []CartItem) {
	if s.Indicator != nil {
		s.Indicator(s.countOf(items))
	}
}

func (s *Store) countOf(items []CartItem) int {
	count := 0
	for _, item := range items {
		if item.Quantity > 0 {
			count += item.Quantity
		}
	}
	return count
}

// AddCartItem adds a line to the cart. It requires an active session and
// returns ErrLoginRequired otherwise, so the caller can route to the login
// flow. Adding an existing key increments its quantity (at least 1 per add)
// and backfills a missing image.
func (s *Store) AddCartItem(item CartItem) error {
	if _, ok := s.Session(); !ok {
		return ErrLoginRequired
	}
	if item.Key == "" {
		return nil
	}

	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}

	items := s.Cart()
	for i := range items {
		if items[i].Key != item.Key {
			continue
		}
		items[i].Quantity += qty
		if items[i].Image == "" && item.Image != "" {
			items[i].Image = item.Image
		}
		s.SaveCart(items)
		return nil
	}

	item.Quantity = qty
	s.SaveCart(append(items, normalizeItem(item)))
	return nil
}

// SetCartItemQuantity clamps the quantity to a positive integer. Unknown keys
// are a no-op.
func (s *Store) SetCartItemQuantity(key string, quantity int) {
	items := s.Cart()
	for i := range items {
		if items[i].Key != key {
			continue
		}
		if quantity < 1 {
			quantity = 1
		}
		items[i].Quantity = quantity
		s.SaveCart(items)
		return
	}
}

// RemoveCartItem drops the line with the given key. Removing an absent key is
// a no-op, so the operation is idempotent.
func (s *Store) RemoveCartItem(key string) {
	items := s.Cart()
	kept := items[:0]
	for _, item := range items {
		if item.Key != key {
			kept = append(kept, item)
		}
	}
	s.SaveCart(kept)
}

// CartCount is the sum of line quantities.
func (s *Store) CartCount() int {
	return s.countOf(s.Cart())
}

// CartTotal is the sum of price times quantity over all lines.
func (s *Store) CartTotal() float64 {
	total := 0.0
	for _, item := range s.Cart() {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
