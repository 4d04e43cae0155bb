package commerce

import "github.com/google/uuid"

// Order is a completed checkout: a snapshot of the cart at purchase time.
type Order struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	CreatedAt int64      `json:"createdAt"`
}

// Checkout turns the current cart into an order for the active account and
// clears the cart. It requires a session and a non-empty cart.
func (s *Store) Checkout() (Order, error) {
	sess, ok := s.Session()
	if !ok {
		return Order{}, ErrLoginRequired
	}

	items := s.Cart()
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}

	order := Order{
		ID:        uuid.NewString(),
		Email:     sess.Email,
		Items:     items,
		Total:     s.CartTotal(),
		CreatedAt: s.now().Unix(),
	}

	key := ordersKey(sess.Email)
	var history []Order
	s.kv.Get(key, &history)
	s.kv.Put(key, append(history, order))

	s.SaveCart(nil)
	return order, nil
}

// Orders returns the active account's order history, newest last.
func (s *Store) Orders() []Order {
	sess, ok := s.Session()
	if !ok {
		return nil
	}
	var history []Order
	s.kv.Get(ordersKey(sess.Email), &history)
	return history
}
