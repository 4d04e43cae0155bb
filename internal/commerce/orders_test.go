package commerce

import (
	"errors"
	"testing"
)

func TestCheckout_LoginRequired(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Checkout(); !errors.Is(err, ErrLoginRequired) {
		t.Errorf("Checkout error = %v; want ErrLoginRequired", err)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	s := loggedInStore(t)

	if _, err := s.Checkout(); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("Checkout error = %v; want ErrEmptyCart", err)
	}
}

func TestCheckout_SnapshotsAndClearsCart(t *testing.T) {
	s := loggedInStore(t)
	s.AddCartItem(CartItem{Key: "sweater", Price: 70, Quantity: 2})
	s.AddCartItem(CartItem{Key: "button1", Price: 24})

	order, err := s.Checkout()
	if err != nil {
		t.Fatalf("Checkout returned error: %v", err)
	}
	if order.ID == "" {
		t.Errorf("order id is empty")
	}
	if order.Email != "a@b.com" {
		t.Errorf("order email = %q; want %q", order.Email, "a@b.com")
	}
	if len(order.Items) != 2 {
		t.Errorf("order items = %d; want 2", len(order.Items))
	}
	if want := 70.0*2 + 24; order.Total != want {
		t.Errorf("order total = %v; want %v", order.Total, want)
	}

	if got := len(s.Cart()); got != 0 {
		t.Errorf("cart length after checkout = %d; want 0", got)
	}
}

func TestOrders_HistoryGrows(t *testing.T) {
	s := loggedInStore(t)

	s.AddCartItem(CartItem{Key: "sweater", Price: 70})
	first, _ := s.Checkout()
	s.AddCartItem(CartItem{Key: "button1", Price: 24})
	second, _ := s.Checkout()

	history := s.Orders()
	if len(history) != 2 {
		t.Fatalf("order history length = %d; want 2", len(history))
	}
	if history[0].ID != first.ID || history[1].ID != second.ID {
		t.Errorf("history order mismatch: %v then %v", history[0].ID, history[1].ID)
	}
	if first.ID == second.ID {
		t.Errorf("order ids collide: %q", first.ID)
	}
}

func TestOrders_RequiresSession(t *testing.T) {
	s := loggedInStore(t)
	s.AddCartItem(CartItem{Key: "sweater", Price: 70})
	s.Checkout()
	s.LogOut()

	if got := s.Orders(); got != nil {
		t.Errorf("Orders without session = %v; want nil", got)
	}
}
