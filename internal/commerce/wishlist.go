package commerce

// Wishlist returns the active account's wishlisted product ids. Without a
// session it is empty. Insertion order is preserved but not a contract.
func (s *Store) Wishlist() []string {
	sess, ok := s.Session()
	if !ok {
		return nil
	}
	var ids []string
	s.kv.Get(wishlistKey(sess.Email), &ids)
	return ids
}

// ToggleWishlist flips the membership of productID in the active account's
// wishlist and returns the new membership state. It requires a session.
func (s *Store) ToggleWishlist(productID string) (bool, error) {
	sess, ok := s.Session()
	if !ok {
		return false, ErrLoginRequired
	}
	if productID == "" {
		return false, nil
	}

	key := wishlistKey(sess.Email)
	var ids []string
	s.kv.Get(key, &ids)

	kept := ids[:0]
	removed := false
	for _, id := range ids {
		if id == productID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}

	if !removed {
		kept = append(kept, productID)
	}
	s.kv.Put(key, kept)
	return !removed, nil
}
