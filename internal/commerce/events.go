package commerce

// guestBucket holds event scores recorded before the player logs in. The gate
// minigame runs pre-login, so scores cannot always be tied to an account.
const guestBucket = "guest"

func (s *Store) eventEmail() string {
	if sess, ok := s.Session(); ok {
		return sess.Email
	}
	return guestBucket
}

// BestScore returns the locally recorded best score for the event, scoped to
// the active account (or the guest bucket).
func (s *Store) BestScore(eventID string) int64 {
	var best int64
	s.kv.Get(bestKey(eventID, s.eventEmail()), &best)
	return best
}

// RecordScore keeps the maximum of the stored and submitted score. It returns
// true when the submitted score became the new best.
func (s *Store) RecordScore(eventID string, score int64) bool {
	if eventID == "" || score < 0 {
		return false
	}

	key := bestKey(eventID, s.eventEmail())
	var best int64
	s.kv.Get(key, &best)
	if score <= best {
		return false
	}
	s.kv.Put(key, score)
	return true
}

// JoinEvent adds the event to the account's joined list. Joining twice is a
// no-op.
func (s *Store) JoinEvent(eventID string) {
	if eventID == "" {
		return
	}

	key := joinedKey(s.eventEmail())
	var joined []string
	s.kv.Get(key, &joined)
	for _, id := range joined {
		if id == eventID {
			return
		}
	}
	s.kv.Put(key, append(joined, eventID))
}

// JoinedEvents lists the events the account has joined.
func (s *Store) JoinedEvents() []string {
	var joined []string
	s.kv.Get(joinedKey(s.eventEmail()), &joined)
	return joined
}
