package session

import "github.com/dmitrijs2005/authsession/internal/client/models"

// Subscribe returns a channel that receives a snapshot after every state
// change, and a func that stops the subscription. The channel holds only
// the latest snapshot; slow readers skip intermediate ones.
func (s *Store) Subscribe() (<-chan models.Snapshot, func()) {
	ch := make(chan models.Snapshot, 1)

	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subsMu.Unlock()

	var cancelled bool
	cancel := func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		if cancelled {
			return
		}
		cancelled = true
		delete(s.subs, id)
		close(ch)
	}
	return ch, cancel
}

func (s *Store) notify() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	if len(s.subs) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// Drop the stale snapshot so the newest one always lands.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
