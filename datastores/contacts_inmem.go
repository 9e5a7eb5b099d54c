package datastores

import (
	"context"
	"slices"
	"sync"
)

// ContactsInmem implements [ContactsStore].
// Records are kept in insertion order and copied on the way in and out.
type ContactsInmem struct {
	mu       sync.Mutex
	index    map[ContactID]int
	contacts []*Contact
}

var _ ContactsStore = (*ContactsInmem)(nil)

func NewContactsInmem(cs ...*Contact) *ContactsInmem {
	s := &ContactsInmem{index: make(map[ContactID]int, len(cs))}
	for _, c := range cs {
		if _, loaded := s.index[c.ID]; loaded {
			continue
		}
		s.index[c.ID] = len(s.contacts)
		s.contacts = append(s.contacts, c.Clone())
	}
	return s
}

func (s *ContactsInmem) Add(_ context.Context, c *Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, loaded := s.index[c.ID]; loaded {
		return ErrObjectExists
	}
	s.index[c.ID] = len(s.contacts)
	s.contacts = append(s.contacts, c.Clone())
	return nil
}

// Update replaces the record with the same ID, keeping its position.
func (s *ContactsInmem) Update(_ context.Context, c *Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.index[c.ID]
	if !ok {
		return ErrObjectNotFound
	}
	s.contacts[index] = c.Clone()
	return nil
}

// Remove deletes the record if present. Removing an unknown ID is not an error.
func (s *ContactsInmem) Remove(_ context.Context, id ContactID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.index[id]
	if !ok {
		return nil
	}
	delete(s.index, id)
	s.contacts = slices.Delete(s.contacts, index, index+1)
	for i := index; i < len(s.contacts); i++ {
		s.index[s.contacts[i].ID] = i
	}
	return nil
}

func (s *ContactsInmem) Get(_ context.Context, id ContactID) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.index[id]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return s.contacts[index].Clone(), nil
}

func (s *ContactsInmem) List(_ context.Context) ([]*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts := make([]*Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		contacts = append(contacts, c.Clone())
	}
	return contacts, nil
}

func (s *ContactsInmem) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contacts)
}
