package phonebook

import (
	"errors"
	"fmt"
	"slices"

	ds "github.com/oaiiae/huma-phonebook/datastores"
)

var (
	ErrSessionOpen   = errors.New("phonebook: edit session already open")
	ErrSessionClosed = errors.New("phonebook: no edit session open")
	ErrPhoneIndex    = errors.New("phonebook: phone entry index out of range")
	ErrInvalidLabel  = errors.New("phonebook: invalid phone label")
)

type SessionState int

const (
	SessionClosed SessionState = iota
	SessionCreating
	SessionEditing
)

func (s SessionState) String() string {
	switch s {
	case SessionClosed:
		return "closed"
	case SessionCreating:
		return "creating"
	case SessionEditing:
		return "editing"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// Session is the create/edit state machine. It never touches the store:
// the [Book] commits the draft once it validates.
type Session struct {
	state     SessionState
	contactID ds.ContactID
	draft     Draft

	touchedNames  map[string]bool
	touchedPhones map[ds.PhoneNumberID]bool
	attempted     bool
}

func emptyDraft() Draft {
	return Draft{PhoneNumbers: []ds.PhoneNumber{{Label: ds.LabelMobile}}}
}

func (s *Session) State() SessionState { return s.state }
func (s *Session) ContactID() ds.ContactID { return s.contactID }
func (s *Session) Open() bool { return s.state != SessionClosed }

// Draft returns a copy of the current draft.
func (s *Session) Draft() Draft { return s.draft.clone() }

// Errors validates the current draft.
func (s *Session) Errors() Errors {
	if !s.Open() {
		return Errors{}
	}
	return Validate(&s.draft)
}

// VisibleErrors returns the errors a form should display: those of touched
// fields, or all of them once a submit was attempted.
func (s *Session) VisibleErrors() Errors {
	errs := s.Errors()
	if s.attempted {
		return errs
	}
	visible := Errors{}
	for path, msg := range errs {
		if s.touchedNames[path] {
			visible[path] = msg
		}
	}
	for i, p := range s.draft.PhoneNumbers {
		path := PhoneNumberPath(i)
		if msg, ok := errs[path]; ok && s.touchedPhones[p.ID] {
			visible[path] = msg
		}
	}
	return visible
}

func (s *Session) CanSubmit() bool { return s.Open() && s.Errors().Valid() }

func (s *Session) reset(state SessionState, id ds.ContactID, draft Draft) {
	s.state = state
	s.contactID = id
	s.draft = draft
	s.touchedNames = map[string]bool{}
	s.touchedPhones = map[ds.PhoneNumberID]bool{}
	s.attempted = false
}

func (s *Session) openForCreate(newID func() ds.UUID) error {
	if s.Open() {
		return ErrSessionOpen
	}
	draft := emptyDraft()
	draft.PhoneNumbers[0].ID = ds.PhoneNumberID{UUID: newID()}
	s.reset(SessionCreating, ds.ContactID{UUID: newID()}, draft)
	return nil
}

func (s *Session) openForEdit(c *ds.Contact) error {
	if s.Open() {
		return ErrSessionOpen
	}
	s.reset(SessionEditing, c.ID, draftOf(c))
	return nil
}

func (s *Session) apply(p Patch, newID func() ds.UUID) error {
	if !s.Open() {
		return ErrSessionClosed
	}
	return p.apply(s, newID)
}

func (s *Session) close() { s.reset(SessionClosed, ds.ContactID{}, emptyDraft()) }

func (s *Session) phone(i int) (*ds.PhoneNumber, error) {
	if i < 0 || i >= len(s.draft.PhoneNumbers) {
		return nil, fmt.Errorf("%w: %d", ErrPhoneIndex, i)
	}
	return &s.draft.PhoneNumbers[i], nil
}

// Patch is a single field-level change to a [Draft].
type Patch interface {
	apply(s *Session, newID func() ds.UUID) error
}

type (
	SetFirstName string
	SetLastName  string
)

type SetPhoneLabel struct {
	Index int
	Label ds.Label
}

type SetPhoneNumber struct {
	Index  int
	Number string
}

type AddPhone struct{}

type RemovePhone struct{ Index int }

func (p SetFirstName) apply(s *Session, _ func() ds.UUID) error {
	s.draft.FirstName = string(p)
	s.touchedNames[PathFirstName] = true
	return nil
}

func (p SetLastName) apply(s *Session, _ func() ds.UUID) error {
	s.draft.LastName = string(p)
	s.touchedNames[PathLastName] = true
	return nil
}

func (p SetPhoneLabel) apply(s *Session, _ func() ds.UUID) error {
	if !p.Label.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLabel, p.Label)
	}
	phone, err := s.phone(p.Index)
	if err != nil {
		return err
	}
	phone.Label = p.Label
	return nil
}

func (p SetPhoneNumber) apply(s *Session, _ func() ds.UUID) error {
	phone, err := s.phone(p.Index)
	if err != nil {
		return err
	}
	phone.Number = p.Number
	s.touchedPhones[phone.ID] = true
	return nil
}

func (AddPhone) apply(s *Session, newID func() ds.UUID) error {
	s.draft.PhoneNumbers = append(s.draft.PhoneNumbers, ds.PhoneNumber{
		ID:    ds.PhoneNumberID{UUID: newID()},
		Label: ds.LabelMobile,
	})
	return nil
}

// RemovePhone may leave the draft without any entry; [Validate] then
// reports it and submitting is refused.
func (p RemovePhone) apply(s *Session, _ func() ds.UUID) error {
	phone, err := s.phone(p.Index)
	if err != nil {
		return err
	}
	delete(s.touchedPhones, phone.ID)
	s.draft.PhoneNumbers = slices.Delete(s.draft.PhoneNumbers, p.Index, p.Index+1)
	s.touchedNames[PathPhoneNumbers] = true
	return nil
}
