package datastores

import (
	"context"
	"errors"
	"slices"
)

type (
	ContactID     struct{ UUID }
	PhoneNumberID struct{ UUID }

	// Label tags a [PhoneNumber]. See [Labels] for the accepted values.
	Label string

	PhoneNumber struct {
		ID     PhoneNumberID
		Label  Label
		Number string
	}

	Contact struct {
		ID           ContactID
		FirstName    string
		LastName     string
		PhoneNumbers []PhoneNumber
	}
)

const (
	LabelMobile  Label = "mobile"
	LabelPrivate Label = "private"
	LabelWork    Label = "work"
)

// Labels returns the accepted labels in display order.
func Labels() []Label { return []Label{LabelMobile, LabelPrivate, LabelWork} }

func (l Label) Valid() bool { return slices.Contains(Labels(), l) }

// Title returns the display text of l.
func (l Label) Title() string {
	switch l {
	case LabelMobile:
		return "Mobile"
	case LabelPrivate:
		return "Private"
	case LabelWork:
		return "Work"
	default:
		return string(l)
	}
}

// Clone returns a deep copy of c. The copy shares no memory with c.
func (c *Contact) Clone() *Contact {
	clone := *c
	clone.PhoneNumbers = slices.Clone(c.PhoneNumbers)
	return &clone
}

// FullName returns the first and last name separated by a space.
func (c *Contact) FullName() string { return c.FirstName + " " + c.LastName }

type ContactsStore interface {
	Add(context.Context, *Contact) error
	Update(context.Context, *Contact) error
	Remove(context.Context, ContactID) error
	Get(context.Context, ContactID) (*Contact, error)
	List(context.Context) ([]*Contact, error)
}

var (
	ErrObjectNotFound = errors.New("store: object not found")
	ErrObjectExists   = errors.New("store: object already exists")
)
