package phonebook

import (
	"errors"

	ds "github.com/oaiiae/huma-phonebook/datastores"
)

var ErrNothingPending = errors.New("phonebook: no deletion pending")

// Deletion holds the contact awaiting a delete confirmation, if any.
// A new request replaces the pending one.
type Deletion struct {
	pending bool
	target  ds.ContactID
	name    string
}

func (d *Deletion) request(c *ds.Contact) {
	d.pending, d.target, d.name = true, c.ID, c.FullName()
}

func (d *Deletion) clear() { *d = Deletion{} }

// DeletionView is a snapshot of a [Deletion].
type DeletionView struct {
	Pending   bool
	ContactID ds.ContactID
	Name      string
}

// Prompt returns the confirmation question for the pending contact.
func (v DeletionView) Prompt() string {
	if !v.Pending {
		return ""
	}
	return "Do you really want to delete " + v.Name + "?"
}
