package phonebook

import (
	"maps"
	"slices"
	"strconv"

	ds "github.com/oaiiae/huma-phonebook/datastores"
)

// Field paths reported by [Validate].
const (
	PathFirstName    = "firstName"
	PathLastName     = "lastName"
	PathPhoneNumbers = "phoneNumbers"
)

const (
	MsgFirstNameRequired   = "Please enter your first name."
	MsgLastNameRequired    = "Please enter your last name."
	MsgPhoneNumberRequired = "Please enter your phone number."
	MsgPhoneNumbersMin     = "Please enter at least one phone number."
)

// PhoneNumberPath returns the path of the number of the i-th phone entry.
func PhoneNumberPath(i int) string { return PathPhoneNumbers + "[" + strconv.Itoa(i) + "].number" }

// PhoneLabelPath returns the path of the label of the i-th phone entry.
func PhoneLabelPath(i int) string { return PathPhoneNumbers + "[" + strconv.Itoa(i) + "].label" }

// Draft is a possibly invalid contact being edited.
type Draft struct {
	FirstName    string
	LastName     string
	PhoneNumbers []ds.PhoneNumber
}

func (d *Draft) clone() Draft {
	clone := *d
	clone.PhoneNumbers = slices.Clone(d.PhoneNumbers)
	return clone
}

func (d *Draft) contact(id ds.ContactID) *ds.Contact {
	return &ds.Contact{
		ID:           id,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		PhoneNumbers: slices.Clone(d.PhoneNumbers),
	}
}

func draftOf(c *ds.Contact) Draft {
	return Draft{
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		PhoneNumbers: slices.Clone(c.PhoneNumbers),
	}
}

// Errors maps a field path to a message. An empty Errors means valid.
type Errors map[string]string

func (e Errors) Valid() bool { return len(e) == 0 }

// Paths returns the failing paths in sorted order.
func (e Errors) Paths() []string { return slices.Sorted(maps.Keys(e)) }

// Validate checks every rule against d and reports all failures at once.
// Labels are not checked here: patches only ever set known labels.
func Validate(d *Draft) Errors {
	errs := Errors{}
	if d.FirstName == "" {
		errs[PathFirstName] = MsgFirstNameRequired
	}
	if d.LastName == "" {
		errs[PathLastName] = MsgLastNameRequired
	}
	if len(d.PhoneNumbers) == 0 {
		errs[PathPhoneNumbers] = MsgPhoneNumbersMin
	}
	for i, p := range d.PhoneNumbers {
		if p.Number == "" {
			errs[PhoneNumberPath(i)] = MsgPhoneNumberRequired
		}
	}
	return errs
}
