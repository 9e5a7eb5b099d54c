package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/huma-phonebook/datastores"
	"github.com/oaiiae/huma-phonebook/phonebook"
)

type handler[I, O any] = func(context.Context, *I) (*O, error)

func handlerWithErrorHandler[I, O any](handler handler[I, O], do func(context.Context, error)) handler[I, O] {
	if do == nil {
		return handler
	}

	return func(ctx context.Context, i *I) (*O, error) {
		o, err := handler(ctx, i)
		if err != nil {
			do(ctx, err)
		}
		return o, err
	}
}

func opErrors(codes ...int) func(*huma.Operation) {
	return func(o *huma.Operation) { o.Errors = codes }
}

func opID(id string) func(*huma.Operation) {
	return func(o *huma.Operation) { o.OperationID = id }
}

// statusError maps the book's errors to HTTP statuses.
func statusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ds.ErrObjectNotFound):
		return huma.Error404NotFound("id not found", err)
	case errors.Is(err, phonebook.ErrPhoneIndex):
		return huma.Error404NotFound("phone entry not found", err)
	case errors.Is(err, phonebook.ErrSessionOpen),
		errors.Is(err, phonebook.ErrSessionClosed),
		errors.Is(err, phonebook.ErrNothingPending):
		return huma.Error409Conflict(err.Error(), err)
	case errors.Is(err, phonebook.ErrInvalidLabel):
		return huma.Error422UnprocessableEntity("invalid label", err)
	default:
		return err
	}
}

type PhoneNumberModel struct {
	ID ds.PhoneNumberID `json:"id" readOnly:"true"`

	Label  ds.Label `json:"label"  enum:"mobile,private,work" example:"mobile"`
	Number string   `json:"number" example:"+49 171 987654321"`
}

type ContactModel struct {
	ID ds.ContactID `json:"id" readOnly:"true"`

	FirstName    string             `json:"firstName"    example:"john"`
	LastName     string             `json:"lastName"     example:"smith"`
	PhoneNumbers []PhoneNumberModel `json:"phoneNumbers"`
}

func phoneNumberModels(phones []ds.PhoneNumber) []PhoneNumberModel {
	models := make([]PhoneNumberModel, 0, len(phones))
	for _, p := range phones {
		models = append(models, PhoneNumberModel{ID: p.ID, Label: p.Label, Number: p.Number})
	}
	return models
}

func contactModel(c *ds.Contact) ContactModel {
	return ContactModel{
		ID:           c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		PhoneNumbers: phoneNumberModels(c.PhoneNumbers),
	}
}
