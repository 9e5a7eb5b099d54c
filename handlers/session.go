package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/huma-phonebook/datastores"
	"github.com/oaiiae/huma-phonebook/phonebook"
)

// Session exposes the create/edit workflow. Every mutation responds with
// the resulting session so clients can render errors without another call.
type Session struct {
	Book         *phonebook.Book
	ErrorHandler func(context.Context, error)
}

type DraftModel struct {
	FirstName    string             `json:"firstName"`
	LastName     string             `json:"lastName"`
	PhoneNumbers []PhoneNumberModel `json:"phoneNumbers"`
}

type SessionModel struct {
	State     string        `json:"state"               enum:"closed,creating,editing"`
	ContactID *ds.ContactID `json:"contactId,omitempty"`
	Draft     DraftModel    `json:"draft"`

	Errors        map[string]string `json:"errors"        doc:"validation errors by field path"`
	VisibleErrors map[string]string `json:"visibleErrors" doc:"errors of touched fields, or all after a submit attempt"`
	CanSubmit     bool              `json:"canSubmit"`
}

type SessionOutput struct {
	Body SessionModel
}

func (h *Session) output() *SessionOutput {
	view := h.Book.Session()
	body := SessionModel{
		State: view.State.String(),
		Draft: DraftModel{
			FirstName:    view.Draft.FirstName,
			LastName:     view.Draft.LastName,
			PhoneNumbers: phoneNumberModels(view.Draft.PhoneNumbers),
		},
		Errors:        view.Errors,
		VisibleErrors: view.VisibleErrors,
		CanSubmit:     view.CanSubmit,
	}
	if view.State != phonebook.SessionClosed {
		body.ContactID = &view.ContactID
	}
	return &SessionOutput{Body: body}
}

// respond returns the session view, or the mapped error.
func (h *Session) respond(err error) (*SessionOutput, error) {
	if err != nil {
		return nil, statusError(err)
	}
	return h.output(), nil
}

func (h *Session) RegisterView(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/",
		handlerWithErrorHandler(h.view, h.ErrorHandler),
		opID("get-session"),
	)
}

func (h *Session) view(_ context.Context, _ *struct{}) (*SessionOutput, error) {
	return h.output(), nil
}

func (h *Session) RegisterCreate(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/create",
		handlerWithErrorHandler(h.create, h.ErrorHandler),
		opID("open-session-create"),
		opErrors(http.StatusConflict),
	)
}

func (h *Session) create(ctx context.Context, _ *struct{}) (*SessionOutput, error) {
	return h.respond(h.Book.OpenForCreate(ctx))
}

func (h *Session) RegisterEdit(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/edit/{id}",
		handlerWithErrorHandler(h.edit, h.ErrorHandler),
		opID("open-session-edit"),
		opErrors(http.StatusNotFound, http.StatusConflict),
	)
}

func (h *Session) edit(ctx context.Context, input *struct {
	ID ds.ContactID `path:"id" doc:"ID of the contact to edit"`
}) (*SessionOutput, error) {
	return h.respond(h.Book.OpenForEdit(ctx, input.ID))
}

func (h *Session) RegisterDraft(api huma.API) { // called by [huma.AutoRegister]
	huma.Patch(api, "/draft",
		handlerWithErrorHandler(h.draft, h.ErrorHandler),
		opID("patch-session-draft"),
		opErrors(http.StatusConflict),
	)
}

func (h *Session) draft(ctx context.Context, input *struct {
	Body struct {
		FirstName *string `json:"firstName,omitempty" example:"john"`
		LastName  *string `json:"lastName,omitempty"  example:"smith"`
	}
}) (*SessionOutput, error) {
	if input.Body.FirstName != nil {
		if err := h.Book.Apply(ctx, phonebook.SetFirstName(*input.Body.FirstName)); err != nil {
			return h.respond(err)
		}
	}
	if input.Body.LastName != nil {
		if err := h.Book.Apply(ctx, phonebook.SetLastName(*input.Body.LastName)); err != nil {
			return h.respond(err)
		}
	}
	return h.output(), nil
}

func (h *Session) RegisterAddPhone(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/phones",
		handlerWithErrorHandler(h.addPhone, h.ErrorHandler),
		opID("add-session-phone"),
		opErrors(http.StatusConflict),
	)
}

func (h *Session) addPhone(ctx context.Context, _ *struct{}) (*SessionOutput, error) {
	return h.respond(h.Book.AddPhoneEntry(ctx))
}

func (h *Session) RegisterPatchPhone(api huma.API) { // called by [huma.AutoRegister]
	huma.Patch(api, "/phones/{index}",
		handlerWithErrorHandler(h.patchPhone, h.ErrorHandler),
		opID("patch-session-phone"),
		opErrors(http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity),
	)
}

func (h *Session) patchPhone(ctx context.Context, input *struct {
	Index int `path:"index" minimum:"0" doc:"position of the phone entry"`
	Body  struct {
		Label  *ds.Label `json:"label,omitempty"  enum:"mobile,private,work"`
		Number *string   `json:"number,omitempty" example:"+49 171 987654321"`
	}
}) (*SessionOutput, error) {
	if input.Body.Label != nil {
		err := h.Book.Apply(ctx, phonebook.SetPhoneLabel{Index: input.Index, Label: *input.Body.Label})
		if err != nil {
			return h.respond(err)
		}
	}
	if input.Body.Number != nil {
		err := h.Book.Apply(ctx, phonebook.SetPhoneNumber{Index: input.Index, Number: *input.Body.Number})
		if err != nil {
			return h.respond(err)
		}
	}
	return h.output(), nil
}

func (h *Session) RegisterRemovePhone(api huma.API) { // called by [huma.AutoRegister]
	huma.Delete(api, "/phones/{index}",
		handlerWithErrorHandler(h.removePhone, h.ErrorHandler),
		opID("remove-session-phone"),
		opErrors(http.StatusNotFound, http.StatusConflict),
	)
}

func (h *Session) removePhone(ctx context.Context, input *struct {
	Index int `path:"index" minimum:"0" doc:"position of the phone entry"`
}) (*SessionOutput, error) {
	return h.respond(h.Book.RemovePhoneEntry(ctx, input.Index))
}

func (h *Session) RegisterSubmit(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/submit",
		handlerWithErrorHandler(h.submit, h.ErrorHandler),
		opID("submit-session"),
		opErrors(http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity),
	)
}

type SessionSubmitOutput struct {
	Body ContactModel
}

func (h *Session) submit(ctx context.Context, _ *struct{}) (*SessionSubmitOutput, error) {
	contact, errs, err := h.Book.Submit(ctx)
	if err != nil {
		return nil, statusError(err)
	}
	if !errs.Valid() {
		details := make([]error, 0, len(errs))
		for _, path := range errs.Paths() {
			details = append(details, &huma.ErrorDetail{Location: "draft." + path, Message: errs[path]})
		}
		return nil, huma.Error422UnprocessableEntity("draft is invalid", details...)
	}
	return &SessionSubmitOutput{Body: contactModel(contact)}, nil
}

func (h *Session) RegisterCancel(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/cancel",
		handlerWithErrorHandler(h.cancel, h.ErrorHandler),
		opID("cancel-session"),
		opErrors(http.StatusConflict),
	)
}

func (h *Session) cancel(ctx context.Context, _ *struct{}) (*SessionOutput, error) {
	return h.respond(h.Book.CancelEdit(ctx))
}
