package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/huma-phonebook/datastores"
	"github.com/oaiiae/huma-phonebook/phonebook"
)

// Deletion gates contact removal behind a confirmation step.
type Deletion struct {
	Book         *phonebook.Book
	ErrorHandler func(context.Context, error)
}

type DeletionModel struct {
	Pending   bool          `json:"pending"`
	ContactID *ds.ContactID `json:"contactId,omitempty"`
	Name      string        `json:"name,omitempty"   example:"john smith"`
	Prompt    string        `json:"prompt,omitempty" example:"Do you really want to delete john smith?"`
}

type DeletionOutput struct {
	Body DeletionModel
}

func (h *Deletion) output() *DeletionOutput {
	view := h.Book.Deletion()
	body := DeletionModel{Pending: view.Pending, Name: view.Name, Prompt: view.Prompt()}
	if view.Pending {
		body.ContactID = &view.ContactID
	}
	return &DeletionOutput{Body: body}
}

func (h *Deletion) respond(err error) (*DeletionOutput, error) {
	if err != nil {
		return nil, statusError(err)
	}
	return h.output(), nil
}

func (h *Deletion) RegisterView(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/",
		handlerWithErrorHandler(h.view, h.ErrorHandler),
		opID("get-deletion"),
	)
}

func (h *Deletion) view(_ context.Context, _ *struct{}) (*DeletionOutput, error) {
	return h.output(), nil
}

func (h *Deletion) RegisterRequest(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/request/{id}",
		handlerWithErrorHandler(h.request, h.ErrorHandler),
		opID("request-deletion"),
		opErrors(http.StatusNotFound),
	)
}

func (h *Deletion) request(ctx context.Context, input *struct {
	ID ds.ContactID `path:"id" doc:"ID of the contact to delete"`
}) (*DeletionOutput, error) {
	return h.respond(h.Book.RequestDelete(ctx, input.ID))
}

func (h *Deletion) RegisterConfirm(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/confirm",
		handlerWithErrorHandler(h.confirm, h.ErrorHandler),
		opID("confirm-deletion"),
		opErrors(http.StatusConflict, http.StatusInternalServerError),
	)
}

func (h *Deletion) confirm(ctx context.Context, _ *struct{}) (*DeletionOutput, error) {
	return h.respond(h.Book.ConfirmDelete(ctx))
}

func (h *Deletion) RegisterCancel(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/cancel",
		handlerWithErrorHandler(h.cancel, h.ErrorHandler),
		opID("cancel-deletion"),
		opErrors(http.StatusConflict),
	)
}

func (h *Deletion) cancel(ctx context.Context, _ *struct{}) (*DeletionOutput, error) {
	return h.respond(h.Book.CancelDelete(ctx))
}
