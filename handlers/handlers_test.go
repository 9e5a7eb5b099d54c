package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ds "github.com/oaiiae/huma-phonebook/datastores"
	"github.com/oaiiae/huma-phonebook/phonebook"
)

func newTestAPI(t *testing.T, cs ...*ds.Contact) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	book := phonebook.New(ds.NewContactsInmem(cs...))
	huma.AutoRegister(huma.NewGroup(api, "/contacts"), &Contacts{Book: book})
	huma.AutoRegister(huma.NewGroup(api, "/session"), &Session{Book: book})
	huma.AutoRegister(huma.NewGroup(api, "/deletion"), &Deletion{Book: book})
	return api
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func seed() *ds.Contact {
	return &ds.Contact{
		ID:        ds.ContactID{UUID: ds.NewUUID()},
		FirstName: "john",
		LastName:  "smith",
		PhoneNumbers: []ds.PhoneNumber{
			{ID: ds.PhoneNumberID{UUID: ds.NewUUID()}, Label: ds.LabelMobile, Number: "+49 171 987654321"},
		},
	}
}

func TestCreateContact(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/session/create")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	session := decode[SessionModel](t, resp.Body.Bytes())
	assert.Equal(t, "creating", session.State)
	require.Len(t, session.Draft.PhoneNumbers, 1)
	assert.Equal(t, ds.LabelMobile, session.Draft.PhoneNumbers[0].Label)
	assert.False(t, session.CanSubmit)

	resp = api.Patch("/session/draft", map[string]any{"firstName": "John", "lastName": "Doe"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = api.Patch("/session/phones/0", map[string]any{"number": "+49 171 987654321"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	session = decode[SessionModel](t, resp.Body.Bytes())
	assert.True(t, session.CanSubmit)
	assert.Empty(t, session.Errors)

	resp = api.Post("/session/submit")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	created := decode[ContactModel](t, resp.Body.Bytes())
	assert.Equal(t, "John", created.FirstName)

	resp = api.Get("/contacts/")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	contacts := decode[[]ContactModel](t, resp.Body.Bytes())
	require.Len(t, contacts, 1)
	assert.Equal(t, created, contacts[0])

	resp = api.Get("/contacts/" + created.ID.String())
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, created, decode[ContactModel](t, resp.Body.Bytes()))

	resp = api.Get("/session/")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "closed", decode[SessionModel](t, resp.Body.Bytes()).State)
}

func TestSubmitInvalidDraft(t *testing.T) {
	api := newTestAPI(t)

	require.Equal(t, http.StatusOK, api.Post("/session/create").Code)
	resp := api.Post("/session/submit")
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code, resp.Body.String())

	model := decode[huma.ErrorModel](t, resp.Body.Bytes())
	var locations []string
	for _, detail := range model.Errors {
		locations = append(locations, detail.Location)
	}
	assert.Equal(t, []string{"draft.firstName", "draft.lastName", "draft.phoneNumbers[0].number"}, locations)

	resp = api.Get("/contacts/")
	assert.Empty(t, decode[[]ContactModel](t, resp.Body.Bytes()))

	resp = api.Get("/session/")
	session := decode[SessionModel](t, resp.Body.Bytes())
	assert.Equal(t, "creating", session.State)
	assert.Len(t, session.VisibleErrors, 3)
}

func TestEditContact(t *testing.T) {
	c := seed()
	api := newTestAPI(t, c)

	resp := api.Post("/session/edit/" + c.ID.String())
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, http.StatusConflict, api.Post("/session/create").Code)

	require.Equal(t, http.StatusOK, api.Post("/session/phones").Code)
	resp = api.Patch("/session/phones/1", map[string]any{"label": "work", "number": "+49 30 123456789"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = api.Post("/session/submit")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	contacts := decode[[]ContactModel](t, api.Get("/contacts/").Body.Bytes())
	require.Len(t, contacts, 1)
	assert.Equal(t, c.ID, contacts[0].ID)
	require.Len(t, contacts[0].PhoneNumbers, 2)
	assert.Equal(t, ds.LabelWork, contacts[0].PhoneNumbers[1].Label)
	assert.Equal(t, "+49 30 123456789", contacts[0].PhoneNumbers[1].Number)
}

func TestSessionErrors(t *testing.T) {
	c := seed()
	api := newTestAPI(t, c)

	assert.Equal(t, http.StatusConflict, api.Post("/session/submit").Code)
	assert.Equal(t, http.StatusConflict, api.Post("/session/cancel").Code)
	assert.Equal(t, http.StatusNotFound, api.Post("/session/edit/"+ds.NewUUID().String()).Code)

	require.Equal(t, http.StatusOK, api.Post("/session/edit/"+c.ID.String()).Code)
	assert.Equal(t, http.StatusNotFound, api.Delete("/session/phones/4").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, api.Patch("/session/phones/0", map[string]any{"label": "fax"}).Code)

	require.Equal(t, http.StatusOK, api.Delete("/session/phones/0").Code)
	resp := api.Post("/session/cancel")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	contacts := decode[[]ContactModel](t, api.Get("/contacts/").Body.Bytes())
	require.Len(t, contacts, 1)
	assert.Len(t, contacts[0].PhoneNumbers, 1, "cancel leaves the stored contact untouched")
}

func TestDeleteContact(t *testing.T) {
	a, b := seed(), seed()
	b.FirstName = "jane"
	api := newTestAPI(t, a, b)

	resp := api.Post("/deletion/request/" + a.ID.String())
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	deletion := decode[DeletionModel](t, resp.Body.Bytes())
	assert.True(t, deletion.Pending)
	assert.Equal(t, "Do you really want to delete john smith?", deletion.Prompt)

	require.Equal(t, http.StatusOK, api.Post("/deletion/cancel").Code)
	assert.Len(t, decode[[]ContactModel](t, api.Get("/contacts/").Body.Bytes()), 2)

	require.Equal(t, http.StatusOK, api.Post("/deletion/request/"+a.ID.String()).Code)
	resp = api.Post("/deletion/confirm")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.False(t, decode[DeletionModel](t, resp.Body.Bytes()).Pending)

	contacts := decode[[]ContactModel](t, api.Get("/contacts/").Body.Bytes())
	require.Len(t, contacts, 1)
	assert.Equal(t, b.ID, contacts[0].ID)

	assert.Equal(t, http.StatusConflict, api.Post("/deletion/confirm").Code)
	assert.Equal(t, http.StatusNotFound, api.Post("/deletion/request/"+a.ID.String()).Code)
	assert.Equal(t, http.StatusNotFound, api.Get("/contacts/"+a.ID.String()).Code)
}
