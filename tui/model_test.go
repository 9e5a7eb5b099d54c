package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ds "github.com/oaiiae/huma-phonebook/datastores"
	"github.com/oaiiae/huma-phonebook/phonebook"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func send(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func newModel(t *testing.T, cs ...*ds.Contact) (Model, *phonebook.Book) {
	t.Helper()
	book := phonebook.New(ds.NewContactsInmem(cs...))
	return New(context.Background(), book), book
}

func contacts(t *testing.T, book *phonebook.Book) []*ds.Contact {
	t.Helper()
	cs, err := book.List(context.Background())
	require.NoError(t, err)
	return cs
}

func seed(first, last string) *ds.Contact {
	return &ds.Contact{
		ID:        ds.ContactID{UUID: ds.NewUUID()},
		FirstName: first,
		LastName:  last,
		PhoneNumbers: []ds.PhoneNumber{
			{ID: ds.PhoneNumberID{UUID: ds.NewUUID()}, Label: ds.LabelMobile, Number: "+49 171 987654321"},
		},
	}
}

func TestEmptyList(t *testing.T) {
	m, _ := newModel(t)
	assert.Equal(t, screenList, m.screen())
	assert.Contains(t, m.View(), "No contacts have been entered yet")
}

func TestAddContactWithTwoNumbers(t *testing.T) {
	m, book := newModel(t)

	m = send(t, m, runes("a"))
	require.Equal(t, screenForm, m.screen())
	assert.Contains(t, m.View(), "Add Contact")
	assert.Len(t, m.numbers, 1)

	m = send(t, m,
		runes("John"), tea.KeyMsg{Type: tea.KeyTab},
		runes("Doe"), tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight}, // mobile → private → work
		tea.KeyMsg{Type: tea.KeyTab},
		runes("+49 30 123456789"),
		tea.KeyMsg{Type: tea.KeyCtrlN},
		runes("+49 171 987654321"),
	)
	assert.Len(t, m.numbers, 2)
	assert.Equal(t, 5, m.focus)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenList, m.screen(), m.status)

	cs := contacts(t, book)
	require.Len(t, cs, 1)
	assert.Equal(t, "John", cs[0].FirstName)
	assert.Equal(t, "Doe", cs[0].LastName)
	require.Len(t, cs[0].PhoneNumbers, 2)
	assert.Equal(t, ds.LabelWork, cs[0].PhoneNumbers[0].Label)
	assert.Equal(t, "+49 30 123456789", cs[0].PhoneNumbers[0].Number)
	assert.Equal(t, ds.LabelMobile, cs[0].PhoneNumbers[1].Label)
	assert.Equal(t, "+49 171 987654321", cs[0].PhoneNumbers[1].Number)

	view := m.View()
	assert.Contains(t, view, "John")
	assert.Contains(t, view, "Work +49 30 123456789")
}

func TestSubmitIncompleteForm(t *testing.T) {
	m, book := newModel(t)

	m = send(t, m, runes("a"), runes("John"))
	assert.NotContains(t, m.View(), phonebook.MsgLastNameRequired, "untouched fields stay quiet")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, screenForm, m.screen())
	view := m.View()
	assert.Contains(t, view, phonebook.MsgLastNameRequired)
	assert.Contains(t, view, phonebook.MsgPhoneNumberRequired)
	assert.Empty(t, contacts(t, book))
}

func TestEditCancel(t *testing.T) {
	c := seed("john", "smith")
	m, book := newModel(t, c)

	m = send(t, m, runes("e"))
	require.Equal(t, screenForm, m.screen())
	assert.Contains(t, m.View(), "Update Contact")
	assert.Equal(t, "john", m.firstName.Value())

	m = send(t, m,
		tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, // label of the first entry
		tea.KeyMsg{Type: tea.KeyCtrlD},
	)
	assert.Empty(t, m.numbers)
	assert.Equal(t, 1, m.focus)
	assert.Contains(t, m.View(), phonebook.MsgPhoneNumbersMin)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenList, m.screen())
	assert.Equal(t, []*ds.Contact{c}, contacts(t, book))
}

func TestEditAddNumber(t *testing.T) {
	c := seed("john", "smith")
	m, book := newModel(t, c)

	m = send(t, m,
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyCtrlN},
		runes("+49 30 123456789"),
		tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyLeft}, // mobile → work
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	require.Equal(t, screenList, m.screen(), m.status)

	cs := contacts(t, book)
	require.Len(t, cs, 1)
	assert.Equal(t, c.ID, cs[0].ID)
	require.Len(t, cs[0].PhoneNumbers, 2)
	assert.Equal(t, ds.LabelWork, cs[0].PhoneNumbers[1].Label)
}

func TestDeleteFlow(t *testing.T) {
	a, b := seed("john", "smith"), seed("jane", "roe")
	m, book := newModel(t, a, b)

	m = send(t, m, runes("d"))
	require.Equal(t, screenConfirm, m.screen())
	assert.Contains(t, m.View(), "Do you really want to delete john smith?")

	m = send(t, m, runes("n"))
	assert.Equal(t, screenList, m.screen())
	assert.Len(t, contacts(t, book), 2)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, runes("d"), runes("y"))
	assert.Equal(t, screenList, m.screen())
	assert.Equal(t, []*ds.Contact{a}, contacts(t, book))
	assert.Len(t, m.contacts, 1)
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
