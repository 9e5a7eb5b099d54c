// Package tui is a terminal front end for a [phonebook.Book]. The screen
// shown is derived from the book: an open edit session shows the form, a
// pending deletion shows the confirmation dialog, otherwise the list.
package tui

import (
	"context"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	ds "github.com/oaiiae/huma-phonebook/datastores"
	"github.com/oaiiae/huma-phonebook/phonebook"
)

type screen int

const (
	screenList screen = iota
	screenForm
	screenConfirm
)

// Model implements [tea.Model].
type Model struct {
	ctx      context.Context
	book     *phonebook.Book
	styles   Styles
	table    table.Model
	contacts []*ds.Contact

	// form fields: 0 first name, 1 last name, then a label selector
	// and a number input per phone entry
	firstName textinput.Model
	lastName  textinput.Model
	numbers   []textinput.Model
	focus     int

	status string
}

var _ tea.Model = Model{}

func New(ctx context.Context, book *phonebook.Book) Model {
	m := Model{
		ctx:    ctx,
		book:   book,
		styles: DefaultStyles(),
		table: table.New(
			table.WithColumns([]table.Column{
				{Title: "First Name", Width: 16},
				{Title: "Last Name", Width: 16},
				{Title: "Phone Numbers", Width: 48},
			}),
			table.WithFocused(true),
			table.WithHeight(15),
		),
		firstName: newInput("Enter your first name"),
		lastName:  newInput("Enter your last name"),
	}
	m.refresh()
	return m
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.Width = 32
	return in
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-8, 3))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.status = ""
		switch m.screen() {
		case screenForm:
			return m.updateForm(msg)
		case screenConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) screen() screen {
	switch {
	case m.book.Session().State != phonebook.SessionClosed:
		return screenForm
	case m.book.Deletion().Pending:
		return screenConfirm
	default:
		return screenList
	}
}

// fail records err for the status line and reports whether there was one.
func (m *Model) fail(err error) bool {
	if err == nil {
		return false
	}
	m.status = err.Error()
	return true
}

// refresh reloads the table from the book.
func (m *Model) refresh() {
	contacts, err := m.book.List(m.ctx)
	if m.fail(err) {
		return
	}
	m.contacts = contacts
	rows := make([]table.Row, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, table.Row{c.FirstName, c.LastName, phoneSummary(c.PhoneNumbers)})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func phoneSummary(phones []ds.PhoneNumber) string {
	parts := make([]string, 0, len(phones))
	for _, p := range phones {
		parts = append(parts, p.Label.Title()+" "+p.Number)
	}
	return strings.Join(parts, ", ")
}

func (m *Model) selected() *ds.Contact {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.contacts) {
		return nil
	}
	return m.contacts[i]
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "a":
		if m.fail(m.book.OpenForCreate(m.ctx)) {
			return m, nil
		}
		return m, m.loadDraft(0)
	case "e", "enter":
		c := m.selected()
		if c == nil || m.fail(m.book.OpenForEdit(m.ctx, c.ID)) {
			return m, nil
		}
		return m, m.loadDraft(0)
	case "d":
		if c := m.selected(); c != nil {
			m.fail(m.book.RequestDelete(m.ctx, c.ID))
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.fail(m.book.ConfirmDelete(m.ctx))
		m.refresh()
	case "n", "esc":
		m.fail(m.book.CancelDelete(m.ctx))
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.fail(m.book.CancelEdit(m.ctx))
		m.refresh()
		return m, nil
	case "enter":
		_, errs, err := m.book.Submit(m.ctx)
		switch {
		case m.fail(err):
		case !errs.Valid():
			m.status = "Please fix the highlighted fields."
		default:
			m.refresh()
		}
		return m, nil
	case "tab", "down":
		return m, m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		return m, m.setFocus(m.focus - 1)
	case "ctrl+n":
		if m.fail(m.book.AddPhoneEntry(m.ctx)) {
			return m, nil
		}
		// the number input of the new entry
		return m, m.loadDraft(m.fields() + 1)
	case "ctrl+d":
		i := phoneIndex(m.focus)
		if i < 0 || m.fail(m.book.RemovePhoneEntry(m.ctx, i)) {
			return m, nil
		}
		return m, m.loadDraft(min(m.focus, m.fields()-3))
	case "left", "right":
		if i := phoneIndex(m.focus); i >= 0 && m.input(m.focus) == nil {
			m.cycleLabel(i, msg.String() == "right")
			return m, nil
		}
	}

	in := m.input(m.focus)
	if in == nil {
		return m, nil
	}
	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if value := in.Value(); value != before {
		m.fail(m.book.Apply(m.ctx, m.patch(value)))
	}
	return m, cmd
}

// loadDraft rebuilds the form inputs from the session draft.
func (m *Model) loadDraft(focus int) tea.Cmd {
	draft := m.book.Session().Draft
	m.firstName.SetValue(draft.FirstName)
	m.lastName.SetValue(draft.LastName)
	m.numbers = make([]textinput.Model, len(draft.PhoneNumbers))
	for i, p := range draft.PhoneNumbers {
		m.numbers[i] = newInput("Enter your phone number")
		m.numbers[i].SetValue(p.Number)
	}
	return m.setFocus(focus)
}

func (m *Model) fields() int { return 2 + 2*len(m.numbers) }

func (m *Model) setFocus(focus int) tea.Cmd {
	n := m.fields()
	m.focus = (focus%n + n) % n
	m.firstName.Blur()
	m.lastName.Blur()
	for i := range m.numbers {
		m.numbers[i].Blur()
	}
	if in := m.input(m.focus); in != nil {
		return in.Focus()
	}
	return nil
}

// input returns the text input at focus, or nil for a label selector.
func (m *Model) input(focus int) *textinput.Model {
	switch {
	case focus == 0:
		return &m.firstName
	case focus == 1:
		return &m.lastName
	case (focus-2)%2 == 1:
		return &m.numbers[phoneIndex(focus)]
	default:
		return nil
	}
}

// phoneIndex returns the phone entry holding the field at focus, or -1.
func phoneIndex(focus int) int {
	if focus < 2 {
		return -1
	}
	return (focus - 2) / 2
}

func (m *Model) patch(value string) phonebook.Patch {
	switch m.focus {
	case 0:
		return phonebook.SetFirstName(value)
	case 1:
		return phonebook.SetLastName(value)
	default:
		return phonebook.SetPhoneNumber{Index: phoneIndex(m.focus), Number: value}
	}
}

func (m *Model) cycleLabel(i int, forward bool) {
	draft := m.book.Session().Draft
	if i >= len(draft.PhoneNumbers) {
		return
	}
	labels := ds.Labels()
	j := slices.Index(labels, draft.PhoneNumbers[i].Label)
	if forward {
		j++
	} else {
		j--
	}
	j = (j + len(labels)) % len(labels)
	m.fail(m.book.Apply(m.ctx, phonebook.SetPhoneLabel{Index: i, Label: labels[j]}))
}
