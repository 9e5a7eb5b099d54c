package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/oaiiae/huma-phonebook/phonebook"
)

func (m Model) View() string {
	var b strings.Builder
	switch m.screen() {
	case screenForm:
		b.WriteString(m.formView())
	case screenConfirm:
		b.WriteString(m.confirmView())
	default:
		b.WriteString(m.listView())
	}
	if m.status != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.status))
	}
	return b.String()
}

func (m Model) listView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Contacts"))
	b.WriteString("\n")
	if len(m.contacts) == 0 {
		b.WriteString(m.styles.Empty.Render("No contacts have been entered yet"))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("a add contact • e edit • d delete • q quit"))
	return b.String()
}

func (m Model) formView() string {
	view := m.book.Session()
	title := "Add Contact"
	if view.State == phonebook.SessionEditing {
		title = "Update Contact"
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.field(0, "First Name", m.firstName.View(), view.VisibleErrors[phonebook.PathFirstName]))
	b.WriteString(m.field(1, "Last Name", m.lastName.View(), view.VisibleErrors[phonebook.PathLastName]))

	phones := view.Draft.PhoneNumbers
	for i := range min(len(phones), len(m.numbers)) {
		label := "‹ " + phones[i].Label.Title() + " ›"
		b.WriteString(m.field(2+2*i, "Label", label, ""))
		b.WriteString(m.field(3+2*i, "Phone Number", m.numbers[i].View(), view.VisibleErrors[phonebook.PhoneNumberPath(i)]))
	}
	if msg := view.VisibleErrors[phonebook.PathPhoneNumbers]; msg != "" {
		b.WriteString(m.styles.Error.Render(msg) + "\n")
	}

	help := "tab next • ←/→ label • ctrl+n one more number • ctrl+d remove number • enter save • esc cancel"
	if !view.CanSubmit {
		help = "(incomplete) " + help
	}
	b.WriteString(m.styles.Help.Render(help))
	return b.String()
}

func (m Model) field(focus int, name, value, errMsg string) string {
	style := m.styles.Label
	if m.focus == focus {
		style = m.styles.Focused
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, style.Render(name), value)
	if errMsg != "" {
		line += "\n" + m.styles.Label.Render("") + m.styles.Error.Render(errMsg)
	}
	return line + "\n"
}

func (m Model) confirmView() string {
	prompt := m.book.Deletion().Prompt()
	body := m.styles.Title.Render("Deletion confirmation") + "\n" +
		prompt + "\n" +
		m.styles.Help.Render("y delete • n cancel")
	return m.styles.Dialog.Render(body)
}
