package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// quitMsg asks the RootModel to leave the flow as if ctrl+c was pressed.
type quitMsg struct{}

type menuItem struct {
	title string
	msg   tea.Msg
}

// MenuModel is the first screen of the sign-in flow.
type MenuModel struct {
	items  []menuItem
	idx    int
	status string
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		items: []menuItem{
			{title: "Войти", msg: NavigateTo{Page: pageLogin}},
			{title: "Зарегистрироваться", msg: NavigateTo{Page: pageRegister}},
			{title: "Выйти", msg: quitMsg{}},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if notice, ok := msg.(RegisterSuccessNotice); ok {
		if notice.Username != "" {
			m.status = "Пользователь " + notice.Username + " успешно зарегистрирован"
		} else {
			m.status = "Регистрация прошла успешно"
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case keyMatches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case keyMatches(keyMsg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case keyMatches(keyMsg, keys.enter):
		selected := m.items[m.idx].msg
		return m, func() tea.Msg { return selected }
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	numWidth := lipgloss.Width(fmt.Sprintf("%d", len(m.items))) + 2 // "<marker> <n>"

	if m.status != "" {
		b.WriteString("OK: ")
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		fmt.Fprintf(&b, "%-*s │ %s\n", numWidth, fmt.Sprintf("%s %d", cursor, i+1), item.title)
	}

	return renderPage("FINANCE KEEPER", strings.TrimRight(b.String(), "\n"), "enter: выбрать │ ↑/↓: навигация │ v: версия")
}
