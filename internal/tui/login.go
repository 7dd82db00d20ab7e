// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-finance-keeper/internal/service"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel is the Bubble Tea model for the login screen. It renders the
// login and password inputs and dispatches an async login on submit.
// A successful [AuthResult] is handled by [RootModel], which ends the flow.
type LoginModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	form       inputGroup
	submitting bool
	errMsg     string
}

func NewLoginModel(ctx context.Context, auth service.ClientAuthService) *LoginModel {
	return &LoginModel{
		ctx:  ctx,
		auth: auth,
		form: newInputGroup(
			newTextInput("login", 64, false),
			newTextInput("password", 256, true),
		),
	}
}

// Init starts the cursor blink of the active input.
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles:
//   - [AuthResult]: clears the submitting state and shows the error, if any;
//   - esc: back to the menu;
//   - tab / shift+tab: input focus;
//   - enter: validates and submits.
//
// Other keys go to the focused input.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(AuthResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = humanizeError(result.Err)
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMatches(keyMsg, keys.esc):
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case keyMatches(keyMsg, keys.tab):
			m.form.next()
			return m, nil
		case keyMatches(keyMsg, keys.backtab):
			m.form.prev()
			return m, nil
		case keyMatches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}

			login := strings.TrimSpace(m.form.value(0))
			pass := m.form.value(1)
			if login == "" || pass == "" {
				m.errMsg = "Логин и пароль обязательны"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(login, pass)
		}
	}

	return m, m.form.update(msg)
}

func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString("Логин   │ [" + m.form.view(0) + "]\n")
	b.WriteString("Пароль  │ [" + m.form.view(1) + "]\n")

	if m.submitting {
		b.WriteString("\n[Войти...]\n")
	} else {
		b.WriteString("\n[Войти]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\nОшибка: " + m.errMsg + "\n")
	}

	return renderPage("ВХОД", strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: подтвердить")
}

func (m *LoginModel) cmdLogin(login, pass string) tea.Cmd {
	ctx, auth := m.ctx, m.auth

	return func() tea.Msg {
		session, err := auth.Login(ctx, login, pass)
		return AuthResult{Session: session, Err: err}
	}
}
