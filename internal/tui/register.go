package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-finance-keeper/internal/service"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const minPasswordLength = 8

// RegisterModel is the registration screen. Registration signs the new user
// in, so a successful [AuthResult] ends the flow just like a login.
type RegisterModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	form       inputGroup
	submitting bool
	errMsg     string
}

func NewRegisterModel(ctx context.Context, auth service.ClientAuthService) *RegisterModel {
	return &RegisterModel{
		ctx:  ctx,
		auth: auth,
		form: newInputGroup(
			newTextInput("login", 64, false),
			newTextInput("password", 256, true),
			newTextInput("repeat password", 256, true),
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if errMsg := m.validate(); errMsg != "" {
				m.errMsg = errMsg
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(strings.TrimSpace(m.form.value(0)), m.form.value(1))
		}
	}

	return m, m.form.update(msg)
}

func (m *RegisterModel) validate() string {
	login := strings.TrimSpace(m.form.value(0))
	pass := m.form.value(1)

	switch {
	case login == "" || pass == "":
		return "Логин и пароль обязательны"
	case len(pass) < minPasswordLength:
		return "Пароль должен быть не короче 8 символов"
	case pass != m.form.value(2):
		return "Пароли не совпадают"
	}
	return ""
}

func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString("Логин            │ [" + m.form.view(0) + "]\n")
	b.WriteString("Пароль           │ [" + m.form.view(1) + "]\n")
	b.WriteString("Повторите пароль │ [" + m.form.view(2) + "]\n")

	if m.submitting {
		b.WriteString("\n[Зарегистрироваться...]\n")
	} else {
		b.WriteString("\n[Зарегистрироваться]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\nОшибка: " + m.errMsg + "\n")
	}

	return renderPage("РЕГИСТРАЦИЯ", strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: подтвердить")
}

func (m *RegisterModel) cmdRegister(login, pass string) tea.Cmd {
	ctx, auth := m.ctx, m.auth

	return func() tea.Msg {
		session, err := auth.Register(ctx, login, pass)
		return AuthResult{Session: session, Err: err}
	}
}
