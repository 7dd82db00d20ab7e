package tui

import "github.com/MKhiriev/go-finance-keeper/models"

const (
	pageMenu     = "menu"
	pageLogin    = "login"
	pageRegister = "register"
)

// NavigateTo switches the RootModel to Page. A non-nil Payload is delivered
// to the new page as the next message.
type NavigateTo struct {
	Page    string
	Payload any
}

// AuthResult is produced by the login and register screens.
type AuthResult struct {
	Session models.Session
	Err     error
}

// RegisterSuccessNotice is shown by the menu after a registration that did
// not finish the flow.
type RegisterSuccessNotice struct {
	Username string
}

type entriesLoadedMsg struct {
	entries []models.Entry
	totals  []models.TypeTotal
	err     error
}

type entrySavedMsg struct {
	entry models.Entry
	err   error
}

type entryDeletedMsg struct {
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

type keyRotatedMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

// statusTickMsg polls the sync scheduler.
type statusTickMsg struct{}
