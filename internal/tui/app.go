package tui

import (
	"github.com/MKhiriev/go-finance-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

// RootModel routes messages between the pages of the sign-in flow. It owns
// the global keys (ctrl+c, the build info window) and ends the program once
// a page reports a successful [AuthResult].
type RootModel struct {
	pages map[string]tea.Model
	page  string

	buildInfo     models.AppBuildInfo
	showBuildInfo bool

	session    models.Session
	quitByUser bool
}

// NewRootModel registers pages and opens startPage.
func NewRootModel(pages map[string]tea.Model, startPage string, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		pages:     pages,
		page:      startPage,
		buildInfo: buildInfo,
	}
}

func (r RootModel) current() tea.Model {
	return r.pages[r.page]
}

func (r RootModel) Init() tea.Cmd {
	if page := r.current(); page != nil {
		return page.Init()
	}
	return nil
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if model, cmd, handled := r.handleGlobalKey(msg); handled {
			return model, cmd
		}

	case NavigateTo:
		return r.navigate(msg)

	case quitMsg:
		r.quitByUser = true
		return r, tea.Quit

	case AuthResult:
		if msg.Err == nil {
			r.session = msg.Session
			return r, tea.Quit
		}
	}

	page := r.current()
	if page == nil {
		return r, nil
	}

	updated, cmd := page.Update(msg)
	r.pages[r.page] = updated
	return r, cmd
}

// handleGlobalKey reports whether key was consumed before reaching the page.
func (r RootModel) handleGlobalKey(key tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch key.String() {
	case "ctrl+c":
		r.quitByUser = true
		return r, tea.Quit, true
	case "v":
		if r.page == pageMenu {
			r.showBuildInfo = !r.showBuildInfo
			return r, nil, true
		}
	case "esc":
		if r.showBuildInfo {
			r.showBuildInfo = false
			return r, nil, true
		}
	}

	// the build info window swallows every other key
	return r, nil, r.showBuildInfo
}

func (r RootModel) navigate(nav NavigateTo) (tea.Model, tea.Cmd) {
	next, ok := r.pages[nav.Page]
	if !ok {
		return r, nil
	}

	r.page = nav.Page
	r.showBuildInfo = false

	if nav.Payload != nil {
		payload := nav.Payload
		return r, func() tea.Msg { return payload }
	}
	return r, next.Init()
}

func (r RootModel) View() string {
	switch {
	case r.showBuildInfo:
		return renderBuildInfoWindow(r.buildInfo)
	case r.current() == nil:
		return renderPage("FINANCE KEEPER", "", "")
	}
	return r.current().View()
}
