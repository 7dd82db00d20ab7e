// Package tui is the terminal dashboard of the finance keeper: sign-in
// screens, the entry ledger with per-type totals and the sync indicator.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/service"
	"github.com/MKhiriev/go-finance-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("вышел из программы")

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	// programOptions are appended to every tea.NewProgram call.
	programOptions []tea.ProgramOption
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{
		services:       services,
		buildInfo:      buildInfo,
		logger:         logger,
		programOptions: []tea.ProgramOption{tea.WithAltScreen()},
	}
}

// AuthFlow shows the sign-in menu until the user logs in or registers.
// It returns ErrUserQuit when the user leaves instead.
func (t *TUI) AuthFlow(ctx context.Context) (models.Session, error) {
	pages := map[string]tea.Model{
		pageMenu:     NewMenuModel(),
		pageLogin:    NewLoginModel(ctx, t.services.AuthService),
		pageRegister: NewRegisterModel(ctx, t.services.AuthService),
	}

	root := NewRootModel(pages, pageMenu, t.buildInfo)
	finalModel, err := tea.NewProgram(root, t.programOptions...).Run()
	if err != nil {
		return models.Session{}, err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.Session{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return models.Session{}, ErrUserQuit
	}

	return result.session, nil
}

// MainLoop runs the dashboard for the signed-in user. logout reports
// whether the user asked to sign out rather than quit.
func (t *TUI) MainLoop(ctx context.Context, session models.Session) (logout bool, err error) {
	model := newDashboardModel(ctx, t.services, session)
	finalModel, err := tea.NewProgram(model, t.programOptions...).Run()
	if err != nil {
		return false, err
	}

	result, ok := finalModel.(dashboardModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	t.logger.Debug().Bool("logout", result.logout).Msg("dashboard closed")

	return result.logout, nil
}
