package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-finance-keeper/internal/service"
	"github.com/MKhiriev/go-finance-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	statusPollInterval = 2 * time.Second
	visibleRows        = 15
)

// copyToClipboard is swapped in tests.
var copyToClipboard = clipboard.WriteAll

type dashboardMode int

const (
	modeList dashboardMode = iota
	modeForm
	modeConfirmDelete
	modeConfirmRotate
)

// dashboardModel is the main screen: the ledger of live entries, totals per
// type and the sync indicator.
type dashboardModel struct {
	ctx      context.Context
	services *service.ClientServices
	session  models.Session

	entries []models.Entry
	totals  []models.TypeTotal
	idx     int
	loading bool

	status  models.SyncStatus
	syncErr error
	spinner spinner.Model

	mode   dashboardMode
	form   entryForm
	notice string
	errMsg string

	logout bool
}

func newDashboardModel(ctx context.Context, services *service.ClientServices, session models.Session) dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return dashboardModel{
		ctx:      ctx,
		services: services,
		session:  session,
		loading:  true,
		status:   services.SyncScheduler.Status(),
		spinner:  s,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoad(), m.spinner.Tick, tickStatus())
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.entries, m.totals = msg.entries, msg.totals
		m.idx = min(m.idx, max(len(m.entries)-1, 0))
		return m, nil

	case statusTickMsg:
		m.status = m.services.SyncScheduler.Status()
		_, m.syncErr = m.services.SyncScheduler.LastResult()
		if m.mode == modeForm {
			return m, tickStatus()
		}
		return m, tea.Batch(m.cmdLoad(), tickStatus())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case entrySavedMsg:
		m.form.submitting = false
		if msg.err != nil {
			m.form.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.mode = modeList
		m.notice = "Запись сохранена"
		return m, m.cmdLoad()

	case entryDeletedMsg:
		m.mode = modeList
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.notice = "Запись удалена"
		return m, m.cmdLoad()

	case exportDoneMsg:
		if msg.err != nil {
			m.errMsg = "Экспорт не выполнен: " + humanizeError(msg.err)
			return m, nil
		}
		m.notice = "Резервная копия сохранена в " + msg.path
		return m, nil

	case keyRotatedMsg:
		m.mode = modeList
		if msg.err != nil {
			m.errMsg = "Смена ключа не выполнена: " + humanizeError(msg.err)
			return m, nil
		}
		m.notice = "Ключ шифрования обновлён"
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Не удалось скопировать: " + msg.err.Error()
			return m, nil
		}
		m.notice = "ID скопирован в буфер обмена"
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete, modeConfirmRotate:
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	}

	if m.mode == modeForm {
		return m, m.form.inputs.update(msg)
	}
	return m, nil
}

func (m dashboardModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice, m.errMsg = "", ""

	switch {
	case keyMatches(msg, keys.quit):
		return m, tea.Quit
	case keyMatches(msg, keys.logout):
		m.logout = true
		return m, tea.Quit
	case keyMatches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case keyMatches(msg, keys.down):
		if m.idx < len(m.entries)-1 {
			m.idx++
		}
	case keyMatches(msg, keys.newItem):
		m.mode = modeForm
		m.form = newEntryForm(nil)
	case keyMatches(msg, keys.edit):
		if entry, ok := m.current(); ok {
			m.mode = modeForm
			m.form = newEntryForm(&entry)
		}
	case keyMatches(msg, keys.delete):
		if _, ok := m.current(); ok {
			m.mode = modeConfirmDelete
		}
	case keyMatches(msg, keys.rotate):
		m.mode = modeConfirmRotate
	case keyMatches(msg, keys.sync):
		m.services.SyncScheduler.SyncNow()
		m.notice = "Синхронизация запущена"
	case keyMatches(msg, keys.export):
		return m, m.cmdExport(service.DefaultBackupFileName)
	case keyMatches(msg, keys.copy):
		if entry, ok := m.current(); ok {
			return m, cmdCopy(entry.ID)
		}
	}

	return m, nil
}

func (m dashboardModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, keys.esc):
		m.mode = modeList
		return m, nil
	case keyMatches(msg, keys.tab):
		m.form.inputs.next()
		return m, nil
	case keyMatches(msg, keys.backtab):
		m.form.inputs.prev()
		return m, nil
	case keyMatches(msg, keys.enter):
		if m.form.submitting {
			return m, nil
		}
		draft, err := m.form.toDraft()
		if err != nil {
			m.form.errMsg = err.Error()
			return m, nil
		}
		m.form.errMsg = ""
		m.form.submitting = true
		return m, m.cmdSave(draft)
	}

	return m, m.form.inputs.update(msg)
}

func (m dashboardModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, keys.yes):
		if m.mode == modeConfirmRotate {
			return m, m.cmdRotate()
		}
		if entry, ok := m.current(); ok {
			return m, m.cmdDelete(entry.ID)
		}
		m.mode = modeList
	case keyMatches(msg, keys.no):
		m.mode = modeList
	}
	return m, nil
}

func (m dashboardModel) current() (models.Entry, bool) {
	if m.idx < 0 || m.idx >= len(m.entries) {
		return models.Entry{}, false
	}
	return m.entries[m.idx], true
}

// ── commands ──

func tickStatus() tea.Cmd {
	return tea.Tick(statusPollInterval, func(time.Time) tea.Msg { return statusTickMsg{} })
}

func (m dashboardModel) cmdLoad() tea.Cmd {
	ctx, entries := m.ctx, m.services.EntryService

	return func() tea.Msg {
		list, err := entries.ListEntries(ctx)
		if err != nil {
			return entriesLoadedMsg{err: err}
		}
		totals, err := entries.Totals(ctx)
		return entriesLoadedMsg{entries: list, totals: totals, err: err}
	}
}

func (m dashboardModel) cmdSave(draft models.EntryDraft) tea.Cmd {
	ctx, entries := m.ctx, m.services.EntryService

	return func() tea.Msg {
		entry, err := entries.SaveEntry(ctx, draft)
		return entrySavedMsg{entry: entry, err: err}
	}
}

func (m dashboardModel) cmdDelete(id string) tea.Cmd {
	ctx, entries := m.ctx, m.services.EntryService

	return func() tea.Msg {
		return entryDeletedMsg{err: entries.SoftDeleteEntry(ctx, id)}
	}
}

func (m dashboardModel) cmdExport(path string) tea.Cmd {
	ctx, entries := m.ctx, m.services.EntryService

	return func() tea.Msg {
		return exportDoneMsg{path: path, err: entries.ExportLocalBackupToFile(ctx, path)}
	}
}

func (m dashboardModel) cmdRotate() tea.Cmd {
	ctx, engine := m.ctx, m.services.SyncEngine

	return func() tea.Msg {
		return keyRotatedMsg{err: engine.RotateKey(ctx)}
	}
}

func cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: copyToClipboard(text)}
	}
}

// ── view ──

func (m dashboardModel) View() string {
	if m.mode == modeForm {
		return m.form.View()
	}

	var b strings.Builder

	indicator := statusLabel(m.status)
	if m.status == models.SyncStatusSyncing {
		indicator = m.spinner.View() + " " + indicator
	}
	fmt.Fprintf(&b, "Пользователь: %s   %s\n", m.session.Login, indicator)
	if m.syncErr != nil && m.status != models.SyncStatusSynced {
		b.WriteString(errorStyle.Render(syncErrorMessage(m.syncErr)) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.viewEntries())
	b.WriteString("\n")
	b.WriteString(m.viewTotals())

	switch m.mode {
	case modeConfirmDelete:
		b.WriteString("\n\nУдалить выбранную запись? y/n")
	case modeConfirmRotate:
		b.WriteString("\n\nСоздать новый ключ шифрования? Записи, зашифрованные старым ключом, перестанут читаться. y/n")
	}

	if m.notice != "" {
		b.WriteString("\n\nOK: " + m.notice)
	}
	if m.errMsg != "" {
		b.WriteString("\n\n" + errorStyle.Render("Ошибка: "+m.errMsg))
	}

	return renderPage("FINANCE KEEPER", b.String(),
		"n: новая │ e: изменить │ d: удалить │ s: синхр. │ x: экспорт │ c: копировать ID │ r: новый ключ │ l: выйти из аккаунта │ q: выход")
}

func (m dashboardModel) viewEntries() string {
	if m.loading {
		return "Загрузка..."
	}
	if len(m.entries) == 0 {
		return "Записей пока нет. Нажмите n, чтобы добавить."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %-16s │ %-20s │ %14s\n", "Дата", "Категория", "Сумма")
	b.WriteString("  " + strings.Repeat("─", 56) + "\n")

	start := max(0, m.idx-visibleRows+1)
	end := min(len(m.entries), start+visibleRows)
	for i := start; i < end; i++ {
		e := m.entries[i]
		amount := fmt.Sprintf("%14s", formatAmount(e.Amount))
		if e.Amount.IsNegative() {
			amount = negativeText.Render(amount)
		}
		row := fmt.Sprintf("%-16s │ %-20s │ %s", formatDate(e.CreatedAt), fitText(e.Type, 20), amount)
		if !e.Synced {
			row += " *"
		}

		if i == m.idx {
			b.WriteString("> " + selectStyle.Render(row) + "\n")
		} else {
			b.WriteString("  " + row + "\n")
		}
	}

	if len(m.entries) > visibleRows {
		fmt.Fprintf(&b, "  %d/%d\n", m.idx+1, len(m.entries))
	}

	return b.String()
}

func (m dashboardModel) viewTotals() string {
	if len(m.totals) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Итого по категориям:\n")
	for _, t := range m.totals {
		fmt.Fprintf(&b, "  %-20s │ %14s │ %d шт.\n", fitText(t.Type, 20), formatAmount(t.Total), t.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}
