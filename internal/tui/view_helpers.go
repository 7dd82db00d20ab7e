package tui

import (
	"strings"
	"time"

	"github.com/MKhiriev/go-finance-keeper/models"
	"github.com/shopspring/decimal"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		for _, line := range strings.Split(data, "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("ctrl+c: выход"))

	return b.String()
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// formatAmount renders a with two decimals and a thousands separator.
func formatAmount(a decimal.Decimal) string {
	s := a.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}

	return sign + b.String() + "." + frac
}

// formatDate renders an epoch-millisecond timestamp in local time.
func formatDate(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}

func statusLabel(status models.SyncStatus) string {
	switch status {
	case models.SyncStatusSynced:
		return okStyle.Render("● синхронизировано")
	case models.SyncStatusSyncing:
		return warnStyle.Render("синхронизация")
	case models.SyncStatusOffline:
		return errorStyle.Render("○ офлайн")
	case models.SyncStatusPending:
		return warnStyle.Render("◌ ожидает синхронизации")
	}
	return string(status)
}
