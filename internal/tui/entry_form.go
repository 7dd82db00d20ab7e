package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-finance-keeper/models"
	"github.com/shopspring/decimal"
)

var (
	errEmptyType     = errors.New("укажите категорию")
	errInvalidAmount = errors.New("сумма должна быть числом, например -12.50")
)

// entryForm edits the type and amount of a new or existing entry.
type entryForm struct {
	inputs inputGroup

	editing   bool
	id        string
	createdAt int64

	submitting bool
	errMsg     string
}

func newEntryForm(entry *models.Entry) entryForm {
	f := entryForm{
		inputs: newInputGroup(
			newTextInput("groceries", 64, false),
			newTextInput("-12.50", 32, false),
		),
	}
	if entry == nil {
		return f
	}

	f.editing = true
	f.id = entry.ID
	f.createdAt = entry.CreatedAt
	f.inputs.setValue(0, entry.Type)
	f.inputs.setValue(1, entry.Amount.String())
	return f
}

// toDraft validates the inputs. A comma is accepted as decimal separator.
func (f entryForm) toDraft() (models.EntryDraft, error) {
	entryType := strings.TrimSpace(f.inputs.value(0))
	if entryType == "" {
		return models.EntryDraft{}, errEmptyType
	}

	raw := strings.ReplaceAll(strings.TrimSpace(f.inputs.value(1)), ",", ".")
	raw = strings.ReplaceAll(raw, " ", "")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return models.EntryDraft{}, errInvalidAmount
	}

	return models.EntryDraft{
		ID:        f.id,
		Type:      entryType,
		Amount:    amount,
		CreatedAt: f.createdAt,
	}, nil
}

func (f entryForm) View() string {
	title := "Новая запись"
	if f.editing {
		title = "Редактирование записи"
	}

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString("Категория │ [" + f.inputs.view(0) + "]\n")
	b.WriteString("Сумма     │ [" + f.inputs.view(1) + "]\n")

	if f.submitting {
		b.WriteString("\n[Сохранение...]\n")
	}
	if f.errMsg != "" {
		b.WriteString("\nОшибка: " + f.errMsg + "\n")
	}

	return renderPage("ЗАПИСЬ", strings.TrimRight(b.String(), "\n"), "esc: отмена │ tab: след. поле │ enter: сохранить")
}
