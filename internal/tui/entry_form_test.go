package tui

import (
	"testing"

	"github.com/MKhiriev/go-finance-keeper/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryForm_ToDraft(t *testing.T) {
	tests := []struct {
		name       string
		entryType  string
		amount     string
		wantType   string
		wantAmount string
		wantErr    error
	}{
		{name: "plain", entryType: "salary", amount: "2500", wantType: "salary", wantAmount: "2500"},
		{name: "negative with dot", entryType: "food", amount: "-12.50", wantType: "food", wantAmount: "-12.5"},
		{name: "comma separator", entryType: "food", amount: "-3,20", wantType: "food", wantAmount: "-3.2"},
		{name: "thousands separated by spaces", entryType: "rent", amount: "-1 200.00", wantType: "rent", wantAmount: "-1200"},
		{name: "type is trimmed", entryType: "  taxi ", amount: "7", wantType: "taxi", wantAmount: "7"},
		{name: "zero amount", entryType: "misc", amount: "0", wantType: "misc", wantAmount: "0"},
		{name: "empty type", entryType: "   ", amount: "1", wantErr: errEmptyType},
		{name: "empty amount", entryType: "food", amount: "", wantErr: errInvalidAmount},
		{name: "letters", entryType: "food", amount: "12abc", wantErr: errInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEntryForm(nil)
			f.inputs.setValue(0, tt.entryType)
			f.inputs.setValue(1, tt.amount)

			draft, err := f.toDraft()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Empty(t, draft.ID)
			assert.Equal(t, tt.wantType, draft.Type)
			assert.True(t, decimal.RequireFromString(tt.wantAmount).Equal(draft.Amount), "got %s", draft.Amount)
		})
	}
}

func TestEntryForm_Existing(t *testing.T) {
	entry := models.Entry{
		ID:        "e1",
		Type:      "food",
		Amount:    decimal.RequireFromString("-12.5"),
		CreatedAt: 1_700_000_000_000,
	}

	f := newEntryForm(&entry)
	assert.True(t, f.editing)
	assert.Equal(t, "food", f.inputs.value(0))
	assert.Equal(t, "-12.5", f.inputs.value(1))
	assert.Contains(t, f.View(), "Редактирование записи")

	f.inputs.setValue(1, "-13")
	draft, err := f.toDraft()
	require.NoError(t, err)
	assert.Equal(t, "e1", draft.ID)
	assert.Equal(t, entry.CreatedAt, draft.CreatedAt)
	assert.True(t, decimal.NewFromInt(-13).Equal(draft.Amount))
}
