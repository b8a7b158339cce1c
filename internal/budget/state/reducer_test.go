package state_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmarques/budgeteer/internal/budget"
	"github.com/dmarques/budgeteer/internal/budget/state"
)

func tx(id string, amount float64) budget.Transaction {
	return budget.Transaction{
		ID:          id,
		Type:        budget.TypeExpense,
		Amount:      amount,
		Description: "tx " + id,
		Date:        budget.NewDate(2024, time.March, 10),
	}
}

func TestReduce_Transactions(t *testing.T) {
	s := state.State{Transactions: []budget.Transaction{tx("a", 1), tx("b", 2), tx("c", 3)}}

	t.Run("Add", func(t *testing.T) {
		got := state.Reduce(s, state.AddTransaction{Transaction: tx("d", 4)})

		assert.Len(t, got.Transactions, 4)
		assert.Equal(t, "d", got.Transactions[3].ID)
	})

	t.Run("UpdateReplacesInPlace", func(t *testing.T) {
		got := state.Reduce(s, state.UpdateTransaction{Transaction: tx("b", 99)})

		assert.Equal(t, []string{"a", "b", "c"}, ids(got.Transactions))
		assert.Equal(t, 99.0, got.Transactions[1].Amount)
	})

	t.Run("DeletePreservesOrder", func(t *testing.T) {
		got := state.Reduce(s, state.DeleteTransaction{ID: "b"})

		assert.Equal(t, []string{"a", "c"}, ids(got.Transactions))
	})

	t.Run("DeleteUnknownIsNoOp", func(t *testing.T) {
		got := state.Reduce(s, state.DeleteTransaction{ID: "zzz"})

		assert.Equal(t, []string{"a", "b", "c"}, ids(got.Transactions))
	})

	t.Run("InputStateIsNeverMutated", func(t *testing.T) {
		_ = state.Reduce(s, state.UpdateTransaction{Transaction: tx("a", 42)})
		_ = state.Reduce(s, state.DeleteTransaction{ID: "a"})
		_ = state.Reduce(s, state.AddTransaction{Transaction: tx("d", 4)})

		assert.Equal(t, []string{"a", "b", "c"}, ids(s.Transactions))
		assert.Equal(t, 1.0, s.Transactions[0].Amount)
	})
}

func TestReduce_Categories(t *testing.T) {
	s := state.State{Categories: []budget.Category{
		{ID: "1", Name: "Food", Type: budget.TypeExpense},
		{ID: "2", Name: "Rent", Type: budget.TypeExpense},
	}}

	got := state.Reduce(s, state.AddCategory{Category: budget.Category{ID: "3", Name: "Pets", Type: budget.TypeExpense}})
	assert.Len(t, got.Categories, 3)

	got = state.Reduce(s, state.UpdateCategory{Category: budget.Category{ID: "2", Name: "Housing", Type: budget.TypeExpense}})
	assert.Equal(t, "Housing", got.Categories[1].Name)

	got = state.Reduce(s, state.DeleteCategory{ID: "1"})
	assert.Len(t, got.Categories, 1)
	assert.Equal(t, "2", got.Categories[0].ID)
}

func TestReduce_SettingsAndFlags(t *testing.T) {
	s := state.State{Settings: budget.DefaultSettings(), Loading: true}

	theme := budget.ThemeDark

	got := state.Reduce(s, state.UpdateSettings{Patch: budget.SettingsPatch{Theme: &theme}})
	assert.Equal(t, budget.ThemeDark, got.Settings.Theme)
	assert.Equal(t, "USD", got.Settings.Currency)

	got = state.Reduce(s, state.SetError{Message: "boom"})
	assert.Equal(t, "boom", got.Error)
	assert.False(t, got.Loading)

	got = state.Reduce(s, state.LoadData{
		Transactions: []budget.Transaction{tx("a", 1)},
		Categories:   budget.DefaultCategories(),
		Settings:     budget.DefaultSettings(),
	})
	assert.False(t, got.Loading)
	assert.Len(t, got.Transactions, 1)
	assert.Len(t, got.Categories, 12)
}

func ids(txs []budget.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}

	return out
}
