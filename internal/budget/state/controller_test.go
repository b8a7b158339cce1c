package state_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dmarques/budgeteer/internal/budget"
	"github.com/dmarques/budgeteer/internal/budget/state"
	"github.com/dmarques/budgeteer/internal/storage"
)

func newController(t *testing.T) (*state.Controller, context.Context) {
	t.Helper()

	ctx := context.Background()
	ctl := state.NewController(budget.NewService(storage.NewMemory()))
	ctl.Load(ctx)

	return ctl, ctx
}

func TestController_Load(t *testing.T) {
	ctl, _ := newController(t)

	s := ctl.State()
	assert.False(t, s.Loading)
	assert.Empty(t, s.Error)
	assert.Empty(t, s.Transactions)
	assert.Equal(t, budget.DefaultCategories(), s.Categories)
	assert.Equal(t, budget.DefaultSettings(), s.Settings)
}

func TestController_AddTransaction_FoldsCanonicalEntity(t *testing.T) {
	ctl, ctx := newController(t)

	got, err := ctl.AddTransaction(ctx, budget.TransactionParams{
		Type:        budget.TypeExpense,
		Amount:      25,
		Description: "Cinema",
		CategoryID:  "4",
		Date:        budget.NewDate(2024, time.March, 20),
	})
	require.NoError(t, err)

	s := ctl.State()
	require.Len(t, s.Transactions, 1)
	// The mirror holds the canonical record, ids and timestamps included.
	assert.Equal(t, got, s.Transactions[0])
	assert.NotEmpty(t, s.Transactions[0].ID)
}

func TestController_UpdateTransaction_NotFound(t *testing.T) {
	ctl, ctx := newController(t)

	_, err := ctl.AddTransaction(ctx, budget.TransactionParams{
		Type: budget.TypeExpense, Amount: 10, Description: "Lunch",
		Date: budget.NewDate(2024, time.March, 20),
	})
	require.NoError(t, err)

	amount := 12.0

	_, err = ctl.UpdateTransaction(ctx, "missing", budget.TransactionPatch{Amount: &amount})
	require.ErrorIs(t, err, budget.ErrNotFound)

	s := ctl.State()
	assert.Contains(t, s.Error, "missing")
	require.Len(t, s.Transactions, 1)
	assert.Equal(t, 10.0, s.Transactions[0].Amount)
}

func TestController_DeleteTransaction(t *testing.T) {
	ctl, ctx := newController(t)

	tx, err := ctl.AddTransaction(ctx, budget.TransactionParams{
		Type: budget.TypeExpense, Amount: 10, Description: "Lunch",
		Date: budget.NewDate(2024, time.March, 20),
	})
	require.NoError(t, err)

	require.NoError(t, ctl.DeleteTransaction(ctx, tx.ID))
	assert.Empty(t, ctl.State().Transactions)

	// Idempotent: deleting again still succeeds.
	require.NoError(t, ctl.DeleteTransaction(ctx, tx.ID))
	assert.Empty(t, ctl.State().Error)
}

func TestController_WriteFailureSetsErrorState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	kv := storage.NewMockKV(ctrl)
	kv.EXPECT().Get(gomock.Any(), "budget_transactions").Return("[]", nil)
	kv.EXPECT().Set(gomock.Any(), "budget_transactions", gomock.Any()).Return(errors.New("quota exceeded"))

	ctl := state.NewController(budget.NewService(kv))

	_, err := ctl.AddTransaction(context.Background(), budget.TransactionParams{
		Type: budget.TypeExpense, Amount: 5, Description: "Coffee",
		Date: budget.NewDate(2024, time.March, 20),
	})

	// The error both surfaces to the caller and lands in state.
	require.ErrorContains(t, err, "quota exceeded")
	s := ctl.State()
	assert.Contains(t, s.Error, "quota exceeded")
	assert.Empty(t, s.Transactions)
}

func TestController_UpdateSettings(t *testing.T) {
	ctl, ctx := newController(t)

	currency := "EUR"

	got, err := ctl.UpdateSettings(ctx, budget.SettingsPatch{Currency: &currency})
	require.NoError(t, err)

	// The reduced state converges with the canonical merged record.
	assert.Equal(t, got, ctl.State().Settings)
	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, "MM/dd/yyyy", got.DateFormat)
}

func TestController_ImportSnapshotReloads(t *testing.T) {
	ctl, ctx := newController(t)

	doc := `{
		"transactions": [
			{"id": "t1", "type": "income", "amount": 500, "description": "Refund", "categoryId": "12", "date": "2024-01-05"}
		]
	}`

	require.NoError(t, ctl.ImportSnapshot(ctx, strings.NewReader(doc)))

	s := ctl.State()
	require.Len(t, s.Transactions, 1)
	assert.Equal(t, "t1", s.Transactions[0].ID)
}

func TestController_ImportSnapshot_ParseError(t *testing.T) {
	ctl, ctx := newController(t)

	_, err := ctl.AddTransaction(ctx, budget.TransactionParams{
		Type: budget.TypeExpense, Amount: 10, Description: "Lunch",
		Date: budget.NewDate(2024, time.March, 20),
	})
	require.NoError(t, err)

	err = ctl.ImportSnapshot(ctx, strings.NewReader(`{"transactions": [`))
	require.Error(t, err)

	s := ctl.State()
	assert.Contains(t, s.Error, "parsing snapshot")
	// Nothing was written, the mirror still holds the prior data.
	assert.Len(t, s.Transactions, 1)
}

func TestController_ClearAll(t *testing.T) {
	ctl, ctx := newController(t)

	_, err := ctl.AddTransaction(ctx, budget.TransactionParams{
		Type: budget.TypeExpense, Amount: 10, Description: "Lunch",
		Date: budget.NewDate(2024, time.March, 20),
	})
	require.NoError(t, err)

	require.NoError(t, ctl.ClearAll(ctx))

	s := ctl.State()
	assert.Empty(t, s.Transactions)
	assert.Equal(t, budget.DefaultCategories(), s.Categories)
	assert.Equal(t, budget.DefaultSettings(), s.Settings)
}

func TestController_ClearError(t *testing.T) {
	ctl, ctx := newController(t)

	amount := 1.0

	_, err := ctl.UpdateTransaction(ctx, "missing", budget.TransactionPatch{Amount: &amount})
	require.Error(t, err)
	require.NotEmpty(t, ctl.State().Error)

	ctl.ClearError()
	assert.Empty(t, ctl.State().Error)
}
