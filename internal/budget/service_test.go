package budget_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dmarques/budgeteer/internal/budget"
	"github.com/dmarques/budgeteer/internal/storage"
)

func TestService_CreateTransaction(t *testing.T) {
	ctx := context.Background()
	svc := budget.NewService(storage.NewMemory())

	got, err := svc.CreateTransaction(ctx, budget.TransactionParams{
		Type:        budget.TypeExpense,
		Amount:      42.50,
		Description: "Groceries",
		CategoryID:  "1",
		Date:        budget.NewDate(2024, time.March, 10),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)

	// The listed collection contains exactly the canonical record.
	txs := svc.Transactions(ctx)
	require.Len(t, txs, 1)
	assert.Equal(t, got, txs[0])
}

func TestService_CreateTransaction_KeepsSuppliedID(t *testing.T) {
	ctx := context.Background()
	svc := budget.NewService(storage.NewMemory())

	got, err := svc.CreateTransaction(ctx, budget.TransactionParams{
		ID:          "tx-1",
		Type:        budget.TypeIncome,
		Amount:      1000,
		Description: "Salary",
		Date:        budget.NewDate(2024, time.March, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, "tx-1", got.ID)
}

func TestService_CreateTransaction_WriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	kv := storage.NewMockKV(ctrl)
	kv.EXPECT().Get(gomock.Any(), "budget_transactions").Return("", storage.ErrNotFound)
	kv.EXPECT().Set(gomock.Any(), "budget_transactions", gomock.Any()).Return(errors.New("disk full"))

	svc := budget.NewService(kv)

	_, err := svc.CreateTransaction(context.Background(), budget.TransactionParams{
		Type:        budget.TypeExpense,
		Amount:      5,
		Description: "Coffee",
		Date:        budget.NewDate(2024, time.March, 10),
	})
	assert.ErrorContains(t, err, "disk full")
}

func TestService_UpdateTransaction(t *testing.T) {
	type testCase struct {
		name    string
		id      string
		patch   budget.TransactionPatch
		wantErr error
	}

	amount := 99.99

	tests := []testCase{
		{
			name:  "Success",
			id:    "tx-1",
			patch: budget.TransactionPatch{Amount: &amount},
		},
		{
			name:    "NotFound",
			id:      "missing",
			patch:   budget.TransactionPatch{Amount: &amount},
			wantErr: budget.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc := budget.NewService(storage.NewMemory())

			created, err := svc.CreateTransaction(ctx, budget.TransactionParams{
				ID:          "tx-1",
				Type:        budget.TypeExpense,
				Amount:      10,
				Description: "Lunch",
				CategoryID:  "1",
				Date:        budget.NewDate(2024, time.March, 10),
				Notes:       "with team",
			})
			require.NoError(t, err)

			got, err := svc.UpdateTransaction(ctx, tt.id, tt.patch)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				// The stored collection is unchanged.
				txs := svc.Transactions(ctx)
				require.Len(t, txs, 1)
				assert.Equal(t, created, txs[0])

				return
			}

			require.NoError(t, err)
			assert.Equal(t, amount, got.Amount)

			// Every other field survives the partial update.
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, created.Type, got.Type)
			assert.Equal(t, created.Description, got.Description)
			assert.Equal(t, created.CategoryID, got.CategoryID)
			assert.Equal(t, created.Notes, got.Notes)
			assert.Equal(t, created.CreatedAt, got.CreatedAt)

			txs := svc.Transactions(ctx)
			require.Len(t, txs, 1)
			assert.Equal(t, got, txs[0])
		})
	}
}

func TestService_DeleteTransaction_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := budget.NewService(storage.NewMemory())

	first, err := svc.CreateTransaction(ctx, budget.TransactionParams{
		Type: budget.TypeExpense, Amount: 1, Description: "a",
		Date: budget.NewDate(2024, time.January, 1),
	})
	require.NoError(t, err)

	second, err := svc.CreateTransaction(ctx, budget.TransactionParams{
		Type: budget.TypeExpense, Amount: 2, Description: "b",
		Date: budget.NewDate(2024, time.January, 2),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, first.ID))
	// Second delete of the same id is a silent no-op.
	require.NoError(t, svc.DeleteTransaction(ctx, first.ID))

	txs := svc.Transactions(ctx)
	require.Len(t, txs, 1)
	assert.Equal(t, second.ID, txs[0].ID)
}

func TestService_Categories_SeedsDefaultsOnce(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	svc := budget.NewService(kv)

	got := svc.Categories(ctx)
	assert.Equal(t, budget.DefaultCategories(), got)

	var expense, income int

	for _, c := range got {
		switch c.Type {
		case budget.TypeExpense:
			expense++
		case budget.TypeIncome:
			income++
		}
	}

	assert.Equal(t, 8, expense)
	assert.Equal(t, 4, income)

	// The seed is persisted: a later read with extra entries added must
	// not reset back to the defaults.
	_, err := svc.CreateCategory(ctx, budget.CategoryParams{
		Name: "Pets", Type: budget.TypeExpense, Color: "#22c55e",
	})
	require.NoError(t, err)

	assert.Len(t, svc.Categories(ctx), 13)
}

func TestService_UpdateCategory_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := budget.NewService(storage.NewMemory())

	name := "Renamed"

	_, err := svc.UpdateCategory(ctx, "missing", budget.CategoryPatch{Name: &name})
	assert.ErrorIs(t, err, budget.ErrNotFound)
}

func TestService_DeleteCategory_LeavesTransactionsDangling(t *testing.T) {
	ctx := context.Background()
	svc := budget.NewService(storage.NewMemory())

	tx, err := svc.CreateTransaction(ctx, budget.TransactionParams{
		Type: budget.TypeExpense, Amount: 10, Description: "Dinner",
		CategoryID: "1", Date: budget.NewDate(2024, time.March, 10),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, "1"))

	// The reference stays; resolution to a fallback happens at read time.
	txs := svc.Transactions(ctx)
	require.Len(t, txs, 1)
	assert.Equal(t, tx.CategoryID, txs[0].CategoryID)
}

func TestService_Settings(t *testing.T) {
	ctx := context.Background()
	svc := budget.NewService(storage.NewMemory())

	assert.Equal(t, budget.DefaultSettings(), svc.Settings(ctx))

	currency := "EUR"

	got, err := svc.UpdateSettings(ctx, budget.SettingsPatch{Currency: &currency})
	require.NoError(t, err)

	// Shallow merge: unspecified fields keep their prior values.
	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, "MM/dd/yyyy", got.DateFormat)
	assert.Equal(t, budget.ThemeLight, got.Theme)

	assert.Equal(t, got, svc.Settings(ctx))
}

func TestTransactionParams_Validate(t *testing.T) {
	valid := budget.TransactionParams{
		Type:        budget.TypeExpense,
		Amount:      12.5,
		Description: "Lunch",
		Date:        budget.NewDate(2024, time.March, 10),
	}

	type testCase struct {
		name    string
		mutate  func(*budget.TransactionParams)
		wantErr string
	}

	tests := []testCase{
		{
			name:   "Valid",
			mutate: func(*budget.TransactionParams) {},
		},
		{
			name:    "ZeroAmount",
			mutate:  func(p *budget.TransactionParams) { p.Amount = 0 },
			wantErr: "amount must be greater than zero",
		},
		{
			name:    "NegativeAmount",
			mutate:  func(p *budget.TransactionParams) { p.Amount = -3 },
			wantErr: "amount must be greater than zero",
		},
		{
			name:    "BlankDescription",
			mutate:  func(p *budget.TransactionParams) { p.Description = "   " },
			wantErr: "description cannot be empty",
		},
		{
			name:    "BadType",
			mutate:  func(p *budget.TransactionParams) { p.Type = "transfer" },
			wantErr: "invalid transaction type",
		},
		{
			name:    "MissingDate",
			mutate:  func(p *budget.TransactionParams) { p.Date = budget.Date{} },
			wantErr: "date is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)

			err := p.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
