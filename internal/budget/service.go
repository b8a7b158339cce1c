package budget

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmarques/budgeteer/internal/storage"
)

// Fixed document keys. Each key holds one whole JSON collection; every
// mutation rewrites the full document.
const (
	keyTransactions = "budget_transactions"
	keyCategories   = "budget_categories"
	keySettings     = "budget_settings"
)

// Service implements the domain operations over a KV store. It is the
// sole writer of the three budget documents.
type Service struct {
	kv storage.KV
}

func NewService(kv storage.KV) *Service {
	return &Service{kv: kv}
}

// Transactions lists the stored transactions in insertion order. A
// missing or corrupt document reads as empty.
func (s *Service) Transactions(ctx context.Context) []Transaction {
	return storage.Read(ctx, s.kv, keyTransactions, []Transaction{})
}

func (s *Service) CreateTransaction(ctx context.Context, p TransactionParams) (Transaction, error) {
	now := time.Now().UTC()

	tx := Transaction{
		ID:          p.ID,
		Type:        p.Type,
		Amount:      p.Amount,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Date:        p.Date,
		Notes:       p.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	txs := append(s.Transactions(ctx), tx)
	if err := storage.Write(ctx, s.kv, keyTransactions, txs); err != nil {
		return Transaction{}, fmt.Errorf("creating transaction: %w", err)
	}

	return tx, nil
}

func (s *Service) UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) (Transaction, error) {
	txs := s.Transactions(ctx)

	idx := slices.IndexFunc(txs, func(t Transaction) bool { return t.ID == id })
	if idx < 0 {
		return Transaction{}, fmt.Errorf("updating transaction %s: %w", id, ErrNotFound)
	}

	tx := patch.apply(txs[idx])
	tx.UpdatedAt = time.Now().UTC()
	txs[idx] = tx

	if err := storage.Write(ctx, s.kv, keyTransactions, txs); err != nil {
		return Transaction{}, fmt.Errorf("updating transaction %s: %w", id, err)
	}

	return tx, nil
}

// DeleteTransaction removes the transaction with the given id. Deleting
// an id that is not stored succeeds silently.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	txs := slices.DeleteFunc(s.Transactions(ctx), func(t Transaction) bool { return t.ID == id })

	if err := storage.Write(ctx, s.kv, keyTransactions, txs); err != nil {
		return fmt.Errorf("deleting transaction %s: %w", id, err)
	}

	return nil
}

// Categories lists the stored categories. An empty store is seeded with
// the fixed default set, which is persisted so later reads do not
// re-seed. A failed seed write still returns the defaults.
func (s *Service) Categories(ctx context.Context) []Category {
	cats := storage.Read(ctx, s.kv, keyCategories, []Category{})
	if len(cats) > 0 {
		return cats
	}

	cats = DefaultCategories()
	if err := storage.Write(ctx, s.kv, keyCategories, cats); err != nil {
		slog.Warn("seeding default categories", "error", err)
	}

	return cats
}

func (s *Service) CreateCategory(ctx context.Context, p CategoryParams) (Category, error) {
	c := Category{
		ID:    p.ID,
		Name:  p.Name,
		Type:  p.Type,
		Color: p.Color,
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	cats := append(s.Categories(ctx), c)
	if err := storage.Write(ctx, s.kv, keyCategories, cats); err != nil {
		return Category{}, fmt.Errorf("creating category: %w", err)
	}

	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (Category, error) {
	cats := s.Categories(ctx)

	idx := slices.IndexFunc(cats, func(c Category) bool { return c.ID == id })
	if idx < 0 {
		return Category{}, fmt.Errorf("updating category %s: %w", id, ErrNotFound)
	}

	cats[idx] = patch.apply(cats[idx])

	if err := storage.Write(ctx, s.kv, keyCategories, cats); err != nil {
		return Category{}, fmt.Errorf("updating category %s: %w", id, err)
	}

	return cats[idx], nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	cats := slices.DeleteFunc(s.Categories(ctx), func(c Category) bool { return c.ID == id })

	if err := storage.Write(ctx, s.kv, keyCategories, cats); err != nil {
		return fmt.Errorf("deleting category %s: %w", id, err)
	}

	return nil
}

func (s *Service) Settings(ctx context.Context) Settings {
	return storage.Read(ctx, s.kv, keySettings, DefaultSettings())
}

// UpdateSettings shallow-merges the patch over the stored record and
// persists the result.
func (s *Service) UpdateSettings(ctx context.Context, patch SettingsPatch) (Settings, error) {
	merged := s.Settings(ctx).Merge(patch)

	if err := storage.Write(ctx, s.kv, keySettings, merged); err != nil {
		return Settings{}, fmt.Errorf("updating settings: %w", err)
	}

	return merged, nil
}
