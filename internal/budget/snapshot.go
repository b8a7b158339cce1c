package budget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmarques/budgeteer/internal/storage"
)

// Snapshot bundles the three stored collections for export and import.
// On import a nil field leaves the corresponding stored collection
// untouched, so partial snapshots are valid.
type Snapshot struct {
	Transactions []Transaction `json:"transactions,omitempty"`
	Categories   []Category    `json:"categories,omitempty"`
	Settings     *Settings     `json:"settings,omitempty"`
	ExportDate   time.Time     `json:"exportDate"`
}

func (s *Service) ExportAll(ctx context.Context) Snapshot {
	txs := s.Transactions(ctx)
	if txs == nil {
		txs = []Transaction{}
	}

	settings := s.Settings(ctx)

	return Snapshot{
		Transactions: txs,
		Categories:   s.Categories(ctx),
		Settings:     &settings,
		ExportDate:   time.Now().UTC(),
	}
}

// ExportJSON writes the snapshot document to w, indented for humans.
func (s *Service) ExportJSON(ctx context.Context, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(s.ExportAll(ctx)); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	return nil
}

// ImportAll overwrites each stored collection that is present in the
// snapshot. All applicable writes are attempted; failures are collected
// and reported together rather than aborting halfway silently.
func (s *Service) ImportAll(ctx context.Context, snap Snapshot) error {
	var errs []error

	if snap.Transactions != nil {
		if err := storage.Write(ctx, s.kv, keyTransactions, snap.Transactions); err != nil {
			errs = append(errs, err)
		}
	}

	if snap.Categories != nil {
		if err := storage.Write(ctx, s.kv, keyCategories, snap.Categories); err != nil {
			errs = append(errs, err)
		}
	}

	if snap.Settings != nil {
		if err := storage.Write(ctx, s.kv, keySettings, *snap.Settings); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("importing snapshot: %w", err)
	}

	return nil
}

// ImportJSON decodes a snapshot document and applies it. The document is
// parsed in full before anything is written, so a malformed file causes
// zero writes.
func (s *Service) ImportJSON(ctx context.Context, r io.Reader) error {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return fmt.Errorf("parsing snapshot: %w", err)
	}

	return s.ImportAll(ctx, snap)
}

// ClearAll removes all three documents, returning the store to its
// first-run state (categories re-seed on the next read).
func (s *Service) ClearAll(ctx context.Context) error {
	var errs []error

	for _, key := range []string{keyTransactions, keyCategories, keySettings} {
		if err := s.kv.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("clearing %q: %w", key, err))
		}
	}

	return errors.Join(errs...)
}
