package state

import (
	"context"
	"io"
	"slices"
	"sync"

	"github.com/dmarques/budgeteer/internal/budget"
)

// Controller owns the in-memory mirror of the stored collections. All UI
// mutations flow through it: the domain operation runs first, and only
// its canonical result is folded into the state, so the mirror never gets
// ahead of what was durably written. A failed operation records its
// message in Error state and is still returned to the caller.
//
// A mutex serializes access so concurrent UI commands cannot interleave
// read-modify-write cycles on the same collection.
type Controller struct {
	mu    sync.Mutex
	svc   *budget.Service
	state State
}

func NewController(svc *budget.Service) *Controller {
	return &Controller{
		svc:   svc,
		state: State{Settings: budget.DefaultSettings()},
	}
}

// State returns a snapshot of the current state. The returned slices are
// copies; callers may keep them across later mutations.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Transactions = slices.Clone(s.Transactions)
	s.Categories = slices.Clone(s.Categories)

	return s
}

// Load populates the mirror from storage. Read problems are recovered
// inside the storage layer (defaults substituted), so loading itself
// cannot fail.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dispatch(SetLoading{Loading: true})
	c.reload(ctx)
}

func (c *Controller) AddTransaction(ctx context.Context, p budget.TransactionParams) (budget.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.svc.CreateTransaction(ctx, p)
	if err != nil {
		c.dispatch(SetError{Message: err.Error()})
		return budget.Transaction{}, err
	}

	c.dispatch(AddTransaction{Transaction: tx})

	return tx, nil
}

func (c *Controller) UpdateTransaction(ctx context.Context, id string, patch budget.TransactionPatch) (budget.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.svc.UpdateTransaction(ctx, id, patch)
	if err != nil {
		c.dispatch(SetError{Message: err.Error()})
		return budget.Transaction{}, err
	}

	c.dispatch(UpdateTransaction{Transaction: tx})

	return tx, nil
}

func (c *Controller) DeleteTransaction(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.svc.DeleteTransaction(ctx, id); err != nil {
		c.dispatch(SetError{Message: err.Error()})
		return err
	}

	c.dispatch(DeleteTransaction{ID: id})

	return nil
}

func (c *Controller) AddCategory(ctx context.Context, p budget.CategoryParams) (budget.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cat, err := c.svc.CreateCategory(ctx, p)
	if err != nil {
		c.dispatch(SetError{Message: err.Error()})
		return budget.Category{}, err
	}

	c.dispatch(AddCategory{Category: cat})

	return cat, nil
}

func (c *Controller) UpdateCategory(ctx context.Context, id string, patch budget.CategoryPatch) (budget.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cat, err := c.svc.UpdateCategory(ctx, id, patch)
	if err != nil {
		c.dispatch(SetError{Message: err.Error()})
		return budget.Category{}, err
	}

	c.dispatch(UpdateCategory{Category: cat})

	return cat, nil
}

func (c *Controller) DeleteCategory(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.svc.DeleteCategory(ctx, id); err != nil {
		c.dispatch(SetError{Message: err.Error()})
		return err
	}

	c.dispatch(DeleteCategory{ID: id})

	return nil
}

func (c *Controller) UpdateSettings(ctx context.Context, patch budget.SettingsPatch) (budget.Settings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	settings, err := c.svc.UpdateSettings(ctx, patch)
	if err != nil {
		c.dispatch(SetError{Message: err.Error()})
		return budget.Settings{}, err
	}

	c.dispatch(UpdateSettings{Patch: patch})

	return settings, nil
}

// ExportTo writes the current snapshot document to w.
func (c *Controller) ExportTo(ctx context.Context, w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.svc.ExportJSON(ctx, w); err != nil {
		c.dispatch(SetError{Message: err.Error()})
		return err
	}

	return nil
}

// ImportSnapshot applies a snapshot document and reloads the mirror so it
// reflects exactly what the store now holds.
func (c *Controller) ImportSnapshot(ctx context.Context, r io.Reader) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.svc.ImportJSON(ctx, r); err != nil {
		c.dispatch(SetError{Message: err.Error()})
		return err
	}

	c.reload(ctx)

	return nil
}

// ClearAll wipes the store and reloads, which re-seeds default categories.
func (c *Controller) ClearAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.svc.ClearAll(ctx); err != nil {
		c.dispatch(SetError{Message: err.Error()})
		return err
	}

	c.reload(ctx)

	return nil
}

func (c *Controller) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dispatch(SetError{Message: ""})
}

// dispatch and reload expect the caller to hold the mutex.
func (c *Controller) dispatch(a Action) {
	c.state = Reduce(c.state, a)
}

func (c *Controller) reload(ctx context.Context) {
	c.dispatch(LoadData{
		Transactions: c.svc.Transactions(ctx),
		Categories:   c.svc.Categories(ctx),
		Settings:     c.svc.Settings(ctx),
	})
}
