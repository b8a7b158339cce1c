package state

import (
	"slices"

	"github.com/dmarques/budgeteer/internal/budget"
)

// State is the in-memory mirror of the three stored collections plus the
// session flags the UI renders from.
type State struct {
	Transactions []budget.Transaction
	Categories   []budget.Category
	Settings     budget.Settings
	Loading      bool
	Error        string
}

// Action is a discrete state-change event folded by Reduce.
type Action interface {
	isAction()
}

type SetLoading struct{ Loading bool }

type SetError struct{ Message string }

type LoadData struct {
	Transactions []budget.Transaction
	Categories   []budget.Category
	Settings     budget.Settings
}

type AddTransaction struct{ Transaction budget.Transaction }

type UpdateTransaction struct{ Transaction budget.Transaction }

type DeleteTransaction struct{ ID string }

type AddCategory struct{ Category budget.Category }

type UpdateCategory struct{ Category budget.Category }

type DeleteCategory struct{ ID string }

type UpdateSettings struct{ Patch budget.SettingsPatch }

func (SetLoading) isAction()        {}
func (SetError) isAction()          {}
func (LoadData) isAction()          {}
func (AddTransaction) isAction()    {}
func (UpdateTransaction) isAction() {}
func (DeleteTransaction) isAction() {}
func (AddCategory) isAction()       {}
func (UpdateCategory) isAction()    {}
func (DeleteCategory) isAction()    {}
func (UpdateSettings) isAction()    {}

// Reduce folds one action into the state. It is pure: no I/O, and the
// input state and its slices are never mutated in place.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetLoading:
		s.Loading = a.Loading

	case SetError:
		s.Error = a.Message
		s.Loading = false

	case LoadData:
		s.Transactions = slices.Clone(a.Transactions)
		s.Categories = slices.Clone(a.Categories)
		s.Settings = a.Settings
		s.Loading = false

	case AddTransaction:
		s.Transactions = append(slices.Clone(s.Transactions), a.Transaction)

	case UpdateTransaction:
		s.Transactions = replaceByID(s.Transactions, a.Transaction.ID, a.Transaction)

	case DeleteTransaction:
		s.Transactions = removeByID(s.Transactions, a.ID)

	case AddCategory:
		s.Categories = append(slices.Clone(s.Categories), a.Category)

	case UpdateCategory:
		s.Categories = replaceByID(s.Categories, a.Category.ID, a.Category)

	case DeleteCategory:
		s.Categories = removeByID(s.Categories, a.ID)

	case UpdateSettings:
		s.Settings = s.Settings.Merge(a.Patch)
	}

	return s
}

type identifiable interface {
	budget.Transaction | budget.Category
}

func replaceByID[T identifiable](items []T, id string, replacement T) []T {
	out := slices.Clone(items)

	for i := range out {
		if itemID(out[i]) == id {
			out[i] = replacement
			break
		}
	}

	return out
}

func removeByID[T identifiable](items []T, id string) []T {
	out := make([]T, 0, len(items))

	for _, item := range items {
		if itemID(item) == id {
			continue
		}

		out = append(out, item)
	}

	return out
}

func itemID[T identifiable](item T) string {
	switch v := any(item).(type) {
	case budget.Transaction:
		return v.ID
	case budget.Category:
		return v.ID
	}

	return ""
}
