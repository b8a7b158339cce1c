// Package report computes derived views over the stored collections.
// Everything here is pure and cheap enough to recompute on each state
// change for personal-finance sized data.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/dmarques/budgeteer/internal/budget"
)

// UnknownCategoryName and UnknownCategoryColor label transactions whose
// category no longer exists. Dangling references are tolerated, never an
// error.
const (
	UnknownCategoryName  = "Unknown Category"
	UnknownCategoryColor = "#6b7280"
)

// MonthlySummary aggregates the transactions of one calendar month.
type MonthlySummary struct {
	Income           float64
	Expenses         float64
	Balance          float64
	TransactionCount int
}

// Summarize totals the transactions falling in the calendar month of now.
func Summarize(now time.Time, txs []budget.Transaction) MonthlySummary {
	month := monthKey(now)

	var s MonthlySummary

	for _, tx := range txs {
		if tx.Date.MonthKey() != month {
			continue
		}

		switch tx.Type {
		case budget.TypeIncome:
			s.Income += tx.Amount
		case budget.TypeExpense:
			s.Expenses += tx.Amount
		}

		s.TransactionCount++
	}

	s.Balance = s.Income - s.Expenses

	return s
}

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	CategoryID string
	Name       string
	Color      string
	Amount     float64
}

// ResolveCategory maps a category id to its display name and color,
// substituting the unknown sentinel when the id has no match.
func ResolveCategory(id string, cats []budget.Category) (name, color string) {
	for _, c := range cats {
		if c.ID == id {
			return c.Name, c.Color
		}
	}

	return UnknownCategoryName, UnknownCategoryColor
}

// TopExpenseCategories groups the current month's expenses by category
// and returns the largest groups first, at most limit of them. Groups
// with equal totals keep first-seen order.
func TopExpenseCategories(now time.Time, txs []budget.Transaction, cats []budget.Category, limit int) []CategoryTotal {
	month := monthKey(now)

	totals := make(map[string]float64)
	order := make([]string, 0)

	for _, tx := range txs {
		if tx.Type != budget.TypeExpense || tx.Date.MonthKey() != month {
			continue
		}

		if _, ok := totals[tx.CategoryID]; !ok {
			order = append(order, tx.CategoryID)
		}

		totals[tx.CategoryID] += tx.Amount
	}

	out := make([]CategoryTotal, 0, len(order))

	for _, id := range order {
		name, color := ResolveCategory(id, cats)
		out = append(out, CategoryTotal{
			CategoryID: id,
			Name:       name,
			Color:      color,
			Amount:     totals[id],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

// SortBy selects the transaction view sort key.
type SortBy string

const (
	SortByDate        SortBy = "date"
	SortByAmount      SortBy = "amount"
	SortByDescription SortBy = "description"
)

// Order selects the sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Query narrows and orders the transaction view. Zero values mean "no
// filter"; SortBy and Order default to date, newest first.
type Query struct {
	Search     string
	Type       budget.Type
	CategoryID string
	Month      string // "2006-01", empty for all
	SortBy     SortBy
	Order      Order
}

// Filter applies the query's filters in order, then sorts. The sort is
// stable in both directions: transactions with equal keys keep their
// stored relative order.
func Filter(txs []budget.Transaction, cats []budget.Category, q Query) []budget.Transaction {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]budget.Transaction, 0, len(txs))

	for _, tx := range txs {
		if search != "" && !matchesSearch(tx, cats, search) {
			continue
		}

		if q.Type != "" && tx.Type != q.Type {
			continue
		}

		if q.CategoryID != "" && tx.CategoryID != q.CategoryID {
			continue
		}

		if q.Month != "" && tx.Date.MonthKey() != q.Month {
			continue
		}

		out = append(out, tx)
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = SortByDate
	}

	order := q.Order
	if order == "" {
		order = OrderDesc
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if order == OrderDesc {
			a, b = b, a
		}

		switch sortBy {
		case SortByAmount:
			return a.Amount < b.Amount
		case SortByDescription:
			return strings.ToLower(a.Description) < strings.ToLower(b.Description)
		default:
			return a.Date.Before(b.Date)
		}
	})

	return out
}

func matchesSearch(tx budget.Transaction, cats []budget.Category, search string) bool {
	if strings.Contains(strings.ToLower(tx.Description), search) {
		return true
	}

	name, _ := ResolveCategory(tx.CategoryID, cats)

	return strings.Contains(strings.ToLower(name), search)
}

// AvailableMonths returns the distinct months that have at least one
// transaction, most recent first.
func AvailableMonths(txs []budget.Transaction) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)

	for _, tx := range txs {
		key := tx.Date.MonthKey()
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, key)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(out)))

	return out
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
