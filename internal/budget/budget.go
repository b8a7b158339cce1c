package budget

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Type classifies a money movement (and the categories that group them).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Theme is the display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// ErrNotFound is returned when an update targets an id that is not in the
// stored collection.
var ErrNotFound = errors.New("entity not found")

// Transaction is a single dated money movement.
type Transaction struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CategoryID  string    `json:"categoryId"`
	Date        Date      `json:"date"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Category is a user-defined label grouping transactions of one type.
// CategoryID references are not enforced: a transaction may point at a
// deleted category and is resolved to a fallback label at read time.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  Type   `json:"type"`
	Color string `json:"color"`
}

// Settings is the singleton preference record. Currency and date format
// affect display only, never stored values.
type Settings struct {
	Currency   string `json:"currency"`
	DateFormat string `json:"dateFormat"`
	Theme      Theme  `json:"theme"`
}

func DefaultSettings() Settings {
	return Settings{
		Currency:   "USD",
		DateFormat: "MM/dd/yyyy",
		Theme:      ThemeLight,
	}
}

// DefaultCategories is the fixed set seeded into an empty category store.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Food & Dining", Type: TypeExpense, Color: "#ef4444"},
		{ID: "2", Name: "Transportation", Type: TypeExpense, Color: "#f59e0b"},
		{ID: "3", Name: "Shopping", Type: TypeExpense, Color: "#8b5cf6"},
		{ID: "4", Name: "Entertainment", Type: TypeExpense, Color: "#06b6d4"},
		{ID: "5", Name: "Bills & Utilities", Type: TypeExpense, Color: "#64748b"},
		{ID: "6", Name: "Healthcare", Type: TypeExpense, Color: "#ec4899"},
		{ID: "7", Name: "Education", Type: TypeExpense, Color: "#10b981"},
		{ID: "8", Name: "Other Expenses", Type: TypeExpense, Color: "#6b7280"},
		{ID: "9", Name: "Salary", Type: TypeIncome, Color: "#22c55e"},
		{ID: "10", Name: "Freelance", Type: TypeIncome, Color: "#3b82f6"},
		{ID: "11", Name: "Investment", Type: TypeIncome, Color: "#8b5cf6"},
		{ID: "12", Name: "Other Income", Type: TypeIncome, Color: "#06b6d4"},
	}
}

// TransactionParams carries caller-supplied fields for a new transaction.
// An empty ID means one is assigned at creation.
type TransactionParams struct {
	ID          string
	Type        Type
	Amount      float64
	Description string
	CategoryID  string
	Date        Date
	Notes       string
}

// Validate enforces entry-point rules. The storage layer itself tolerates
// invalid records arriving via import.
func (p TransactionParams) Validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("invalid transaction type %q", p.Type)
	}

	if p.Amount <= 0 {
		return errors.New("amount must be greater than zero")
	}

	if strings.TrimSpace(p.Description) == "" {
		return errors.New("description cannot be empty")
	}

	if p.Date.IsZero() {
		return errors.New("date is required")
	}

	return nil
}

// TransactionPatch is a partial update; nil fields keep their prior value.
type TransactionPatch struct {
	Type        *Type
	Amount      *float64
	Description *string
	CategoryID  *string
	Date        *Date
	Notes       *string
}

func (p TransactionPatch) apply(tx Transaction) Transaction {
	if p.Type != nil {
		tx.Type = *p.Type
	}

	if p.Amount != nil {
		tx.Amount = *p.Amount
	}

	if p.Description != nil {
		tx.Description = *p.Description
	}

	if p.CategoryID != nil {
		tx.CategoryID = *p.CategoryID
	}

	if p.Date != nil {
		tx.Date = *p.Date
	}

	if p.Notes != nil {
		tx.Notes = *p.Notes
	}

	return tx
}

type CategoryParams struct {
	ID    string
	Name  string
	Type  Type
	Color string
}

func (p CategoryParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name cannot be empty")
	}

	if !p.Type.Valid() {
		return fmt.Errorf("invalid category type %q", p.Type)
	}

	return nil
}

type CategoryPatch struct {
	Name  *string
	Type  *Type
	Color *string
}

func (p CategoryPatch) apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}

	if p.Type != nil {
		c.Type = *p.Type
	}

	if p.Color != nil {
		c.Color = *p.Color
	}

	return c
}

// SettingsPatch is a shallow merge: each set field overwrites the stored
// one, the rest keep their prior values.
type SettingsPatch struct {
	Currency   *string
	DateFormat *string
	Theme      *Theme
}

func (s Settings) Merge(p SettingsPatch) Settings {
	if p.Currency != nil {
		s.Currency = *p.Currency
	}

	if p.DateFormat != nil {
		s.DateFormat = *p.DateFormat
	}

	if p.Theme != nil {
		s.Theme = *p.Theme
	}

	return s
}
