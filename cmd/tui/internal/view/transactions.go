package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmarques/budgeteer/internal/budget"
	"github.com/dmarques/budgeteer/internal/budget/state"
	"github.com/dmarques/budgeteer/internal/report"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateSearch
	txStateEdit
	txStateConfirmDelete
)

var (
	txTypeFilters = []budget.Type{"", budget.TypeIncome, budget.TypeExpense}
	txTypeLabels  = []string{"All", "Income", "Expense"}
	txSortKeys    = []report.SortBy{report.SortByDate, report.SortByAmount, report.SortByDescription}
)

type TransactionsModel struct {
	CommonModel
	controller *state.Controller

	state  txState
	table  table.Model
	search textinput.Model
	form   *huh.Form

	visible []budget.Transaction

	typeIdx     int
	categoryIdx int // 0 = all, otherwise index+1 into categories
	monthIdx    int // 0 = all, otherwise index+1 into months
	sortIdx     int
	descending  bool

	status string

	// Form field bindings
	formAmount   string
	formDesc     string
	formCategory string
	formDate     string
	formNotes    string
}

func NewTransactionsModel(ctl *state.Controller) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 14},
		{Title: "Category", Width: 20},
		{Title: "Description", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	search := textinput.New()
	search.Placeholder = "description or category"
	search.CharLimit = 60

	m := TransactionsModel{
		controller: ctl,
		table:      t,
		search:     search,
		descending: true,
	}
	m.refreshTable()

	return m
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateSearch:
		return "Enter: apply | Esc: cancel"
	case txStateEdit:
		return "Navigate form | Esc: cancel"
	case txStateConfirmDelete:
		return "y: delete | n: keep"
	}

	return "Esc: back | /: search | t/c/m: filters | s: sort | o: order | e: edit | d: delete"
}

func (m TransactionsModel) Init() tea.Cmd {
	return nil
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(txOpDoneMsg); ok {
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
		} else {
			m.status = msg.status
		}

		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()
		m.refreshTable()

		return m, nil
	}

	switch m.state {
	case txStateBrowse:
		return m.updateBrowse(msg)
	case txStateSearch:
		return m.updateSearch(msg)
	case txStateEdit:
		return m.updateEdit(msg)
	case txStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			if m.search.Value() != "" {
				m.search.SetValue("")
				m.refreshTable()

				return m, nil
			}

			return m, Back
		case "/":
			m.state = txStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "t":
			m.typeIdx = (m.typeIdx + 1) % len(txTypeFilters)
			m.refreshTable()

			return m, nil
		case "c":
			m.categoryIdx = (m.categoryIdx + 1) % (len(m.controller.State().Categories) + 1)
			m.refreshTable()

			return m, nil
		case "m":
			months := report.AvailableMonths(m.controller.State().Transactions)
			m.monthIdx = (m.monthIdx + 1) % (len(months) + 1)
			m.refreshTable()

			return m, nil
		case "s":
			m.sortIdx = (m.sortIdx + 1) % len(txSortKeys)
			m.refreshTable()

			return m, nil
		case "o":
			m.descending = !m.descending
			m.refreshTable()

			return m, nil
		case "e":
			return m.enterEditMode()
		case "d":
			if m.selected() != nil {
				m.state = txStateConfirmDelete
				m.table.Blur()
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			fallthrough
		case tea.KeyEnter:
			m.state = txStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m TransactionsModel) enterEditMode() (tea.Model, tea.Cmd) {
	tx := m.selected()
	if tx == nil {
		return m, nil
	}

	s := m.controller.State()

	m.formAmount = strconv.FormatFloat(tx.Amount, 'f', -1, 64)
	m.formDesc = tx.Description
	m.formCategory = tx.CategoryID
	m.formDate = tx.Date.String()
	m.formNotes = tx.Notes

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(validateAmount),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return errors.New("description cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOptions(s.Categories, tx.Type)...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("date").
				Title("Date (YYYY-MM-DD)").
				Value(&m.formDate).
				Validate(validateDate),

			huh.NewInput().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = txStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m TransactionsModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		tx := m.selected()
		if tx == nil {
			m.state = txStateBrowse
			m.table.Focus()

			return m, nil
		}

		id := tx.ID

		return m, func() tea.Msg {
			ctx, cancel := OpCtx()
			defer cancel()

			if err := m.controller.DeleteTransaction(ctx, id); err != nil {
				return txOpDoneMsg{err: err}
			}

			return txOpDoneMsg{status: "Transaction deleted"}
		}
	case "n", "N", "esc":
		m.state = txStateBrowse
		m.table.Focus()
	}

	return m, nil
}

func (m TransactionsModel) View() string {
	s := m.controller.State()

	header := fmt.Sprintf(
		"[t] Type: %s | [c] Category: %s | [m] Month: %s | [s] Sort: %s | [o] %s",
		activeStyle.Render(txTypeLabels[m.typeIdx]),
		activeStyle.Render(m.categoryLabel(s)),
		activeStyle.Render(m.monthLabel(s)),
		activeStyle.Render(string(txSortKeys[m.sortIdx])),
		activeStyle.Render(m.orderLabel()),
	)

	if m.state == txStateSearch || m.search.Value() != "" {
		header += "\nSearch: " + m.search.View()
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	switch {
	case m.state == txStateEdit && m.form != nil:
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Edit Transaction\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	case m.state == txStateConfirmDelete:
		if tx := m.selected(); tx != nil {
			content += "\n" + errorStyle.Render(
				fmt.Sprintf("Delete %q (%s)? [y/n]", tx.Description, FormatSignedAmount(*tx, s.Settings)),
			)
		}
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m TransactionsModel) categoryLabel(s state.State) string {
	if m.categoryIdx == 0 || m.categoryIdx > len(s.Categories) {
		return "All"
	}

	return s.Categories[m.categoryIdx-1].Name
}

func (m TransactionsModel) monthLabel(s state.State) string {
	months := report.AvailableMonths(s.Transactions)
	if m.monthIdx == 0 || m.monthIdx > len(months) {
		return "All"
	}

	return months[m.monthIdx-1]
}

func (m TransactionsModel) orderLabel() string {
	if m.descending {
		return "desc"
	}

	return "asc"
}

func (m TransactionsModel) query(s state.State) report.Query {
	q := report.Query{
		Search: m.search.Value(),
		Type:   txTypeFilters[m.typeIdx],
		SortBy: txSortKeys[m.sortIdx],
		Order:  report.OrderAsc,
	}

	if m.descending {
		q.Order = report.OrderDesc
	}

	if m.categoryIdx > 0 && m.categoryIdx <= len(s.Categories) {
		q.CategoryID = s.Categories[m.categoryIdx-1].ID
	}

	months := report.AvailableMonths(s.Transactions)
	if m.monthIdx > 0 && m.monthIdx <= len(months) {
		q.Month = months[m.monthIdx-1]
	}

	return q
}

func (m *TransactionsModel) refreshTable() {
	s := m.controller.State()
	m.visible = report.Filter(s.Transactions, s.Categories, m.query(s))

	rows := make([]table.Row, 0, len(m.visible))

	for _, tx := range m.visible {
		name, _ := report.ResolveCategory(tx.CategoryID, s.Categories)
		rows = append(rows, table.Row{
			FormatDate(tx.Date, s.Settings),
			string(tx.Type),
			FormatSignedAmount(tx, s.Settings),
			name,
			tx.Description,
		})
	}

	m.table.SetRows(rows)

	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m TransactionsModel) selected() *budget.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}

	return &m.visible[idx]
}

type txOpDoneMsg struct {
	status string
	err    error
}

func (m TransactionsModel) saveCmd() tea.Cmd {
	tx := m.selected()
	if tx == nil {
		return nil
	}

	// Read submitted values back from the form: the model is copied on
	// every update, so the bound fields of this copy can lag behind.
	id := tx.ID
	amount, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("amount")), 64)
	date, _ := budget.ParseDate(strings.TrimSpace(m.form.GetString("date")))
	desc := m.form.GetString("description")
	category := m.form.GetString("category")
	notes := m.form.GetString("notes")

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		patch := budget.TransactionPatch{
			Amount:      &amount,
			Description: &desc,
			CategoryID:  &category,
			Date:        &date,
			Notes:       &notes,
		}

		if _, err := m.controller.UpdateTransaction(ctx, id, patch); err != nil {
			return txOpDoneMsg{err: err}
		}

		return txOpDoneMsg{status: "Transaction updated"}
	}
}

func validateAmount(v string) error {
	amount, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return errors.New("enter a number")
	}

	if amount <= 0 {
		return errors.New("amount must be greater than zero")
	}

	return nil
}

func validateDate(v string) error {
	if _, err := budget.ParseDate(strings.TrimSpace(v)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}

	return nil
}

func categoryOptions(cats []budget.Category, typ budget.Type) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(cats))

	for _, c := range cats {
		if typ != "" && c.Type != typ {
			continue
		}

		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}

	return opts
}
