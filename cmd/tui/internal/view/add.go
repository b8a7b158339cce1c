package view

import (
	"errors"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmarques/budgeteer/internal/budget"
	"github.com/dmarques/budgeteer/internal/budget/state"
)

type addState int

const (
	addStateForm addState = iota
	addStateDone
)

type AddModel struct {
	CommonModel
	controller *state.Controller

	state  addState
	form   *huh.Form
	status string

	formType     budget.Type
	formAmount   string
	formDesc     string
	formCategory string
	formDate     string
	formNotes    string
}

func NewAddModel(ctl *state.Controller) AddModel {
	m := AddModel{
		controller: ctl,
		formType:   budget.TypeExpense,
		formDate:   time.Now().Format("2006-01-02"),
	}
	m.form = m.buildForm()

	return m
}

func (m AddModel) Title() string { return "Add Transaction" }

func (m AddModel) ShortHelp() string {
	if m.state == addStateDone {
		return "a: add another | Esc: back"
	}

	return "Navigate form | Esc: cancel"
}

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddModel) buildForm() *huh.Form {
	cats := m.controller.State().Categories

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[budget.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", budget.TypeExpense),
					huh.NewOption("Income", budget.TypeIncome),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
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
				Options(categoryOptions(cats, "")...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("date").
				Title("Date (YYYY-MM-DD)").
				Value(&m.formDate).
				Validate(validateDate),

			huh.NewInput().
				Key("notes").
				Title("Notes (optional)").
				Value(&m.formNotes),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(addDoneMsg); ok {
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		m.status = "Saved " + msg.description
		m.state = addStateDone

		return m, nil
	}

	if m.state == addStateDone {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "a":
				fresh := NewAddModel(m.controller)
				fresh.status = m.status

				return fresh, fresh.Init()
			case "esc":
				return m, Back
			}
		}

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
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

func (m AddModel) View() string {
	var content string

	if m.state == addStateDone {
		content = lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Transaction saved"),
			"",
			faintStyle.Render("Press a to add another, Esc to go back"),
		)
	} else {
		content = m.form.View()
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type addDoneMsg struct {
	description string
	err         error
}

func (m AddModel) saveCmd() tea.Cmd {
	// Read submitted values back from the form: the model is copied on
	// every update, so the bound fields of this copy can lag behind.
	amount, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("amount")), 64)
	date, _ := budget.ParseDate(strings.TrimSpace(m.form.GetString("date")))

	params := budget.TransactionParams{
		Type:        m.form.Get("type").(budget.Type),
		Amount:      amount,
		Description: m.form.GetString("description"),
		CategoryID:  m.form.GetString("category"),
		Date:        date,
		Notes:       m.form.GetString("notes"),
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		tx, err := m.controller.AddTransaction(ctx, params)
		if err != nil {
			return addDoneMsg{err: err}
		}

		return addDoneMsg{description: tx.Description}
	}
}
