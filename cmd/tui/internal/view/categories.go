package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmarques/budgeteer/internal/budget"
	"github.com/dmarques/budgeteer/internal/budget/state"
)

// palette is the set of colors offered when creating or editing a
// category.
var palette = []string{
	"#ef4444", "#f59e0b", "#eab308", "#22c55e", "#10b981",
	"#06b6d4", "#0ea5e9", "#3b82f6", "#6366f1", "#8b5cf6",
	"#a855f7", "#d946ef", "#ec4899", "#f43f5e", "#64748b",
}

type categoriesState int

const (
	categoriesStateBrowse categoriesState = iota
	categoriesStateForm
	categoriesStateConfirmDelete
)

type CategoriesModel struct {
	CommonModel
	controller *state.Controller

	state   categoriesState
	table   table.Model
	form    *huh.Form
	editing string // category id being edited, empty when adding
	visible []budget.Category
	status  string

	formName  string
	formType  budget.Type
	formColor string
}

func NewCategoriesModel(ctl *state.Controller) CategoriesModel {
	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Name", Width: 24},
		{Title: "Type", Width: 10},
		{Title: "Color", Width: 9},
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

	m := CategoriesModel{controller: ctl, table: t}
	m.refreshTable()

	return m
}

func (m CategoriesModel) Title() string { return "Categories" }

func (m CategoriesModel) ShortHelp() string {
	switch m.state {
	case categoriesStateForm:
		return "Navigate form | Esc: cancel"
	case categoriesStateConfirmDelete:
		return "y: delete | n: keep"
	}

	return "Esc: back | a: add | e: edit | d: delete"
}

func (m CategoriesModel) Init() tea.Cmd {
	return nil
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(categoryOpDoneMsg); ok {
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
		} else {
			m.status = msg.status
		}

		m.state = categoriesStateBrowse
		m.form = nil
		m.table.Focus()
		m.refreshTable()

		return m, nil
	}

	switch m.state {
	case categoriesStateBrowse:
		return m.updateBrowse(msg)
	case categoriesStateForm:
		return m.updateForm(msg)
	case categoriesStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m CategoriesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.enterForm(nil)
		case "e":
			if cat := m.selected(); cat != nil {
				return m.enterForm(cat)
			}

			return m, nil
		case "d":
			if m.selected() != nil {
				m.state = categoriesStateConfirmDelete
				m.table.Blur()
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CategoriesModel) enterForm(cat *budget.Category) (tea.Model, tea.Cmd) {
	if cat != nil {
		m.editing = cat.ID
		m.formName = cat.Name
		m.formType = cat.Type
		m.formColor = cat.Color
	} else {
		m.editing = ""
		m.formName = ""
		m.formType = budget.TypeExpense
		m.formColor = palette[7]
	}

	colorOpts := make([]huh.Option[string], 0, len(palette))
	for _, c := range palette {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("■ " + c)
		colorOpts = append(colorOpts, huh.NewOption(swatch, c))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return errors.New("name cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[budget.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", budget.TypeExpense),
					huh.NewOption("Income", budget.TypeIncome),
				).
				Value(&m.formType),

			huh.NewSelect[string]().
				Key("color").
				Title("Color").
				Options(colorOpts...).
				Value(&m.formColor),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = categoriesStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m CategoriesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = categoriesStateBrowse
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

func (m CategoriesModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		cat := m.selected()
		if cat == nil {
			m.state = categoriesStateBrowse
			m.table.Focus()

			return m, nil
		}

		id := cat.ID

		return m, func() tea.Msg {
			ctx, cancel := OpCtx()
			defer cancel()

			if err := m.controller.DeleteCategory(ctx, id); err != nil {
				return categoryOpDoneMsg{err: err}
			}

			return categoryOpDoneMsg{status: "Category deleted"}
		}
	case "n", "N", "esc":
		m.state = categoriesStateBrowse
		m.table.Focus()
	}

	return m, nil
}

func (m CategoriesModel) View() string {
	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	switch {
	case m.state == categoriesStateForm && m.form != nil:
		label := "New Category"
		if m.editing != "" {
			label = "Edit Category"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render(label + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	case m.state == categoriesStateConfirmDelete:
		if cat := m.selected(); cat != nil {
			warning := fmt.Sprintf(
				"Delete %q? Transactions keep the reference and show as unknown. [y/n]",
				cat.Name,
			)
			content += "\n" + errorStyle.Render(warning)
		}
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CategoriesModel) refreshTable() {
	m.visible = m.controller.State().Categories

	rows := make([]table.Row, 0, len(m.visible))

	for _, cat := range m.visible {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render("●")
		rows = append(rows, table.Row{dot, cat.Name, string(cat.Type), cat.Color})
	}

	m.table.SetRows(rows)

	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m CategoriesModel) selected() *budget.Category {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}

	return &m.visible[idx]
}

type categoryOpDoneMsg struct {
	status string
	err    error
}

func (m CategoriesModel) saveCmd() tea.Cmd {
	// Read submitted values back from the form: the model is copied on
	// every update, so the bound fields of this copy can lag behind.
	name := m.form.GetString("name")
	typ := m.form.Get("type").(budget.Type)
	color := m.form.GetString("color")
	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if editing != "" {
			patch := budget.CategoryPatch{Name: &name, Type: &typ, Color: &color}
			if _, err := m.controller.UpdateCategory(ctx, editing, patch); err != nil {
				return categoryOpDoneMsg{err: err}
			}

			return categoryOpDoneMsg{status: "Category updated"}
		}

		params := budget.CategoryParams{Name: name, Type: typ, Color: color}
		if _, err := m.controller.AddCategory(ctx, params); err != nil {
			return categoryOpDoneMsg{err: err}
		}

		return categoryOpDoneMsg{status: "Category added"}
	}
}
