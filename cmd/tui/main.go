package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/dmarques/budgeteer/cmd/tui/internal/view"
	"github.com/dmarques/budgeteer/internal/budget"
	"github.com/dmarques/budgeteer/internal/budget/state"
	"github.com/dmarques/budgeteer/internal/config"
	"github.com/dmarques/budgeteer/internal/storage"
)

type model struct {
	controller *state.Controller

	currentView View

	dashboardView    view.DashboardModel
	transactionsView view.TransactionsModel
	addView          view.AddModel
	categoriesView   view.CategoriesModel
	settingsView     view.SettingsModel
	dataView         view.DataModel
}

type View int

const (
	ViewMenu         View = 0
	ViewDashboard    View = 1
	ViewTransactions View = 2
	ViewAdd          View = 3
	ViewCategories   View = 4
	ViewSettings     View = 5
	ViewData         View = 6
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		slog.Error("failed to resolve data path", "error", err)
		os.Exit(1)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		slog.Error("failed to open data store", "error", err)
		os.Exit(1)
	}

	controller := state.NewController(budget.NewService(store))
	controller.Load(context.Background())

	return model{
		controller:       controller,
		currentView:      ViewMenu,
		dashboardView:    view.NewDashboardModel(controller),
		transactionsView: view.NewTransactionsModel(controller),
		addView:          view.NewAddModel(controller),
		categoriesView:   view.NewCategoriesModel(controller),
		settingsView:     view.NewSettingsModel(controller),
		dataView:         view.NewDataModel(controller),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.controller)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.controller)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewAdd
				m.addView = view.NewAddModel(m.controller)

				return m, m.addView.Init()
			case "4":
				m.currentView = ViewCategories
				m.categoriesView = view.NewCategoriesModel(m.controller)

				return m, m.categoriesView.Init()
			case "5":
				m.currentView = ViewSettings
				m.settingsView = view.NewSettingsModel(m.controller)

				return m, m.settingsView.Init()
			case "6":
				m.currentView = ViewData
				m.dataView = view.NewDataModel(m.controller)

				return m, m.dataView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	case ViewCategories:
		var newModel tea.Model
		newModel, cmd = m.categoriesView.Update(msg)
		m.categoriesView = newModel.(view.CategoriesModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	case ViewData:
		var newModel tea.Model
		newModel, cmd = m.dataView.Update(msg)
		m.dataView = newModel.(view.DataModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Budgeteer\n\n" +
				"1. Dashboard\n" +
				"2. Transactions\n" +
				"3. Add Transaction\n" +
				"4. Categories\n" +
				"5. Settings\n" +
				"6. Data (Export / Import)\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewAdd:
		return m.addView.View()
	case ViewCategories:
		return m.categoriesView.View()
	case ViewSettings:
		return m.settingsView.View()
	case ViewData:
		return m.dataView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
