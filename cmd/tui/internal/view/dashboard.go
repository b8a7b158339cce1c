package view

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmarques/budgeteer/internal/budget/state"
	"github.com/dmarques/budgeteer/internal/report"
)

const topCategoryLimit = 5

type DashboardModel struct {
	CommonModel
	controller *state.Controller
}

func NewDashboardModel(ctl *state.Controller) DashboardModel {
	return DashboardModel{controller: ctl}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, func() tea.Msg {
				ctx, cancel := OpCtx()
				defer cancel()

				m.controller.Load(ctx)

				return nil
			}
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	s := m.controller.State()
	now := time.Now()

	summary := report.Summarize(now, s.Transactions)

	overview := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(now.Format("January 2006")),
		"",
		fmt.Sprintf("Income:    %s", incomeStyle.Render(FormatAmount(summary.Income, s.Settings))),
		fmt.Sprintf("Expenses:  %s", spendStyle.Render(FormatAmount(summary.Expenses, s.Settings))),
		fmt.Sprintf("Balance:   %s", FormatAmount(summary.Balance, s.Settings)),
		faintStyle.Render(fmt.Sprintf("%d transactions this month", summary.TransactionCount)),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		panel(overview),
		panel(m.viewTopCategories(s, now)),
		panel(m.viewRecent(s)),
	)

	if s.Error != "" {
		content = errorStyle.Render("Error: "+s.Error) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m DashboardModel) viewTopCategories(s state.State, now time.Time) string {
	top := report.TopExpenseCategories(now, s.Transactions, s.Categories, topCategoryLimit)
	if len(top) == 0 {
		return faintStyle.Render("No expenses this month")
	}

	lines := []string{titleStyle.Render("Top Spending")}
	for _, ct := range top {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(ct.Color)).Render("●")
		lines = append(lines, fmt.Sprintf("%s %-22s %s", dot, ct.Name, FormatAmount(ct.Amount, s.Settings)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m DashboardModel) viewRecent(s state.State) string {
	recent := report.Filter(s.Transactions, s.Categories, report.Query{})
	if len(recent) > 5 {
		recent = recent[:5]
	}

	if len(recent) == 0 {
		return faintStyle.Render("No transactions yet")
	}

	lines := []string{titleStyle.Render("Recent Transactions")}
	for _, tx := range recent {
		lines = append(lines, fmt.Sprintf("%s  %-28s %s",
			FormatDate(tx.Date, s.Settings),
			tx.Description,
			FormatSignedAmount(tx, s.Settings),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func panel(content string) string {
	return lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(content)
}
