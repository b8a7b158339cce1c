package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct{}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

const opTimeout = 5 * time.Second

// OpCtx returns a context with a standard timeout for store operations.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	incomeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	spendStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)
