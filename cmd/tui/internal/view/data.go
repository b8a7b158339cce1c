package view

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmarques/budgeteer/internal/budget/state"
	"github.com/dmarques/budgeteer/internal/encoding"
)

type dataState int

const (
	dataStateMenu dataState = iota
	dataStateExportPath
	dataStateImportPath
	dataStateConfirmClear
)

// DataModel is the export/import/reset screen.
type DataModel struct {
	CommonModel
	controller *state.Controller

	state  dataState
	form   *huh.Form
	path   string
	status string
}

func NewDataModel(ctl *state.Controller) DataModel {
	return DataModel{controller: ctl}
}

func (m DataModel) Title() string { return "Data" }

func (m DataModel) ShortHelp() string {
	switch m.state {
	case dataStateMenu:
		return "Esc: back | e: export | i: import | x: clear all data"
	case dataStateConfirmClear:
		return "y: clear everything | n: keep"
	}

	return "Enter: confirm | Esc: cancel"
}

func (m DataModel) Init() tea.Cmd {
	return nil
}

func (m DataModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(dataOpDoneMsg); ok {
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
		} else {
			m.status = msg.status
		}

		m.state = dataStateMenu
		m.form = nil

		return m, nil
	}

	switch m.state {
	case dataStateMenu:
		return m.updateMenu(msg)
	case dataStateExportPath, dataStateImportPath:
		return m.updatePath(msg)
	case dataStateConfirmClear:
		return m.updateConfirmClear(msg)
	}

	return m, nil
}

func (m DataModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "e":
		m.path = defaultExportPath()
		m.form = m.buildPathForm("Export to")
		m.state = dataStateExportPath

		return m, m.form.Init()
	case "i":
		m.path = ""
		m.form = m.buildPathForm("Import from")
		m.state = dataStateImportPath

		return m, m.form.Init()
	case "x":
		m.state = dataStateConfirmClear

		return m, nil
	}

	return m, nil
}

func (m DataModel) buildPathForm(title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title(title).
				Placeholder("budgeteer-backup.json").
				Value(&m.path).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return errors.New("path cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m DataModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = dataStateMenu
			m.form = nil

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

	path := strings.TrimSpace(m.form.GetString("path"))
	if m.state == dataStateExportPath {
		return m, m.exportCmd(path)
	}

	return m, m.importCmd(path)
}

func (m DataModel) updateConfirmClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		return m, func() tea.Msg {
			ctx, cancel := OpCtx()
			defer cancel()

			if err := m.controller.ClearAll(ctx); err != nil {
				return dataOpDoneMsg{err: err}
			}

			return dataOpDoneMsg{status: "All data cleared"}
		}
	case "n", "N", "esc":
		m.state = dataStateMenu
	}

	return m, nil
}

func (m DataModel) View() string {
	var content string

	switch m.state {
	case dataStateMenu:
		s := m.controller.State()
		content = lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Data"),
			"",
			fmt.Sprintf("%d transactions, %d categories stored", len(s.Transactions), len(s.Categories)),
			"",
			"e. Export everything to a JSON file",
			"i. Import a previously exported file",
			"x. Clear all data",
		)

	case dataStateExportPath, dataStateImportPath:
		content = m.form.View()

	case dataStateConfirmClear:
		content = errorStyle.Render(
			"Clear ALL transactions, categories and settings? This cannot be undone. [y/n]",
		)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type dataOpDoneMsg struct {
	status string
	err    error
}

func (m DataModel) exportCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return dataOpDoneMsg{err: fmt.Errorf("creating export directory: %w", err)}
			}
		}

		f, err := os.Create(path)
		if err != nil {
			return dataOpDoneMsg{err: fmt.Errorf("creating export file: %w", err)}
		}
		defer f.Close()

		if err := m.controller.ExportTo(ctx, f); err != nil {
			return dataOpDoneMsg{err: err}
		}

		return dataOpDoneMsg{status: "Exported to " + path}
	}
}

func (m DataModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		f, err := os.Open(path)
		if err != nil {
			return dataOpDoneMsg{err: fmt.Errorf("opening import file: %w", err)}
		}
		defer f.Close()

		r, err := encoding.UTF8Reader(f)
		if err != nil {
			return dataOpDoneMsg{err: fmt.Errorf("reading import file: %w", err)}
		}

		if err := m.controller.ImportSnapshot(ctx, r); err != nil {
			return dataOpDoneMsg{err: err}
		}

		return dataOpDoneMsg{status: "Imported " + path}
	}
}

func defaultExportPath() string {
	return fmt.Sprintf("budgeteer-backup-%s.json", time.Now().Format("2006-01-02"))
}
