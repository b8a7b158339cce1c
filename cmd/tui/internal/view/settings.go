package view

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmarques/budgeteer/internal/budget"
	"github.com/dmarques/budgeteer/internal/budget/state"
	"github.com/dmarques/budgeteer/internal/money"
)

var currencyLabels = map[string]string{
	"USD": "USD - US Dollar",
	"EUR": "EUR - Euro",
	"GBP": "GBP - British Pound",
	"CAD": "CAD - Canadian Dollar",
	"AUD": "AUD - Australian Dollar",
	"JPY": "JPY - Japanese Yen",
	"INR": "INR - Indian Rupee",
}

type SettingsModel struct {
	CommonModel
	controller *state.Controller

	form   *huh.Form
	status string

	formCurrency   string
	formDateFormat string
	formTheme      budget.Theme
}

func NewSettingsModel(ctl *state.Controller) SettingsModel {
	s := ctl.State().Settings

	m := SettingsModel{
		controller:     ctl,
		formCurrency:   s.Currency,
		formDateFormat: s.DateFormat,
		formTheme:      s.Theme,
	}
	m.form = m.buildForm()

	return m
}

func (m SettingsModel) buildForm() *huh.Form {
	currencyOpts := make([]huh.Option[string], 0, len(money.Currencies()))
	for _, code := range money.Currencies() {
		currencyOpts = append(currencyOpts, huh.NewOption(currencyLabels[code], code))
	}

	formatOpts := make([]huh.Option[string], 0, len(DateFormats()))
	for _, f := range DateFormats() {
		formatOpts = append(formatOpts, huh.NewOption(f, f))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("currency").
				Title("Currency").
				Options(currencyOpts...).
				Value(&m.formCurrency),

			huh.NewSelect[string]().
				Key("dateFormat").
				Title("Date Format").
				Options(formatOpts...).
				Value(&m.formDateFormat),

			huh.NewSelect[budget.Theme]().
				Key("theme").
				Title("Theme").
				Options(
					huh.NewOption("Light", budget.ThemeLight),
					huh.NewOption("Dark", budget.ThemeDark),
					huh.NewOption("Auto", budget.ThemeAuto),
				).
				Value(&m.formTheme),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m SettingsModel) Title() string     { return "Settings" }
func (m SettingsModel) ShortHelp() string { return "Navigate form | Esc: back" }

func (m SettingsModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(settingsSavedMsg); ok {
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
		} else {
			m.status = "Settings saved"
		}

		fresh := NewSettingsModel(m.controller)
		fresh.status = m.status

		return fresh, fresh.Init()
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

func (m SettingsModel) View() string {
	s := m.controller.State().Settings

	preview := faintStyle.Render(
		"Preview: " + FormatAmount(1234.5, s) + " on " + FormatDate(budget.DateOf(time.Now()), s),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.form.View(),
		"",
		preview,
	)

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type settingsSavedMsg struct {
	err error
}

func (m SettingsModel) saveCmd() tea.Cmd {
	// Read submitted values back from the form: the model is copied on
	// every update, so the bound fields of this copy can lag behind.
	currency := m.form.GetString("currency")
	dateFormat := m.form.GetString("dateFormat")
	theme := m.form.Get("theme").(budget.Theme)

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		patch := budget.SettingsPatch{
			Currency:   &currency,
			DateFormat: &dateFormat,
			Theme:      &theme,
		}

		_, err := m.controller.UpdateSettings(ctx, patch)

		return settingsSavedMsg{err: err}
	}
}
