package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/report"
	"github.com/MrJamesThe3rd/garage/internal/report/tabulate"
)

type reportsState int

const (
	reportsStatePick reportsState = iota
	reportsStateParam
	reportsStateResult
)

// ReportDefaults prefill the parameter form.
type ReportDefaults struct {
	Threshold int
	Amount    decimal.Decimal
	Count     int
}

type ReportsModel struct {
	reportService *report.Service
	defaults      ReportDefaults

	state  reportsState
	picker table.Model
	result table.Model
	form   *huh.Form
	spec   tabulate.Spec
	title  string
	height int

	loading bool
	err     error
}

func NewReportsModel(svc *report.Service, defaults ReportDefaults) ReportsModel {
	rows := make([]table.Row, len(tabulate.Reports))
	for i, s := range tabulate.Reports {
		rows[i] = table.Row{s.Name, s.Title}
	}

	return ReportsModel{
		reportService: svc,
		defaults:      defaults,
		picker: newTable([]table.Column{
			{Title: "Report", Width: 24},
			{Title: "Description", Width: 40},
		}, rows, len(rows)+1),
		height: 15,
	}
}

func (m ReportsModel) Title() string { return "Reports" }

func (m ReportsModel) ShortHelp() string {
	switch m.state {
	case reportsStateParam:
		return "Enter: run | Esc: cancel"
	case reportsStateResult:
		return "Esc: back to reports | r: rerun"
	}

	return "Enter: run | Esc: back"
}

func (m ReportsModel) Init() tea.Cmd {
	return nil
}

func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.title = msg.table.Title
			rows := make([]table.Row, len(msg.table.Rows))
			for i, r := range msg.table.Rows {
				rows[i] = r
			}

			m.result = newTable(fitColumns(msg.table.Headers, msg.table.Rows), rows, m.height)
		}

		m.state = reportsStateResult

		return m, nil

	case tea.WindowSizeMsg:
		m.height = max(msg.Height-10, 5)
		if m.state == reportsStateResult && m.err == nil {
			m.result.SetHeight(m.height)
		}

		return m, nil
	}

	switch m.state {
	case reportsStatePick:
		return m.updatePick(msg)
	case reportsStateParam:
		return m.updateParam(msg)
	case reportsStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ReportsModel) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "enter":
			idx := m.picker.Cursor()
			if idx < 0 || idx >= len(tabulate.Reports) {
				return m, nil
			}

			m.spec = tabulate.Reports[idx]

			if m.spec.Param == tabulate.ParamNone {
				m.loading = true
				return m, m.runCmd(tabulate.Query{Report: m.spec.Name})
			}

			m.form = m.paramForm()
			m.state = reportsStateParam
			m.picker.Blur()

			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m ReportsModel) paramForm() *huh.Form {
	var (
		title, value string
		validate     func(string) error
	)

	switch m.spec.Param {
	case tabulate.ParamThreshold:
		title, value = "Stock threshold", strconv.Itoa(m.defaults.Threshold)
		validate = nonNegativeInt
	case tabulate.ParamAmount:
		title, value = "Invoiced more than", m.defaults.Amount.String()
		validate = func(s string) error {
			if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
				return errors.New("enter an amount like 200 or 199.90")
			}

			return nil
		}
	case tabulate.ParamCount:
		title, value = "How many clients", strconv.Itoa(m.defaults.Count)
		validate = positiveInt
	case tabulate.ParamWorkOrder:
		title = "Work order id"
		validate = positiveInt
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("value").
				Title(title).
				Value(&value).
				Validate(validate),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m ReportsModel) updateParam(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = reportsStatePick
		m.form = nil
		m.picker.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	q, err := buildQuery(m.spec, strings.TrimSpace(m.form.GetString("value")))
	if err != nil {
		m.err = err
		m.state = reportsStateResult

		return m, nil
	}

	m.loading = true

	return m, m.runCmd(q)
}

func (m ReportsModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = reportsStatePick
			m.err = nil
			m.form = nil
			m.picker.Focus()

			return m, nil
		case "r":
			if m.spec.Param == tabulate.ParamNone {
				m.loading = true
				return m, m.runCmd(tabulate.Query{Report: m.spec.Name})
			}
		}
	}

	var cmd tea.Cmd
	m.result, cmd = m.result.Update(msg)

	return m, cmd
}

func (m ReportsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Running report...")
	}

	var content string

	switch m.state {
	case reportsStatePick:
		content = tableView(m.picker)
	case reportsStateParam:
		content = lipgloss.JoinVertical(lipgloss.Left,
			activeStyle(m.spec.Title),
			"",
			m.form.View(),
		)
	case reportsStateResult:
		if m.err != nil {
			content = fmt.Sprintf("Error: %v", m.err)
			break
		}

		body := tableView(m.result)
		if len(m.result.Rows()) == 0 {
			body = lipgloss.NewStyle().Faint(true).Render("no rows")
		}

		content = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(activeStyle(m.title)),
			body,
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func buildQuery(spec tabulate.Spec, value string) (tabulate.Query, error) {
	q := tabulate.Query{Report: spec.Name}

	switch spec.Param {
	case tabulate.ParamThreshold, tabulate.ParamCount:
		n, err := strconv.Atoi(value)
		if err != nil {
			return q, fmt.Errorf("invalid number %q", value)
		}

		q.Threshold, q.Count = n, n
	case tabulate.ParamAmount:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return q, fmt.Errorf("invalid amount %q", value)
		}

		q.Amount = d
	case tabulate.ParamWorkOrder:
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return q, fmt.Errorf("invalid work order id %q", value)
		}

		q.WorkOrderID = id
	}

	return q, nil
}

func nonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return errors.New("enter a whole number, 0 or more")
	}

	return nil
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("enter a whole number greater than 0")
	}

	return nil
}

// Messages

type reportLoadedMsg struct {
	table *tabulate.Table
	err   error
}

func (m ReportsModel) runCmd(q tabulate.Query) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		t, err := tabulate.Run(ctx, m.reportService, q)

		return reportLoadedMsg{table: t, err: err}
	}
}
