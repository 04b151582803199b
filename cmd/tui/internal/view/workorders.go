package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/garage/internal/workorder"
)

type woState int

const (
	woStateList woState = iota
	woStateTransition
)

var woColumns = []table.Column{
	{Title: "ID", Width: 6},
	{Title: "Client", Width: 8},
	{Title: "Vehicle", Width: 8},
	{Title: "Status", Width: 15},
	{Title: "Total", Width: 12},
	{Title: "Scheduled", Width: 12},
}

// WorkOrdersModel is a status board over all work orders.
type WorkOrdersModel struct {
	woService *workorder.Service

	state  woState
	table  table.Model
	form   *huh.Form
	orders []*workorder.WorkOrder
	target *workorder.WorkOrder

	// filter indexes workorder.Statuses; -1 shows every status.
	filter  int
	loading bool
	status  string
}

func NewWorkOrdersModel(svc *workorder.Service) WorkOrdersModel {
	return WorkOrdersModel{
		woService: svc,
		table:     newTable(woColumns, nil, 15),
		filter:    -1,
	}
}

func (m WorkOrdersModel) Title() string { return "Work Orders" }

func (m WorkOrdersModel) ShortHelp() string {
	if m.state == woStateTransition {
		return "Enter: apply | Esc: cancel"
	}

	return "Esc: back | r: refresh | s: filter status | t: change status"
}

func (m WorkOrdersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m WorkOrdersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case woLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.orders = msg.orders
		m.table.SetRows(woRows(msg.orders))

		if len(msg.orders) == 0 {
			m.status = "No work orders found."
		}

		return m, nil

	case woTransitionedMsg:
		m.state = woStateList
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Work order #%d: %s -> %s", msg.entry.WorkOrderID, msg.entry.OldStatus, msg.entry.NewStatus)
		m.loading = true

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	if m.state == woStateTransition {
		return m.updateTransition(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""

			return m, m.loadCmd()
		case "s":
			m.filter++
			if m.filter >= len(workorder.Statuses) {
				m.filter = -1
			}

			m.loading = true
			m.status = ""

			return m, m.loadCmd()
		case "t":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.orders) {
				return m, nil
			}

			m.target = m.orders[idx]
			m.form = transitionForm(m.target)
			m.state = woStateTransition
			m.table.Blur()

			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m WorkOrdersModel) updateTransition(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = woStateList
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		to := workorder.Status(m.form.GetString("status"))
		return m, m.transitionCmd(m.target.ID, to)
	}

	return m, cmd
}

func transitionForm(wo *workorder.WorkOrder) *huh.Form {
	options := make([]huh.Option[string], len(workorder.Statuses))
	for i, s := range workorder.Statuses {
		options[i] = huh.NewOption(string(s), string(s))
	}

	selected := string(wo.Status)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("status").
				Title(fmt.Sprintf("Move work order #%d to", wo.ID)).
				Options(options...).
				Value(&selected),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m WorkOrdersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading work orders...")
	}

	filter := "all"
	if m.filter >= 0 {
		filter = string(workorder.Statuses[m.filter])
	}

	header := lipgloss.NewStyle().PaddingBottom(1).Render(
		fmt.Sprintf("Work orders  status: %s", activeStyle(filter)),
	)

	body := tableView(m.table)
	if m.state == woStateTransition && m.form != nil {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, lipgloss.NewStyle().PaddingLeft(2).Render(m.form.View()))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, body)

	if m.status != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content,
			lipgloss.NewStyle().Faint(true).PaddingTop(1).Render(m.status),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func woRows(orders []*workorder.WorkOrder) []table.Row {
	rows := make([]table.Row, len(orders))
	for i, wo := range orders {
		rows[i] = table.Row{
			strconv.FormatInt(wo.ID, 10),
			strconv.FormatInt(wo.ClientID, 10),
			strconv.FormatInt(wo.VehicleID, 10),
			string(wo.Status),
			FormatMoney(wo.Total),
			FormatDate(wo.ScheduledDate),
		}
	}

	return rows
}

// Messages

type woLoadedMsg struct {
	orders []*workorder.WorkOrder
	err    error
}

type woTransitionedMsg struct {
	entry *workorder.StatusLogEntry
	err   error
}

func (m WorkOrdersModel) loadCmd() tea.Cmd {
	var filter workorder.ListFilter
	if m.filter >= 0 {
		filter.Status = new(workorder.Statuses[m.filter])
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		orders, err := m.woService.List(ctx, filter)

		return woLoadedMsg{orders: orders, err: err}
	}
}

func (m WorkOrdersModel) transitionCmd(id int64, to workorder.Status) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entry, err := m.woService.TransitionStatus(ctx, id, to)

		return woTransitionedMsg{entry: entry, err: err}
	}
}
