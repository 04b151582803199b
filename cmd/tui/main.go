package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/garage/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/garage/internal/config"
	"github.com/MrJamesThe3rd/garage/internal/database"
	"github.com/MrJamesThe3rd/garage/internal/event"
	"github.com/MrJamesThe3rd/garage/internal/report"
	"github.com/MrJamesThe3rd/garage/internal/report/cache"
	reportStore "github.com/MrJamesThe3rd/garage/internal/report/store"
	"github.com/MrJamesThe3rd/garage/internal/workorder"
	woStore "github.com/MrJamesThe3rd/garage/internal/workorder/store"
)

type model struct {
	reportService *report.Service
	woService     *workorder.Service
	defaults      view.ReportDefaults
	appName       string

	currentView View

	reportsView    view.ReportsModel
	workOrdersView view.WorkOrdersModel
}

type View int

const (
	ViewMenu       View = 0
	ViewReports    View = 1
	ViewWorkOrders View = 2
)

func initialModel(cfg *config.Config, reportSvc *report.Service, woSvc *workorder.Service) model {
	defaults := view.ReportDefaults{
		Threshold: cfg.Reports.LowStockThreshold,
		Amount:    cfg.Reports.BilledThreshold,
		Count:     cfg.Reports.TopClients,
	}

	return model{
		reportService:  reportSvc,
		woService:      woSvc,
		defaults:       defaults,
		appName:        cfg.App.Name,
		currentView:    ViewMenu,
		reportsView:    view.NewReportsModel(reportSvc, defaults),
		workOrdersView: view.NewWorkOrdersModel(woSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewReports
				m.reportsView = view.NewReportsModel(m.reportService, m.defaults)

				return m, m.reportsView.Init()
			case "2":
				m.currentView = ViewWorkOrders
				m.workOrdersView = view.NewWorkOrdersModel(m.woService)

				return m, m.workOrdersView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewReports:
		var newModel tea.Model
		newModel, cmd = m.reportsView.Update(msg)
		m.reportsView = newModel.(view.ReportsModel)
	case ViewWorkOrders:
		var newModel tea.Model
		newModel, cmd = m.workOrdersView.Update(msg)
		m.workOrdersView = newModel.(view.WorkOrdersModel)
	}

	return m, cmd
}

func (m model) View() string {
	var active view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Reports\n" +
				"2. Work Orders\n\n" +
				"q. Quit",
		)
	case ViewReports:
		active = m.reportsView
	case ViewWorkOrders:
		active = m.workOrdersView
	default:
		return "Unknown View"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		active.View(),
		lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(active.ShortHelp()),
	)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var publisher event.Publisher = event.Nop{}

	if cfg.AMQP.URL != "" {
		if amqpPub, err := event.NewAMQP(cfg.AMQP.URL, cfg.AMQP.Queue); err == nil {
			publisher = amqpPub
		}
	}
	defer publisher.Close()

	var reportOpts []report.Option

	if cfg.Redis.Addr != "" && cfg.Reports.CacheTTL > 0 {
		if rdb := cache.Connect(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); rdb != nil {
			defer rdb.Close()

			reportOpts = append(reportOpts, report.WithCache(cache.NewRedis(rdb, cfg.App.Name), cfg.Reports.CacheTTL))
		}
	}

	reportSvc := report.NewService(reportStore.New(db), reportOpts...)
	woSvc := workorder.NewService(woStore.New(db), workorder.WithPublisher(publisher), workorder.WithInvalidator(reportSvc))

	p := tea.NewProgram(initialModel(cfg, reportSvc, woSvc))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
