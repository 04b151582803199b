// Command report prints one of the shop reports as a table.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/config"
	"github.com/MrJamesThe3rd/garage/internal/database"
	"github.com/MrJamesThe3rd/garage/internal/report"
	reportStore "github.com/MrJamesThe3rd/garage/internal/report/store"
	"github.com/MrJamesThe3rd/garage/internal/report/tabulate"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	emptyStyle  = lipgloss.NewStyle().Faint(true)
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var (
		name      = flag.String("report", "", "report to print (see -list)")
		list      = flag.Bool("list", false, "list available reports")
		threshold = flag.Int("threshold", cfg.Reports.LowStockThreshold, "stock threshold for low-stock reports")
		amount    = flag.String("amount", cfg.Reports.BilledThreshold.String(), "invoiced amount threshold for billed-clients")
		count     = flag.Int("n", cfg.Reports.TopClients, "number of clients for top-clients")
		workOrder = flag.Int64("work-order", 0, "work order id for work-order-breakdown")
	)
	flag.Parse()

	if *list {
		for _, s := range tabulate.Reports {
			fmt.Printf("%-24s %s\n", s.Name, s.Title)
		}

		return
	}

	if *name == "" {
		fmt.Fprintln(os.Stderr, "usage: report -report NAME [-threshold N] [-amount X] [-n N] [-work-order ID]")
		os.Exit(2)
	}

	amountDec, err := decimal.NewFromString(*amount)
	if err != nil {
		slog.Error("invalid -amount", "value", *amount, "error", err)
		os.Exit(2)
	}

	db, err := database.New(cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tbl, err := tabulate.Run(ctx, report.NewService(reportStore.New(db)), tabulate.Query{
		Report:      *name,
		Threshold:   *threshold,
		Amount:      amountDec,
		Count:       *count,
		WorkOrderID: *workOrder,
	})
	if err != nil {
		slog.Error("failed to run report", "report", *name, "error", err)
		os.Exit(1)
	}

	fmt.Println(render(tbl))
}

func render(tbl *tabulate.Table) string {
	title := titleStyle.Render(tbl.Title)

	if len(tbl.Rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, emptyStyle.Render("no rows"))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		}).
		Headers(tbl.Headers...).
		Rows(tbl.Rows...)

	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render())
}
