// Package tabulate runs a report by name and flattens the result into
// string cells for terminal rendering.
package tabulate

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/report"
)

// Param is the single input a report takes, if any.
type Param int

const (
	ParamNone Param = iota
	ParamThreshold
	ParamAmount
	ParamCount
	ParamWorkOrder
)

type Spec struct {
	Name  string
	Title string
	Param Param
}

var Reports = []Spec{
	{Name: "orders-per-client", Title: "Work orders per client"},
	{Name: "low-stock-work-orders", Title: "Work orders using low-stock parts", Param: ParamThreshold},
	{Name: "work-order-costs", Title: "Work order costs"},
	{Name: "mechanic-hours", Title: "Hours per mechanic"},
	{Name: "parts-usage", Title: "Parts used"},
	{Name: "billed-clients", Title: "Clients billed above threshold", Param: ParamAmount},
	{Name: "work-order-breakdown", Title: "Work order breakdown", Param: ParamWorkOrder},
	{Name: "low-stock-parts", Title: "Low-stock parts", Param: ParamThreshold},
	{Name: "mechanic-revenue", Title: "Revenue per mechanic"},
	{Name: "top-clients", Title: "Top clients", Param: ParamCount},
}

func Lookup(name string) (Spec, bool) {
	for _, s := range Reports {
		if s.Name == name {
			return s, true
		}
	}

	return Spec{}, false
}

type Query struct {
	Report      string
	Threshold   int
	Amount      decimal.Decimal
	Count       int
	WorkOrderID int64
}

type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func Run(ctx context.Context, svc *report.Service, q Query) (*Table, error) {
	spec, ok := Lookup(q.Report)
	if !ok {
		return nil, fmt.Errorf("unknown report %q", q.Report)
	}

	t := &Table{Title: spec.Title}

	switch spec.Name {
	case "orders-per-client":
		rows, err := svc.OrdersPerClient(ctx)
		if err != nil {
			return nil, err
		}

		t.Headers = []string{"Client", "Name", "Orders"}
		for _, r := range rows {
			t.Rows = append(t.Rows, []string{id(r.ClientID), r.Name, strconv.Itoa(r.Orders)})
		}
	case "low-stock-work-orders":
		rows, err := svc.LowStockWorkOrders(ctx, q.Threshold)
		if err != nil {
			return nil, err
		}

		t.Title = fmt.Sprintf("%s (< %d)", t.Title, q.Threshold)
		t.Headers = []string{"Work order", "Part", "SKU", "Name", "On hand"}
		for _, r := range rows {
			t.Rows = append(t.Rows, []string{id(r.WorkOrderID), id(r.PartID), r.SKU, r.PartName, strconv.Itoa(r.OnHand)})
		}
	case "work-order-costs":
		rows, err := svc.WorkOrderCosts(ctx)
		if err != nil {
			return nil, err
		}

		t.Headers = []string{"Work order", "Client", "Status", "Cost"}
		for _, r := range rows {
			t.Rows = append(t.Rows, []string{id(r.WorkOrderID), id(r.ClientID), r.Status, money(r.Cost)})
		}
	case "mechanic-hours":
		rows, err := svc.MechanicHours(ctx)
		if err != nil {
			return nil, err
		}

		t.Headers = []string{"Mechanic", "Name", "Hours"}
		for _, r := range rows {
			t.Rows = append(t.Rows, []string{id(r.MechanicID), r.Name, r.Hours.StringFixed(2)})
		}
	case "parts-usage":
		rows, err := svc.PartsUsage(ctx)
		if err != nil {
			return nil, err
		}

		t.Headers = []string{"Part", "SKU", "Name", "Quantity"}
		for _, r := range rows {
			t.Rows = append(t.Rows, []string{id(r.PartID), r.SKU, r.Name, strconv.Itoa(r.Quantity)})
		}
	case "billed-clients":
		rows, err := svc.BilledClients(ctx, q.Amount)
		if err != nil {
			return nil, err
		}

		t.Title = fmt.Sprintf("%s (> %s)", t.Title, money(q.Amount))
		t.Headers = []string{"Client", "Name", "Invoiced", "Paid"}
		for _, r := range rows {
			t.Rows = append(t.Rows, []string{id(r.ClientID), r.Name, money(r.Invoiced), money(r.Paid)})
		}
	case "work-order-breakdown":
		rows, err := svc.WorkOrderBreakdown(ctx, q.WorkOrderID)
		if err != nil {
			return nil, err
		}

		t.Title = fmt.Sprintf("%s #%d", t.Title, q.WorkOrderID)
		t.Headers = []string{"Item", "Kind", "Description", "Qty", "Unit price", "Hours", "Rate", "Subtotal"}
		for _, r := range rows {
			t.Rows = append(t.Rows, []string{
				id(r.ItemID), r.Kind, r.Description, strconv.Itoa(r.Quantity),
				money(r.UnitPrice), r.Hours.StringFixed(2), money(r.MechanicRate), money(r.Subtotal),
			})
		}
	case "low-stock-parts":
		rows, err := svc.LowStockParts(ctx, q.Threshold)
		if err != nil {
			return nil, err
		}

		t.Title = fmt.Sprintf("%s (< %d)", t.Title, q.Threshold)
		t.Headers = []string{"Part", "SKU", "Name", "On hand", "Work orders"}
		for _, r := range rows {
			t.Rows = append(t.Rows, []string{id(r.PartID), r.SKU, r.Name, strconv.Itoa(r.OnHand), strconv.Itoa(r.WorkOrders)})
		}
	case "mechanic-revenue":
		rows, err := svc.MechanicRevenue(ctx)
		if err != nil {
			return nil, err
		}

		t.Headers = []string{"Mechanic", "Name", "Labor", "Lines", "Total"}
		for _, r := range rows {
			t.Rows = append(t.Rows, []string{id(r.MechanicID), r.Name, money(r.Labor), money(r.Lines), money(r.Total)})
		}
	case "top-clients":
		rows, err := svc.TopClients(ctx, q.Count)
		if err != nil {
			return nil, err
		}

		t.Title = fmt.Sprintf("%s (top %d)", t.Title, q.Count)
		t.Headers = []string{"Client", "Name", "Orders", "Avg order"}
		for _, r := range rows {
			t.Rows = append(t.Rows, []string{id(r.ClientID), r.Name, strconv.Itoa(r.Orders), money(r.AvgOrderValue)})
		}
	}

	return t, nil
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
