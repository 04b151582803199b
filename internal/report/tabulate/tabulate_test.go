package tabulate_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/report"
	"github.com/MrJamesThe3rd/garage/internal/report/tabulate"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRun(t *testing.T) {
	type testCase struct {
		name      string
		query     tabulate.Query
		setupMock func(m *report.MockRepository)
		check     func(t *testing.T, tbl *tabulate.Table, err error)
	}

	tests := []testCase{
		{
			name:  "WorkOrderCosts",
			query: tabulate.Query{Report: "work-order-costs"},
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().WorkOrderCosts(gomock.Any()).Return([]report.WorkOrderCost{
					{WorkOrderID: 1, ClientID: 1, Status: "completed", Cost: dec("172.5")},
				}, nil)
			},
			check: func(t *testing.T, tbl *tabulate.Table, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Work order costs", tbl.Title)
				assert.Equal(t, []string{"Work order", "Client", "Status", "Cost"}, tbl.Headers)
				assert.Equal(t, [][]string{{"1", "1", "completed", "172.50"}}, tbl.Rows)
			},
		},
		{
			name:  "LowStockPartsTitleCarriesThreshold",
			query: tabulate.Query{Report: "low-stock-parts", Threshold: 5},
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().LowStockParts(gomock.Any(), 5).Return([]report.LowStockPart{
					{PartID: 3, SKU: "PAD-003", Name: "Pastilha", OnHand: 3, WorkOrders: 1},
				}, nil)
			},
			check: func(t *testing.T, tbl *tabulate.Table, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Low-stock parts (< 5)", tbl.Title)
				assert.Equal(t, [][]string{{"3", "PAD-003", "Pastilha", "3", "1"}}, tbl.Rows)
			},
		},
		{
			name:  "Breakdown",
			query: tabulate.Query{Report: "work-order-breakdown", WorkOrderID: 1},
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().WorkOrderBreakdown(gomock.Any(), int64(1)).Return([]report.LineItem{
					{ItemID: 1, Kind: "service", Description: "Troca de óleo", Quantity: 1,
						UnitPrice: dec("60"), Hours: dec("1"), MechanicRate: dec("45"), Subtotal: dec("105")},
				}, nil)
			},
			check: func(t *testing.T, tbl *tabulate.Table, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Work order breakdown #1", tbl.Title)
				assert.Equal(t, []string{"1", "service", "Troca de óleo", "1", "60.00", "1.00", "45.00", "105.00"}, tbl.Rows[0])
			},
		},
		{
			name:      "Unknown",
			query:     tabulate.Query{Report: "profit"},
			setupMock: func(m *report.MockRepository) {},
			check: func(t *testing.T, tbl *tabulate.Table, err error) {
				assert.ErrorContains(t, err, `unknown report "profit"`)
			},
		},
		{
			name:      "InvalidCount",
			query:     tabulate.Query{Report: "top-clients", Count: 0},
			setupMock: func(m *report.MockRepository) {},
			check: func(t *testing.T, tbl *tabulate.Table, err error) {
				assert.True(t, apperr.IsValidation(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := report.NewMockRepository(ctrl)
			tt.setupMock(repo)

			tbl, err := tabulate.Run(context.Background(), report.NewService(repo), tt.query)
			tt.check(t, tbl, err)
		})
	}
}

func TestLookup(t *testing.T) {
	spec, ok := tabulate.Lookup("billed-clients")
	require.True(t, ok)
	assert.Equal(t, tabulate.ParamAmount, spec.Param)

	_, ok = tabulate.Lookup("nope")
	assert.False(t, ok)

	assert.Len(t, tabulate.Reports, 10)
}
