package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/billing"
	"github.com/MrJamesThe3rd/garage/internal/workorder"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var fixedNow = time.Date(2024, 5, 16, 22, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestService_IssueInvoice(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(repo *billing.MockRepository, tx *billing.MockTx)
		check     func(t *testing.T, inv *billing.Invoice, err error)
	}

	tests := []testCase{
		{
			name: "SnapshotsRecomputedTotal",
			setupMock: func(repo *billing.MockRepository, tx *billing.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().LockWorkOrder(gomock.Any(), int64(1)).Return(nil)
				tx.EXPECT().InvoiceForWorkOrder(gomock.Any(), int64(1)).Return(nil, apperr.ErrNotFound)
				tx.EXPECT().ListItems(gomock.Any(), int64(1)).Return([]*workorder.Item{
					{Quantity: 1, UnitPrice: dec("80"), Hours: dec("1.5"), MechanicRate: dec("45")},
					{Quantity: 1, UnitPrice: dec("25")},
				}, nil)
				tx.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *billing.Invoice) error {
						inv.ID = 5
						return nil
					})
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			check: func(t *testing.T, inv *billing.Invoice, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(5), inv.ID)
				assert.True(t, inv.TotalAmount.Equal(dec("172.5")), "got %s", inv.TotalAmount)
				assert.Equal(t, time.Date(2024, 5, 23, 0, 0, 0, 0, time.UTC), inv.DueDate)
				assert.Equal(t, fixedNow, inv.IssuedAt)
				assert.False(t, inv.Paid)
			},
		},
		{
			name: "AlreadyInvoiced",
			setupMock: func(repo *billing.MockRepository, tx *billing.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().LockWorkOrder(gomock.Any(), int64(1)).Return(nil)
				tx.EXPECT().InvoiceForWorkOrder(gomock.Any(), int64(1)).Return(&billing.Invoice{ID: 1, WorkOrderID: 1}, nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			check: func(t *testing.T, _ *billing.Invoice, err error) {
				var cerr *apperr.ConflictError
				require.ErrorAs(t, err, &cerr)
				assert.Equal(t, "work_order_id", cerr.Field)
			},
		},
		{
			name: "UnknownWorkOrder",
			setupMock: func(repo *billing.MockRepository, tx *billing.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().LockWorkOrder(gomock.Any(), int64(1)).Return(apperr.ErrNotFound)
				tx.EXPECT().Rollback().Return(nil)
			},
			check: func(t *testing.T, _ *billing.Invoice, err error) {
				assert.True(t, apperr.IsReference(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := billing.NewMockRepository(ctrl)
			tx := billing.NewMockTx(ctrl)
			tt.setupMock(repo, tx)

			inv, err := billing.NewService(repo, 7, billing.WithClock(clock)).IssueInvoice(context.Background(), 1)
			tt.check(t, inv, err)
		})
	}
}

func TestService_RecordPayment(t *testing.T) {
	type testCase struct {
		name      string
		amount    decimal.Decimal
		method    billing.Method
		setupMock func(repo *billing.MockRepository)
		wantErr   func(error) bool
	}

	tests := []testCase{
		{
			name:   "Success",
			amount: dec("50"),
			method: billing.MethodCard,
			setupMock: func(repo *billing.MockRepository) {
				repo.EXPECT().GetInvoice(gomock.Any(), int64(2)).Return(&billing.Invoice{ID: 2, TotalAmount: dec("320")}, nil)
				repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:   "OverpaymentAccepted",
			amount: dec("1000"),
			method: billing.MethodTransfer,
			setupMock: func(repo *billing.MockRepository) {
				repo.EXPECT().GetInvoice(gomock.Any(), int64(2)).Return(&billing.Invoice{ID: 2, TotalAmount: dec("320")}, nil)
				repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:    "ZeroAmount",
			amount:  decimal.Zero,
			method:  billing.MethodCash,
			wantErr: apperr.IsValidation,
		},
		{
			name:    "NegativeAmount",
			amount:  dec("-10"),
			method:  billing.MethodCash,
			wantErr: apperr.IsValidation,
		},
		{
			name:    "AmountFifthDecimal",
			amount:  dec("10.00001"),
			method:  billing.MethodCash,
			wantErr: apperr.IsValidation,
		},
		{
			name:    "AmountAboveColumn",
			amount:  dec("10000000000"),
			method:  billing.MethodCash,
			wantErr: apperr.IsValidation,
		},
		{
			name:    "UnknownMethod",
			amount:  dec("10"),
			method:  "cheque",
			wantErr: apperr.IsValidation,
		},
		{
			name:   "UnknownInvoice",
			amount: dec("10"),
			method: billing.MethodPIX,
			setupMock: func(repo *billing.MockRepository) {
				repo.EXPECT().GetInvoice(gomock.Any(), int64(2)).Return(nil, apperr.ErrNotFound)
			},
			wantErr: apperr.IsReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := billing.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			p, err := billing.NewService(repo, 7, billing.WithClock(clock)).
				RecordPayment(context.Background(), 2, tt.amount, tt.method)
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, p.Reference)
			assert.Equal(t, fixedNow, p.PaidAt)
			assert.True(t, p.Amount.Equal(tt.amount))
		})
	}
}

func TestService_MarkPaid(t *testing.T) {
	t.Run("Covered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := billing.NewMockRepository(ctrl)
		tx := billing.NewMockTx(ctrl)

		repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
		tx.EXPECT().LockInvoice(gomock.Any(), int64(2)).Return(&billing.Invoice{ID: 2, TotalAmount: dec("320")}, nil)
		tx.EXPECT().PaymentTotals(gomock.Any(), int64(2)).Return(dec("320"), 2, nil)
		tx.EXPECT().MarkPaid(gomock.Any(), int64(2), fixedNow).Return(nil)
		tx.EXPECT().Commit().Return(nil)
		tx.EXPECT().Rollback().Return(nil)

		inv, err := billing.NewService(repo, 7, billing.WithClock(clock)).MarkPaid(context.Background(), 2)
		require.NoError(t, err)
		assert.True(t, inv.Paid)
		require.NotNil(t, inv.PaidAt)
		assert.Equal(t, fixedNow, *inv.PaidAt)
	})

	t.Run("ShortPaid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := billing.NewMockRepository(ctrl)
		tx := billing.NewMockTx(ctrl)

		repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
		tx.EXPECT().LockInvoice(gomock.Any(), int64(2)).Return(&billing.Invoice{ID: 2, TotalAmount: dec("320")}, nil)
		tx.EXPECT().PaymentTotals(gomock.Any(), int64(2)).Return(dec("100"), 1, nil)
		tx.EXPECT().Rollback().Return(nil)

		_, err := billing.NewService(repo, 7).MarkPaid(context.Background(), 2)
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)

	repo.EXPECT().GetInvoice(gomock.Any(), int64(3)).Return(&billing.Invoice{ID: 3, TotalAmount: dec("185")}, nil)
	repo.EXPECT().PaymentTotals(gomock.Any(), int64(3)).Return(dec("200"), 2, nil)

	sum, err := billing.NewService(repo, 7).Summary(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, sum.Settled)
	assert.True(t, sum.Outstanding.IsZero())
	assert.Equal(t, 2, sum.Payments)
}
