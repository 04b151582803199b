package inventory_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/inventory"
)

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.calls++
	return nil
}

func TestService_Adjust(t *testing.T) {
	type testCase struct {
		name      string
		delta     int
		setupMock func(m *inventory.MockRepository)
		wantQty   int
		wantErr   func(error) bool
	}

	tests := []testCase{
		{
			name:  "Increase",
			delta: 5,
			setupMock: func(m *inventory.MockRepository) {
				m.EXPECT().Adjust(gomock.Any(), int64(3), 5).Return(8, nil)
			},
			wantQty: 8,
		},
		{
			name:  "BelowZero",
			delta: -4,
			setupMock: func(m *inventory.MockRepository) {
				m.EXPECT().Adjust(gomock.Any(), int64(3), -4).Return(0, inventory.ErrInsufficientStock)
			},
			wantErr: apperr.IsValidation,
		},
		{
			name:  "AboveColumnLimit",
			delta: math.MaxInt32,
			setupMock: func(m *inventory.MockRepository) {
				m.EXPECT().Adjust(gomock.Any(), int64(3), math.MaxInt32).Return(0, inventory.ErrQuantityOverflow)
			},
			wantErr: apperr.IsValidation,
		},
		{
			name:      "DeltaOutOfRange",
			delta:     math.MaxInt32 + 1,
			setupMock: func(m *inventory.MockRepository) {},
			wantErr:   apperr.IsValidation,
		},
		{
			name:  "UnknownPart",
			delta: 1,
			setupMock: func(m *inventory.MockRepository) {
				m.EXPECT().Adjust(gomock.Any(), int64(3), 1).Return(0, apperr.ErrNotFound)
			},
			wantErr: func(err error) bool { return err == apperr.ErrNotFound },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := inventory.NewMockRepository(ctrl)
			tt.setupMock(repo)

			inv := &countingInvalidator{}

			qty, err := inventory.NewService(repo, inventory.WithInvalidator(inv)).Adjust(context.Background(), 3, tt.delta)
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
				assert.Zero(t, inv.calls, "failed adjustment must not invalidate reports")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 1, inv.calls)
			assert.Equal(t, tt.wantQty, qty)
		})
	}
}

func TestService_GetQuantity(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := inventory.NewMockRepository(ctrl)

	repo.EXPECT().Get(gomock.Any(), int64(1)).Return(&inventory.Record{PartID: 1, Quantity: 20}, nil)

	qty, err := inventory.NewService(repo).GetQuantity(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 20, qty)
}

func TestService_ListBelowThreshold(t *testing.T) {
	t.Run("NegativeThreshold", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := inventory.NewMockRepository(ctrl)

		_, err := inventory.NewService(repo).ListBelowThreshold(context.Background(), -1)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("Delegates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := inventory.NewMockRepository(ctrl)

		repo.EXPECT().ListBelow(gomock.Any(), 5).Return([]int64{3}, nil)

		ids, err := inventory.NewService(repo).ListBelowThreshold(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, []int64{3}, ids)
	})
}
