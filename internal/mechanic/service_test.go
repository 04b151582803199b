package mechanic_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/mechanic"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    mechanic.Params
		setupMock func(m *mechanic.MockRepository)
		wantErr   func(error) bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: mechanic.Params{
				Name:       "Carlos Pereira",
				HireDate:   time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC),
				HourlyRate: decimal.RequireFromString("45.00"),
			},
			setupMock: func(m *mechanic.MockRepository) {
				m.EXPECT().
					CreateMechanic(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mc *mechanic.Mechanic) error {
						mc.ID = 1
						return nil
					})
			},
		},
		{
			name:    "NegativeRate",
			params:  mechanic.Params{Name: "Pedro", HourlyRate: decimal.NewFromInt(-1)},
			wantErr: apperr.IsValidation,
		},
		{
			name:    "RateThirdDecimal",
			params:  mechanic.Params{Name: "Pedro", HourlyRate: decimal.RequireFromString("45.555")},
			wantErr: apperr.IsValidation,
		},
		{
			name:    "RateAboveColumn",
			params:  mechanic.Params{Name: "Pedro", HourlyRate: decimal.NewFromInt(100000000)},
			wantErr: apperr.IsValidation,
		},
		{
			name:    "MissingName",
			params:  mechanic.Params{Name: "   ", HourlyRate: decimal.NewFromInt(10)},
			wantErr: apperr.IsValidation,
		},
		{
			name:   "RepoError",
			params: mechanic.Params{Name: "Ana", HourlyRate: decimal.Zero},
			setupMock: func(m *mechanic.MockRepository) {
				m.EXPECT().CreateMechanic(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: func(err error) bool { return err != nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mechanic.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := mechanic.NewService(repo).Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(1), got.ID)
			assert.True(t, got.HourlyRate.Equal(tt.params.HourlyRate))
		})
	}
}

func TestService_Create_DefaultsHireDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mechanic.NewMockRepository(ctrl)

	repo.EXPECT().CreateMechanic(gomock.Any(), gomock.Any()).Return(nil)

	got, err := mechanic.NewService(repo).Create(context.Background(), mechanic.Params{Name: "Ana"})
	require.NoError(t, err)
	assert.False(t, got.HireDate.IsZero())
}

func TestService_Update_KeepsHireDateWhenOmitted(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mechanic.NewMockRepository(ctrl)

	hired := time.Date(2020, 7, 15, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().GetMechanic(gomock.Any(), int64(2)).Return(&mechanic.Mechanic{ID: 2, Name: "Pedro", HireDate: hired}, nil)
	repo.EXPECT().UpdateMechanic(gomock.Any(), gomock.Any()).Return(nil)

	got, err := mechanic.NewService(repo).Update(context.Background(), 2, mechanic.Params{
		Name:       "Pedro Santos",
		HourlyRate: decimal.RequireFromString("52.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, hired, got.HireDate)
	assert.Equal(t, "52.5", got.HourlyRate.String())
}
