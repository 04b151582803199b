package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/client"
)

func TestValidateTaxIDs(t *testing.T) {
	type testCase struct {
		name       string
		kind       client.Kind
		personal   *string
		business   *string
		wantFields []string
	}

	tests := []testCase{
		{name: "IndividualOK", kind: client.KindIndividual, personal: new("123.456.789-00")},
		{name: "BusinessOK", kind: client.KindBusiness, business: new("12.345.678/0001-90")},
		{name: "IndividualMissing", kind: client.KindIndividual, wantFields: []string{"personal_tax_id"}},
		{
			name:       "IndividualWithBoth",
			kind:       client.KindIndividual,
			personal:   new("1"),
			business:   new("2"),
			wantFields: []string{"business_tax_id"},
		},
		{
			name:       "BusinessWithPersonalOnly",
			kind:       client.KindBusiness,
			personal:   new("1"),
			wantFields: []string{"business_tax_id", "personal_tax_id"},
		},
		{name: "UnknownKind", kind: "alien", personal: new("1"), wantFields: []string{"kind"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.ValidateTaxIDs(tt.kind, tt.personal, tt.business)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Len(t, verr.Violations, len(tt.wantFields))

			for _, f := range tt.wantFields {
				assert.Contains(t, verr.Violations, f)
			}
		})
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    client.Params
		setupMock func(m *client.MockRepository)
		check     func(t *testing.T, got *client.Client, err error)
	}

	tests := []testCase{
		{
			name: "Success",
			params: client.Params{
				Kind:          client.KindIndividual,
				Name:          "  João Silva ",
				Email:         new("Joao@Email.com"),
				PersonalTaxID: new("123.456.789-00"),
				BusinessTaxID: new("   "),
			},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().EmailTaken(gomock.Any(), "joao@email.com", int64(0)).Return(false, nil)
				m.EXPECT().
					CreateClient(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *client.Client) error {
						c.ID = 1
						return nil
					})
			},
			check: func(t *testing.T, got *client.Client, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(1), got.ID)
				assert.Equal(t, "João Silva", got.Name)
				assert.Equal(t, "joao@email.com", *got.Email)
				assert.Nil(t, got.BusinessTaxID)
			},
		},
		{
			name: "BothTaxIDs",
			params: client.Params{
				Kind:          client.KindBusiness,
				Name:          "ACME",
				PersonalTaxID: new("1"),
				BusinessTaxID: new("2"),
			},
			check: func(t *testing.T, got *client.Client, err error) {
				assert.True(t, apperr.IsValidation(err))
				assert.Nil(t, got)
			},
		},
		{
			name:   "BadEmail",
			params: client.Params{Kind: client.KindBusiness, Name: "ACME", Email: new("not-an-email"), BusinessTaxID: new("2")},
			check: func(t *testing.T, got *client.Client, err error) {
				var verr *apperr.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Violations, "email")
			},
		},
		{
			name:   "DuplicateEmail",
			params: client.Params{Kind: client.KindBusiness, Name: "ACME", Email: new("a@b.com"), BusinessTaxID: new("2")},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().EmailTaken(gomock.Any(), "a@b.com", int64(0)).Return(true, nil)
			},
			check: func(t *testing.T, got *client.Client, err error) {
				var cerr *apperr.ConflictError
				require.ErrorAs(t, err, &cerr)
				assert.Equal(t, "email", cerr.Field)
			},
		},
		{
			name:   "NoEmailSkipsUniquenessCheck",
			params: client.Params{Kind: client.KindBusiness, Name: "ACME", BusinessTaxID: new("2")},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().CreateClient(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, got *client.Client, err error) {
				require.NoError(t, err)
				assert.Nil(t, got.Email)
			},
		},
		{
			name:   "RepoError",
			params: client.Params{Kind: client.KindBusiness, Name: "ACME", BusinessTaxID: new("2")},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().CreateClient(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			check: func(t *testing.T, got *client.Client, err error) {
				assert.Error(t, err)
				assert.Nil(t, got)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := client.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := client.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)
			tt.check(t, got, err)
		})
	}
}

func TestService_Update_EmailTakenByOther(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	svc := client.NewService(repo)

	repo.EXPECT().GetClient(gomock.Any(), int64(3)).Return(&client.Client{ID: 3, Kind: client.KindIndividual}, nil)
	repo.EXPECT().EmailTaken(gomock.Any(), "x@y.com", int64(3)).Return(true, nil)

	_, err := svc.Update(context.Background(), 3, client.Params{
		Kind:          client.KindIndividual,
		Name:          "Maria",
		Email:         new("x@y.com"),
		PersonalTaxID: new("987"),
	})
	assert.True(t, apperr.IsConflict(err))
}

func TestService_AddVehicle(t *testing.T) {
	valid := client.VehicleParams{Plate: " abc1d23 ", Brand: "Fiat", Model: "Uno", Year: 2015}

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := client.NewMockRepository(ctrl)

		repo.EXPECT().GetClient(gomock.Any(), int64(1)).Return(&client.Client{ID: 1}, nil)
		repo.EXPECT().
			CreateVehicle(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, v *client.Vehicle) error {
				v.ID = 7
				return nil
			})

		v, err := client.NewService(repo).AddVehicle(context.Background(), 1, valid)
		require.NoError(t, err)
		assert.Equal(t, int64(7), v.ID)
		assert.Equal(t, int64(1), v.ClientID)
		assert.Equal(t, "ABC1D23", v.Plate)
	})

	t.Run("UnknownClient", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := client.NewMockRepository(ctrl)

		repo.EXPECT().GetClient(gomock.Any(), int64(42)).Return(nil, apperr.ErrNotFound)

		_, err := client.NewService(repo).AddVehicle(context.Background(), 42, valid)

		var rerr *apperr.ReferenceError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "client_id", rerr.Field)
		assert.Equal(t, int64(42), rerr.ID)
	})

	t.Run("YearTooOld", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := client.NewMockRepository(ctrl)

		bad := valid
		bad.Year = 1700

		_, err := client.NewService(repo).AddVehicle(context.Background(), 1, bad)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("YearInFuture", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := client.NewMockRepository(ctrl)

		bad := valid
		bad.Year = 3000

		_, err := client.NewService(repo).AddVehicle(context.Background(), 1, bad)
		assert.True(t, apperr.IsValidation(err))
	})
}
