package pricelist_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/garage/internal/importer/pricelist"
)

func TestParser_Default(t *testing.T) {
	csv := `Tabela de preços - Distribuidora AutoPeças
Válida a partir de;01-06-2024

SKU;Name;Description;Cost;Sale
FLT-OLEO-001;Filtro de óleo;Filtro de óleo motor 1.0;16,00;27,00
FLT-AR-010;Filtro de ar;;12,00;22,00

`

	entries, err := pricelist.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "FLT-OLEO-001", entries[0].SKU)
	assert.Equal(t, "Filtro de óleo", entries[0].Name)
	assert.Equal(t, "Filtro de óleo motor 1.0", entries[0].Description)
	assert.Equal(t, "16", entries[0].CostPrice.String())
	assert.Equal(t, "27", entries[0].SalePrice.String())

	assert.Equal(t, "FLT-AR-010", entries[1].SKU)
	assert.Empty(t, entries[1].Description)
}

func TestParser_DistribuidorLatin1(t *testing.T) {
	csv := "Código;Produto;Preço venda;Custo\nPST-FREIO-002;Pastilha de freio;1.120,00;600,50\n"

	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(csv))
	require.NoError(t, err)

	entries, err := pricelist.NewParser().Parse(bytes.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "PST-FREIO-002", entries[0].SKU)
	assert.Equal(t, "1120", entries[0].SalePrice.String())
	assert.Equal(t, "600.5", entries[0].CostPrice.String())
}

func TestParser_Errors(t *testing.T) {
	type testCase struct {
		name    string
		csv     string
		wantErr string
	}

	tests := []testCase{
		{
			name:    "NoHeader",
			csv:     "a;b;c\n1;2;3\n",
			wantErr: "no price list header",
		},
		{
			name:    "MissingName",
			csv:     "sku;name;cost;sale\nX-1;;1,00;2,00\n",
			wantErr: "line 2: missing name",
		},
		{
			name:    "BadCost",
			csv:     "sku;name;cost;sale\nX-1;Thing;one;2,00\n",
			wantErr: "line 2: invalid cost",
		},
		{
			name:    "MissingSKU",
			csv:     "sku;name;cost;sale\nX-1;Thing;1;2\n;Other;1;2\n",
			wantErr: "line 3: missing sku",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pricelist.NewParser().Parse(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
