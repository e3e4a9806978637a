package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-system/internal/application/dto"
	"github.com/jhoicas/inventory-system/internal/domain"
)

func TestProductRequest_AliasHeredados(t *testing.T) {
	var req dto.ProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"sku":"A","name":"x","stock_quantity":12,"min_stock_level":3}`), &req))
	req.Normalize()

	require.NotNil(t, req.CurrentStock)
	require.NotNil(t, req.MinStock)
	assert.Equal(t, 12, *req.CurrentStock)
	assert.Equal(t, 3, *req.MinStock)
	assert.Nil(t, req.StockQuantity)
}

func TestProductRequest_CanonicoGana(t *testing.T) {
	var req dto.ProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"current_stock":5,"stock_quantity":99}`), &req))
	req.Normalize()
	assert.Equal(t, 5, *req.CurrentStock)
}

func TestRegisterMovementRequest_IntQuantity(t *testing.T) {
	cases := map[string]struct {
		raw  string
		want int
		ok   bool
	}{
		"entero":         {`{"quantity":5}`, 5, true},
		"entero con .0":  {`{"quantity":5.0}`, 5, true},
		"fraccionario":   {`{"quantity":2.5}`, 0, false},
		"negativo":       {`{"quantity":-3}`, -3, true},
		"fuera de rango": {`{"quantity":1e12}`, 0, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var req dto.RegisterMovementRequest
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &req))
			got, ok := req.IntQuantity()
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	from, err := dto.ParseDate("2026-03-01", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *from)

	to, err := dto.ParseDate("2026-03-01", true)
	require.NoError(t, err)
	assert.Equal(t, 23, to.Hour())

	none, err := dto.ParseDate("", true)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = dto.ParseDate("01/03/2026", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
