package services

import (
	"testing"

	"burger-shop/models"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLineTotal(t *testing.T) {
	log, _ := test.NewNullLogger()
	engine := NewPricingEngine(log)
	classic := models.Product{ID: 1, Price: 5500}

	tests := []struct {
		name     string
		options  []string
		quantity int
		want     int
	}{
		{"double patty and cheddar", []string{"double patty", "cheddar"}, 2, 20000},
		{"no options", nil, 3, 16500},
		{"unknown code adds nothing", []string{"pickles"}, 1, 5500},
		{"duplicates counted once", []string{"cheddar", "cheddar", "Cheddar "}, 1, 6500},
		{"order independent", []string{"cheddar", "double patty"}, 2, 20000},
		{"codes are normalized", []string{"Double_Patty", "swiss-cheese"}, 1, 10200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := models.CartLine{Quantity: tt.quantity, Options: tt.options}
			if tt.options == nil {
				line.RawOptions = "[]"
			}
			assert.Equal(t, tt.want, engine.ComputeLineTotal(classic, line))
		})
	}
}

func TestComputeLineTotal_StoredOptions(t *testing.T) {
	log, _ := test.NewNullLogger()
	engine := NewPricingEngine(log)

	line := models.CartLine{Quantity: 2, RawOptions: `["double patty","cheddar"]`}
	assert.Equal(t, 20000, engine.ComputeLineTotal(models.Product{Price: 5500}, line))
}

func TestResolveOptions_MalformedBlobDegrades(t *testing.T) {
	log, hook := test.NewNullLogger()
	engine := NewPricingEngine(log)

	line := models.CartLine{ID: 7, UserID: 3, ProductID: 1, Quantity: 2, RawOptions: `{double patty`}

	options, warning := engine.ResolveOptions(line)
	assert.Empty(t, options)
	assert.Contains(t, warning, "cart line 7")
	assert.Equal(t, 11000, engine.ComputeLineTotal(models.Product{Price: 5500}, line))

	require.NotEmpty(t, hook.AllEntries())
	entry := hook.AllEntries()[0]
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "option_parse_degraded", entry.Data["event"])
	assert.Equal(t, 7, entry.Data["cart_line_id"])
}

func TestDecodeOptions(t *testing.T) {
	for _, raw := range []string{"", "null", " [] "} {
		got, err := DecodeOptions(raw)
		require.NoError(t, err, raw)
		assert.Empty(t, got)
	}

	got, err := DecodeOptions(`["Cheddar","cheddar","double_patty"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"cheddar", "double patty"}, got)

	_, err = DecodeOptions(`"cheddar"`)
	assert.ErrorIs(t, err, models.ErrOptionParse)
}

func TestEncodeOptions(t *testing.T) {
	raw, err := EncodeOptions([]string{" Swiss Cheese", "swiss_cheese", ""})
	require.NoError(t, err)
	assert.Equal(t, `["swiss cheese"]`, raw)

	raw, err = EncodeOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw)
}
