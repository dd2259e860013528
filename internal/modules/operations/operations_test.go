package operations

import (
	"testing"

	"github.com/ftzlab/ftzsim/internal/modules/goods"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction_FlagValidation(t *testing.T) {
	ore := &goods.Good{Name: "ore", Price: 20, VATStatus: goods.VATTaxed}

	tests := []struct {
		name            string
		temporaryExport int
		domesticateVAT  int
		wantErr         bool
	}{
		{"both zero", 0, 0, false},
		{"both one", 1, 1, false},
		{"temporary export out of range", 2, 0, true},
		{"domesticate vat negative", 0, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := NewTransaction("nct", "zf", ore, 5, tt.temporaryExport, tt.domesticateVAT, "")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidBooleanFlag)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.temporaryExport == 1, tx.IsTemporaryExport)
			assert.Equal(t, tt.domesticateVAT == 1, tx.DomesticateVAT)
		})
	}
}

func TestNewTransaction_VATStatusDefaultsToGood(t *testing.T) {
	ore := &goods.Good{Name: "ore", VATStatus: goods.VATExempt}

	tx, err := NewTransaction("nct", "zf", ore, 1, 0, 0, "")
	require.NoError(t, err)
	assert.Equal(t, goods.VATExempt, tx.VATStatus)

	tx, err = NewTransaction("nct", "zf", ore, 1, 0, 0, goods.VATTaxed)
	require.NoError(t, err)
	assert.Equal(t, goods.VATTaxed, tx.VATStatus)
}

func TestNewProduction_InputsMustBeDeclared(t *testing.T) {
	ore := &goods.Good{Name: "ore"}
	widget := &goods.Good{Name: "widget", Inputs: map[string]float64{"ore": 2}}
	stray := &goods.Good{Name: "stray"}

	_, err := NewProduction("zf", widget, 1, []*goods.Good{ore}, ModeProduction)
	assert.NoError(t, err)

	_, err = NewProduction("zf", widget, 1, []*goods.Good{stray}, ModeProduction)
	assert.Error(t, err)
}

func TestNewProduction_RejectsUnknownMode(t *testing.T) {
	widget := &goods.Good{Name: "widget"}
	_, err := NewProduction("zf", widget, 1, nil, "assembly")
	assert.Error(t, err)
}
