// Package operations defines the value objects describing one trade or
// manufacturing event between or within agents. They are immutable once
// constructed and carry no behaviour beyond validation.
package operations

import (
	"errors"
	"fmt"

	"github.com/ftzlab/ftzsim/internal/modules/goods"
)

// ErrInvalidBooleanFlag is returned when a 0/1 flag argument is outside {0,1}.
var ErrInvalidBooleanFlag = errors.New("invalid boolean flag")

// ProductionMode distinguishes making a new good from transforming one.
type ProductionMode string

const (
	ModeProduction     ProductionMode = "production"
	ModeTransformation ProductionMode = "transformation"
)

// Transaction describes one trade of a good between a seller and a buyer.
type Transaction struct {
	Seller            string
	Buyer             string
	Good              *goods.Good
	Amount            float64
	IsTemporaryExport bool
	DomesticateVAT    bool
	VATStatus         goods.VATStatus
}

// NewTransaction validates the integer flags and builds a transaction.
// Flags follow the decision encoding: they must be exactly 0 or 1.
// An empty vatStatus defaults to the good's own status.
func NewTransaction(seller, buyer string, good *goods.Good, amount float64, temporaryExport, domesticateVAT int, vatStatus goods.VATStatus) (*Transaction, error) {
	te, err := flagToBool("temporary_export", temporaryExport)
	if err != nil {
		return nil, err
	}
	dv, err := flagToBool("domesticate_vat", domesticateVAT)
	if err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, fmt.Errorf("transaction amount must be non-negative: got %v", amount)
	}
	if vatStatus == "" {
		vatStatus = good.VATStatus
	}

	return &Transaction{
		Seller:            seller,
		Buyer:             buyer,
		Good:              good,
		Amount:            amount,
		IsTemporaryExport: te,
		DomesticateVAT:    dv,
		VATStatus:         vatStatus,
	}, nil
}

// Production describes one manufacturing event inside a single agent.
type Production struct {
	Producer string
	Good     *goods.Good
	Amount   float64
	Inputs   []*goods.Good
	Mode     ProductionMode
}

// NewProduction validates and builds a production event.
func NewProduction(producer string, good *goods.Good, amount float64, inputs []*goods.Good, mode ProductionMode) (*Production, error) {
	if amount < 0 {
		return nil, fmt.Errorf("production amount must be non-negative: got %v", amount)
	}
	if mode != ModeProduction && mode != ModeTransformation {
		return nil, fmt.Errorf("unknown production mode %q", mode)
	}
	for _, in := range inputs {
		if _, declared := good.Inputs[in.Name]; !declared {
			return nil, fmt.Errorf("%q is not a declared input of %q", in.Name, good.Name)
		}
	}

	return &Production{
		Producer: producer,
		Good:     good,
		Amount:   amount,
		Inputs:   inputs,
		Mode:     mode,
	}, nil
}

func flagToBool(name string, v int) (bool, error) {
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s must be 0 or 1, got %d", ErrInvalidBooleanFlag, name, v)
	}
}
