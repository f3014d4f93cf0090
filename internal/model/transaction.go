package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType identifies which closing flow an estimate follows.
type TransactionType string

const (
	TransactionPurchase  TransactionType = "purchase"
	TransactionSale      TransactionType = "sale"
	TransactionRefinance TransactionType = "refinance"
)

// TransactionTypes lists the supported transaction types in display order.
var TransactionTypes = []TransactionType{TransactionPurchase, TransactionSale, TransactionRefinance}

// ParseTransactionType parses a case-insensitive transaction type name.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return t, nil
}

// Valid reports whether t is one of the supported transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionPurchase, TransactionSale, TransactionRefinance:
		return true
	}
	return false
}

// Label returns the human-readable name used on reports.
func (t TransactionType) Label() string {
	switch t {
	case TransactionPurchase:
		return "Purchase"
	case TransactionSale:
		return "Sale"
	case TransactionRefinance:
		return "Refinance"
	}
	return string(t)
}

// PropertyType is informational only and does not change any amount.
type PropertyType string

const (
	PropertyResale PropertyType = "resale"
	PropertyNew    PropertyType = "new"
	PropertyCondo  PropertyType = "condo"
)

// Valid reports whether p is a known property type.
func (p PropertyType) Valid() bool {
	switch p {
	case PropertyResale, PropertyNew, PropertyCondo:
		return true
	}
	return false
}

// Label returns the human-readable property type.
func (p PropertyType) Label() string {
	switch p {
	case PropertyResale:
		return "Resale"
	case PropertyNew:
		return "New build"
	case PropertyCondo:
		return "Condo"
	}
	return string(p)
}

// TransactionInput holds everything the estimator needs for one calculation.
// Amounts are in Canadian dollars; CommissionPercent is a percentage (5 = 5%).
// NewMortgage is only read by the refinance flow, zero meaning "not given".
type TransactionInput struct {
	Type              TransactionType `json:"transactionType"`
	Price             decimal.Decimal `json:"price"`
	Deposit           decimal.Decimal `json:"deposit"`
	MortgageBalance   decimal.Decimal `json:"mortgage"`
	NewMortgage       decimal.Decimal `json:"newMortgage"`
	CommissionPercent decimal.Decimal `json:"commissionPct"`
	IsToronto         bool            `json:"isToronto"`
	IsFirstTimeBuyer  bool            `json:"isFirstTimeBuyer"`
	PropertyType      PropertyType    `json:"propertyType,omitempty"`
}
