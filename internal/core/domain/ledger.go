package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrLedgerUnbalanced     = errors.New("ledger entries do not balance: debits != credits")
	ErrLedgerNegativeAmount = errors.New("ledger entry amounts must not be negative")
	ErrLedgerBothSides      = errors.New("ledger entry must not carry both a debit and a credit")
)

// LedgerTransactionType names the business event a ledger entry belongs to.
type LedgerTransactionType string

const (
	LedgerSale   LedgerTransactionType = "sale"
	LedgerRefund LedgerTransactionType = "refund"
)

// LedgerEntry is one side of a double-entry posting. Entries sharing an
// EntryNumber form a balanced pair; for any TransactionID the sum of debit
// amounts must equal the sum of credit amounts.
type LedgerEntry struct {
	EntryID         string                `json:"entryID"`     // Primary Key (UUID)
	EntryNumber     string                `json:"entryNumber"` // Shared, derived from invoice number
	EntryDate       time.Time             `json:"entryDate"`
	Description     string                `json:"description"`
	AccountCode     string                `json:"accountCode"` // Chart-of-accounts code
	DebitAmount     decimal.Decimal       `json:"debitAmount"`
	CreditAmount    decimal.Decimal       `json:"creditAmount"`
	TransactionID   string                `json:"transactionID"` // Sale ID
	TransactionType LedgerTransactionType `json:"transactionType"`
	PostedBy        string                `json:"postedBy"` // Employee ID
	CreatedAt       time.Time             `json:"createdAt"`
}

// ValidateLedgerBalance checks that a set of entries balances: total debits
// must equal total credits and every row must carry exactly one positive side.
func ValidateLedgerBalance(entries []LedgerEntry) error {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, e := range entries {
		if e.DebitAmount.IsNegative() || e.CreditAmount.IsNegative() {
			return ErrLedgerNegativeAmount
		}
		if e.DebitAmount.IsPositive() && e.CreditAmount.IsPositive() {
			return ErrLedgerBothSides
		}
		debits = debits.Add(e.DebitAmount)
		credits = credits.Add(e.CreditAmount)
	}
	if !debits.Equal(credits) {
		return ErrLedgerUnbalanced
	}
	return nil
}
