package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

func TestValidateLedgerBalance_BalancedPair(t *testing.T) {
	entries := []domain.LedgerEntry{
		{AccountCode: "1010", DebitAmount: decimal.NewFromInt(100)},
		{AccountCode: "4010", CreditAmount: decimal.NewFromInt(100)},
	}
	assert.NoError(t, domain.ValidateLedgerBalance(entries))
}

func TestValidateLedgerBalance_MultiplePairs(t *testing.T) {
	entries := []domain.LedgerEntry{
		{AccountCode: "1010", DebitAmount: decimal.RequireFromString("45.98")},
		{AccountCode: "4010", CreditAmount: decimal.RequireFromString("45.98")},
		{AccountCode: "5010", DebitAmount: decimal.RequireFromString("20.50")},
		{AccountCode: "1210", CreditAmount: decimal.RequireFromString("20.50")},
	}
	assert.NoError(t, domain.ValidateLedgerBalance(entries))
}

func TestValidateLedgerBalance_Unbalanced(t *testing.T) {
	entries := []domain.LedgerEntry{
		{AccountCode: "1010", DebitAmount: decimal.NewFromInt(100)},
		{AccountCode: "4010", CreditAmount: decimal.NewFromInt(99)},
	}
	assert.ErrorIs(t, domain.ValidateLedgerBalance(entries), domain.ErrLedgerUnbalanced)
}

func TestValidateLedgerBalance_RejectsNegativeAmounts(t *testing.T) {
	entries := []domain.LedgerEntry{
		{AccountCode: "1010", DebitAmount: decimal.NewFromInt(-5)},
		{AccountCode: "4010", CreditAmount: decimal.NewFromInt(-5)},
	}
	assert.ErrorIs(t, domain.ValidateLedgerBalance(entries), domain.ErrLedgerNegativeAmount)
}

func TestValidateLedgerBalance_RejectsBothSides(t *testing.T) {
	entries := []domain.LedgerEntry{
		{AccountCode: "1010", DebitAmount: decimal.NewFromInt(5), CreditAmount: decimal.NewFromInt(5)},
	}
	assert.ErrorIs(t, domain.ValidateLedgerBalance(entries), domain.ErrLedgerBothSides)
}

func TestValidateLedgerBalance_EmptySetBalances(t *testing.T) {
	assert.NoError(t, domain.ValidateLedgerBalance(nil))
}
