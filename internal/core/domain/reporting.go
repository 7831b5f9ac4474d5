package domain

import (
	"github.com/shopspring/decimal"
)

// DailySalesSummary aggregates one day of completed sales.
type DailySalesSummary struct {
	TotalTransactions int64           `json:"totalTransactions"`
	TotalSales        decimal.Decimal `json:"totalSales"`
	TotalTax          decimal.Decimal `json:"totalTax"`
	TotalDiscount     decimal.Decimal `json:"totalDiscount"`
	AverageSale       decimal.Decimal `json:"averageSale"`
	MinSale           decimal.Decimal `json:"minSale"`
	MaxSale           decimal.Decimal `json:"maxSale"`
	CashSales         decimal.Decimal `json:"cashSales"`
	CardSales         decimal.Decimal `json:"cardSales"`
	CreditSales       decimal.Decimal `json:"creditSales"`
	UniqueCustomers   int64           `json:"uniqueCustomers"`
	WalkInCustomers   int64           `json:"walkInCustomers"`
}

// TopProductRow is one line of the daily top-sellers report.
type TopProductRow struct {
	ProductID    string          `json:"productID"`
	ProductName  string          `json:"productName"`
	QuantitySold decimal.Decimal `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// HourlySalesRow buckets a day's sales by hour of day.
type HourlySalesRow struct {
	Hour         int             `json:"hour"`
	Transactions int64           `json:"transactions"`
	SalesAmount  decimal.Decimal `json:"salesAmount"`
}

// TrialBalanceRow is one chart-of-accounts line summed over the ledger.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
