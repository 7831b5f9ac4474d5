package mapping

import (
	"database/sql"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
	"github.com/twinxhq/twinx-pos/internal/models"
)

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// ToModelSale converts a domain Sale to a model Sale
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:          d.SaleID,
		InvoiceNo:       d.InvoiceNo,
		InvoiceDate:     d.InvoiceDate,
		Status:          string(d.Status),
		CustomerID:      nullString(d.CustomerID),
		CustomerName:    d.CustomerName,
		CashierID:       d.CashierID,
		CashierName:     d.CashierName,
		Subtotal:        d.Subtotal,
		DiscountAmount:  d.DiscountAmount,
		DiscountPercent: d.DiscountPercent,
		TaxAmount:       d.TaxAmount,
		GrandTotal:      d.GrandTotal,
		AmountPaid:      d.AmountPaid,
		ChangeAmount:    d.ChangeAmount,
		RefundedAmount:  d.RefundedAmount,
		PaymentMethod:   string(d.PaymentMethod),
		PaymentStatus:   string(d.PaymentStatus),
		Currency:        d.Currency,
		TerminalID:      d.TerminalID,
		ShiftID:         nullString(d.ShiftID),
		OriginalSaleID:  nullString(d.OriginalSaleID),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSale converts a model Sale to a domain Sale
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:          m.SaleID,
		InvoiceNo:       m.InvoiceNo,
		InvoiceDate:     m.InvoiceDate,
		Status:          domain.SaleStatus(m.Status),
		CustomerID:      stringPtr(m.CustomerID),
		CustomerName:    m.CustomerName,
		CashierID:       m.CashierID,
		CashierName:     m.CashierName,
		Subtotal:        m.Subtotal,
		DiscountAmount:  m.DiscountAmount,
		DiscountPercent: m.DiscountPercent,
		TaxAmount:       m.TaxAmount,
		GrandTotal:      m.GrandTotal,
		AmountPaid:      m.AmountPaid,
		ChangeAmount:    m.ChangeAmount,
		RefundedAmount:  m.RefundedAmount,
		PaymentMethod:   domain.PaymentMethod(m.PaymentMethod),
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
		Currency:        m.Currency,
		TerminalID:      m.TerminalID,
		ShiftID:         stringPtr(m.ShiftID),
		OriginalSaleID:  stringPtr(m.OriginalSaleID),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSaleItem converts a domain SaleItem to a model SaleItem
func ToModelSaleItem(d domain.SaleItem) models.SaleItem {
	return models.SaleItem{
		SaleItemID:       d.SaleItemID,
		SaleID:           d.SaleID,
		ProductID:        d.ProductID,
		VariationID:      nullString(d.VariationID),
		ProductName:      d.ProductName,
		ProductSKU:       d.ProductSKU,
		ProductBarcode:   d.ProductBarcode,
		VariationName:    d.VariationName,
		Quantity:         d.Quantity,
		UnitPrice:        d.UnitPrice,
		UnitCost:         d.UnitCost,
		Subtotal:         d.Subtotal,
		DiscountAmount:   d.DiscountAmount,
		DiscountPercent:  d.DiscountPercent,
		TaxAmount:        d.TaxAmount,
		TaxPercent:       d.TaxPercent,
		Total:            d.Total,
		ReturnedQuantity: d.ReturnedQuantity,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainSaleItem converts a model SaleItem to a domain SaleItem
func ToDomainSaleItem(m models.SaleItem) domain.SaleItem {
	return domain.SaleItem{
		SaleItemID:       m.SaleItemID,
		SaleID:           m.SaleID,
		ProductID:        m.ProductID,
		VariationID:      stringPtr(m.VariationID),
		ProductName:      m.ProductName,
		ProductSKU:       m.ProductSKU,
		ProductBarcode:   m.ProductBarcode,
		VariationName:    m.VariationName,
		Quantity:         m.Quantity,
		UnitPrice:        m.UnitPrice,
		UnitCost:         m.UnitCost,
		Subtotal:         m.Subtotal,
		DiscountAmount:   m.DiscountAmount,
		DiscountPercent:  m.DiscountPercent,
		TaxAmount:        m.TaxAmount,
		TaxPercent:       m.TaxPercent,
		Total:            m.Total,
		ReturnedQuantity: m.ReturnedQuantity,
		CreatedAt:        m.CreatedAt,
	}
}

// ToModelLedgerEntry converts a domain LedgerEntry to its model
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:         d.EntryID,
		EntryNumber:     d.EntryNumber,
		EntryDate:       d.EntryDate,
		Description:     d.Description,
		AccountCode:     d.AccountCode,
		DebitAmount:     d.DebitAmount,
		CreditAmount:    d.CreditAmount,
		TransactionID:   d.TransactionID,
		TransactionType: string(d.TransactionType),
		PostedBy:        d.PostedBy,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to its domain type
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:         m.EntryID,
		EntryNumber:     m.EntryNumber,
		EntryDate:       m.EntryDate,
		Description:     m.Description,
		AccountCode:     m.AccountCode,
		DebitAmount:     m.DebitAmount,
		CreditAmount:    m.CreditAmount,
		TransactionID:   m.TransactionID,
		TransactionType: domain.LedgerTransactionType(m.TransactionType),
		PostedBy:        m.PostedBy,
		CreatedAt:       m.CreatedAt,
	}
}
