package mapping

import (
	"database/sql"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
	"github.com/twinxhq/twinx-pos/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:         d.ProductID,
		Name:              d.Name,
		SKU:               d.SKU,
		Barcode:           d.Barcode,
		Description:       d.Description,
		Price:             d.Price,
		CostPrice:         d.CostPrice,
		StockQuantity:     d.StockQuantity,
		StockStatus:       string(d.StockStatus),
		LowStockThreshold: d.LowStockThreshold,
		ManageStock:       d.ManageStock,
		AllowBackorders:   d.AllowBackorders,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:         m.ProductID,
		Name:              m.Name,
		SKU:               m.SKU,
		Barcode:           m.Barcode,
		Description:       m.Description,
		Price:             m.Price,
		CostPrice:         m.CostPrice,
		StockQuantity:     m.StockQuantity,
		StockStatus:       domain.StockStatus(m.StockStatus),
		LowStockThreshold: m.LowStockThreshold,
		ManageStock:       m.ManageStock,
		AllowBackorders:   m.AllowBackorders,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelVariation converts a domain ProductVariation to its model
func ToModelVariation(d domain.ProductVariation) models.ProductVariation {
	return models.ProductVariation{
		VariationID:     d.VariationID,
		ProductID:       d.ProductID,
		Name:            d.Name,
		SKU:             d.SKU,
		Barcode:         d.Barcode,
		Price:           d.Price,
		CostPrice:       d.CostPrice,
		StockQuantity:   d.StockQuantity,
		AllowBackorders: d.AllowBackorders,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVariation converts a model ProductVariation to its domain type
func ToDomainVariation(m models.ProductVariation) domain.ProductVariation {
	return domain.ProductVariation{
		VariationID:     m.VariationID,
		ProductID:       m.ProductID,
		Name:            m.Name,
		SKU:             m.SKU,
		Barcode:         m.Barcode,
		Price:           m.Price,
		CostPrice:       m.CostPrice,
		StockQuantity:   m.StockQuantity,
		AllowBackorders: m.AllowBackorders,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelMovement converts a domain StockMovement to its model
func ToModelMovement(d domain.StockMovement) models.StockMovement {
	m := models.StockMovement{
		MovementID:    d.MovementID,
		ProductID:     d.ProductID,
		VariationID:   d.VariationID,
		ProductName:   d.ProductName,
		ProductSKU:    d.ProductSKU,
		MovementType:  string(d.MovementType),
		Quantity:      d.Quantity,
		BalanceBefore: d.BalanceBefore,
		BalanceAfter:  d.BalanceAfter,
		Reason:        d.Reason,
		Notes:         d.Notes,
		RecordedBy:    d.RecordedBy,
		MovementAt:    d.MovementAt,
	}
	if d.ReferenceType != "" {
		m.ReferenceType = sql.NullString{String: string(d.ReferenceType), Valid: true}
	}
	if d.ReferenceID != "" {
		m.ReferenceID = sql.NullString{String: d.ReferenceID, Valid: true}
	}
	return m
}

// ToDomainMovement converts a model StockMovement to its domain type
func ToDomainMovement(m models.StockMovement) domain.StockMovement {
	d := domain.StockMovement{
		MovementID:    m.MovementID,
		ProductID:     m.ProductID,
		VariationID:   m.VariationID,
		ProductName:   m.ProductName,
		ProductSKU:    m.ProductSKU,
		MovementType:  domain.MovementType(m.MovementType),
		Quantity:      m.Quantity,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Reason:        m.Reason,
		Notes:         m.Notes,
		RecordedBy:    m.RecordedBy,
		MovementAt:    m.MovementAt,
	}
	if m.ReferenceType.Valid {
		d.ReferenceType = domain.ReferenceType(m.ReferenceType.String)
	}
	if m.ReferenceID.Valid {
		d.ReferenceID = m.ReferenceID.String
	}
	return d
}
