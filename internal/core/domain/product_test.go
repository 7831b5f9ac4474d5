package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

func TestClassifyStock(t *testing.T) {
	five := decimal.NewFromInt(5)

	assert.Equal(t, domain.StockStatusOutOfStock, domain.ClassifyStock(decimal.Zero, five))
	assert.Equal(t, domain.StockStatusOutOfStock, domain.ClassifyStock(decimal.NewFromInt(-1), five))
	assert.Equal(t, domain.StockStatusLowStock, domain.ClassifyStock(decimal.NewFromInt(3), five))
	assert.Equal(t, domain.StockStatusLowStock, domain.ClassifyStock(five, five))
	assert.Equal(t, domain.StockStatusInStock, domain.ClassifyStock(decimal.NewFromInt(6), five))
}
