package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/twinxhq/twinx-pos/internal/apperrors"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
	"github.com/twinxhq/twinx-pos/internal/dto"
	"github.com/twinxhq/twinx-pos/internal/middleware"
	"github.com/twinxhq/twinx-pos/internal/platform/config"
	"github.com/twinxhq/twinx-pos/internal/utils/accounting"
)

var (
	ErrCashierInactive   = errors.New("cashier account is inactive or locked")
	ErrEmptyCart         = errors.New("cart must contain at least one line")
	ErrInsufficientPaid  = errors.New("amount paid is less than the grand total")
	ErrRefundNotPositive = errors.New("refund quantities must be positive")
)

const walkInCustomerName = "Walk-in Customer"

// saleService orchestrates checkout and refunds. Monetary math is delegated
// to the totals calculator, postings to the ledger service, and atomic
// persistence to the sale repository; this service sequences them.
type saleService struct {
	saleRepo     portsrepo.SaleRepositoryWithTx
	productRepo  portsrepo.ProductRepositoryFacade
	employeeRepo portsrepo.EmployeeRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	settingsRepo portsrepo.SettingsRepositoryFacade
	ledgerSvc    portssvc.LedgerSvcFacade
	customerSvc  portssvc.CustomerSvcFacade
	shiftSvc     portssvc.ShiftSvcFacade
	auditSvc     portssvc.AuditSvcFacade
	currency     string
	loyalty      config.LoyaltyConfig
}

// NewSaleService creates a new SaleService.
func NewSaleService(
	saleRepo portsrepo.SaleRepositoryWithTx,
	productRepo portsrepo.ProductRepositoryFacade,
	employeeRepo portsrepo.EmployeeRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	settingsRepo portsrepo.SettingsRepositoryFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
	customerSvc portssvc.CustomerSvcFacade,
	shiftSvc portssvc.ShiftSvcFacade,
	auditSvc portssvc.AuditSvcFacade,
	cfg *config.Config,
) portssvc.SaleSvcFacade {
	return &saleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		employeeRepo: employeeRepo,
		customerRepo: customerRepo,
		settingsRepo: settingsRepo,
		ledgerSvc:    ledgerSvc,
		customerSvc:  customerSvc,
		shiftSvc:     shiftSvc,
		auditSvc:     auditSvc,
		currency:     cfg.Currency,
		loyalty:      cfg.Loyalty,
	}
}

// Ensure saleService implements the portssvc.SaleSvcFacade interface
var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// resolvedLine pairs a validated cart line with the catalog snapshots that
// end up on the sale item.
type resolvedLine struct {
	cart      domain.CartLine
	product   *domain.Product
	variation domain.ProductVariation
}

// resolveCart validates every requested line against the catalog and fills
// in prices, costs and snapshot fields. A line without a variation ID sells
// the product's default variation.
func (s *saleService) resolveCart(ctx context.Context, items []dto.CartLineRequest) ([]resolvedLine, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	products := map[string]*domain.Product{}
	resolved := make([]resolvedLine, 0, len(items))

	for _, item := range items {
		if !item.Quantity.IsPositive() {
			return nil, fmt.Errorf("product %s: quantity must be positive: %w", item.ProductID, apperrors.ErrValidation)
		}

		product, ok := products[item.ProductID]
		if !ok {
			var err error
			product, err = s.productRepo.FindProductByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("product %s: %w", item.ProductID, apperrors.ErrNotFound)
				}
				return nil, err
			}
			products[item.ProductID] = product
		}
		if !product.IsActive {
			return nil, fmt.Errorf("product %s is inactive: %w", product.Name, apperrors.ErrValidation)
		}

		variation, err := pickVariation(product, item.VariationID)
		if err != nil {
			return nil, err
		}

		// Advisory check against the last-read quantity; the stock mutator
		// re-verifies under row locks inside the sale transaction.
		if product.ManageStock && !variation.AllowBackorders && variation.StockQuantity.LessThan(item.Quantity) {
			return nil, fmt.Errorf("product %s: %s in stock, %s requested: %w",
				product.Name, variation.StockQuantity.String(), item.Quantity.String(), apperrors.ErrInsufficientStock)
		}

		unitPrice := item.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = variation.Price
		}

		resolved = append(resolved, resolvedLine{
			cart: domain.CartLine{
				ProductID:       product.ProductID,
				VariationID:     &variation.VariationID,
				Quantity:        item.Quantity,
				UnitPrice:       unitPrice,
				DiscountPercent: item.DiscountPercent,
				DiscountAmount:  item.DiscountAmount,
				TaxPercent:      item.TaxPercent,
			},
			product:   product,
			variation: variation,
		})
	}

	return resolved, nil
}

// pickVariation selects the requested variation, or the single active default
// when the line names none.
func pickVariation(product *domain.Product, variationID *string) (domain.ProductVariation, error) {
	if variationID != nil {
		for _, v := range product.Variations {
			if v.VariationID == *variationID {
				if !v.IsActive {
					return domain.ProductVariation{}, fmt.Errorf("variation %s is inactive: %w", v.Name, apperrors.ErrValidation)
				}
				return v, nil
			}
		}
		return domain.ProductVariation{}, fmt.Errorf("variation %s not found on product %s: %w", *variationID, product.Name, apperrors.ErrNotFound)
	}

	for _, v := range product.Variations {
		if v.IsActive {
			return v, nil
		}
	}
	return domain.ProductVariation{}, fmt.Errorf("product %s has no active variation: %w", product.Name, apperrors.ErrValidation)
}

// ProcessSale runs the full checkout sequence: cashier and cart validation,
// totals, invoice numbering, atomic persistence of header, items, stock and
// ledger, then the best-effort post-commit updates and receipt assembly.
func (s *saleService) ProcessSale(ctx context.Context, req dto.ProcessSaleRequest, cashierID string) (*dto.ProcessSaleResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cashier, err := s.employeeRepo.FindEmployeeByID(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if !cashier.IsActive || cashier.IsLocked {
		return nil, ErrCashierInactive
	}

	resolved, err := s.resolveCart(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	cartLines := make([]domain.CartLine, len(resolved))
	for i, line := range resolved {
		cartLines[i] = line.cart
	}
	totals, err := accounting.CalculateTotals(cartLines, req.DiscountPercent)
	if err != nil {
		return nil, err
	}

	customerName := walkInCustomerName
	if req.CustomerID != nil {
		customer, err := s.customerRepo.FindCustomerByID(ctx, *req.CustomerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("customer %s: %w", *req.CustomerID, apperrors.ErrNotFound)
			}
			return nil, err
		}
		customerName = customer.FullName()
	}

	now := time.Now()

	amountPaid := req.AmountPaid
	changeAmount := decimal.Zero
	paymentStatus := domain.PaymentPaid
	switch req.PaymentMethod {
	case domain.PaymentCash:
		if amountPaid.LessThan(totals.GrandTotal) {
			return nil, ErrInsufficientPaid
		}
		changeAmount = amountPaid.Sub(totals.GrandTotal)
	case domain.PaymentCredit:
		paymentStatus = domain.PaymentPending
		amountPaid = decimal.Zero
	default:
		// Card settles exactly.
		amountPaid = totals.GrandTotal
	}

	invoiceNo, err := s.saleRepo.NextInvoiceNo(ctx, now)
	if err != nil {
		// The counter is a convenience, not a reason to lose a sale. The
		// timestamp fallback stays unique at sub-second granularity.
		invoiceNo = "INV-" + now.Format("20060102150405.000")
		logger.Error("Invoice counter unavailable, using timestamp fallback",
			slog.String("invoice_no", invoiceNo), slog.String("error", err.Error()))
	}

	sale := &domain.Sale{
		SaleID:          uuid.NewString(),
		InvoiceNo:       invoiceNo,
		InvoiceDate:     now,
		Status:          domain.SaleCompleted,
		CustomerID:      req.CustomerID,
		CustomerName:    customerName,
		CashierID:       cashier.EmployeeID,
		CashierName:     cashier.FullName(),
		Subtotal:        totals.Subtotal,
		DiscountAmount:  totals.DiscountAmount,
		DiscountPercent: req.DiscountPercent,
		TaxAmount:       totals.TaxAmount,
		GrandTotal:      totals.GrandTotal,
		AmountPaid:      amountPaid,
		ChangeAmount:    changeAmount,
		RefundedAmount:  decimal.Zero,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   paymentStatus,
		Currency:        s.currency,
		TerminalID:      req.TerminalID,
		ShiftID:         req.ShiftID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     cashier.EmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: cashier.EmployeeID,
		},
	}

	deltas := make([]domain.StockDelta, 0, len(resolved))
	for i, line := range resolved {
		lineTotals := totals.Lines[i]
		sale.Items = append(sale.Items, domain.SaleItem{
			SaleItemID:       uuid.NewString(),
			SaleID:           sale.SaleID,
			ProductID:        line.product.ProductID,
			VariationID:      line.cart.VariationID,
			ProductName:      line.product.Name,
			ProductSKU:       line.variation.SKU,
			ProductBarcode:   line.variation.Barcode,
			VariationName:    line.variation.Name,
			Quantity:         line.cart.Quantity,
			UnitPrice:        line.cart.UnitPrice,
			UnitCost:         line.variation.CostPrice,
			Subtotal:         lineTotals.Subtotal,
			DiscountAmount:   lineTotals.DiscountAmount,
			DiscountPercent:  line.cart.DiscountPercent,
			TaxAmount:        lineTotals.TaxAmount,
			TaxPercent:       line.cart.TaxPercent,
			Total:            lineTotals.Total,
			ReturnedQuantity: decimal.Zero,
			CreatedAt:        now,
		})
		deltas = append(deltas, domain.StockDelta{
			VariationID:  line.variation.VariationID,
			Quantity:     line.cart.Quantity.Neg(),
			MovementType: domain.MovementSale,
			Reference:    domain.ReferenceSale,
			ReferenceID:  sale.SaleID,
			Reason:       "Sale " + invoiceNo,
			RecordedBy:   cashier.EmployeeID,
		})
	}

	entries, err := s.ledgerSvc.EntriesForSale(ctx, sale)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.SaveSale(ctx, sale, deltas, entries); err != nil {
		logger.Error("Failed to save sale", slog.String("invoice_no", invoiceNo), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Sale completed", slog.String("sale_id", sale.SaleID), slog.String("invoice_no", invoiceNo), slog.String("grand_total", sale.GrandTotal.String()))

	pointsEarned := s.afterSale(ctx, sale)

	resp := &dto.ProcessSaleResponse{Sale: dto.ToSaleResponse(sale)}
	receipt, err := s.buildReceipt(ctx, sale, pointsEarned)
	if err != nil {
		// The sale is committed; a receipt problem must not undo it.
		logger.Warn("Failed to assemble receipt", slog.String("sale_id", sale.SaleID), slog.String("error", err.Error()))
	} else {
		resp.Receipt = receipt
	}

	return resp, nil
}

// afterSale applies the best-effort post-commit updates: loyalty accrual,
// shift totals and the audit trail. Failures are logged, never propagated;
// the sale is already committed.
func (s *saleService) afterSale(ctx context.Context, sale *domain.Sale) int64 {
	logger := middleware.GetLoggerFromCtx(ctx)

	var pointsEarned int64
	if sale.CustomerID != nil {
		pointsEarned = sale.GrandTotal.Mul(s.loyalty.PointsPerCurrencyUnit).Floor().IntPart()
		if pointsEarned > 0 {
			accrual := domain.LoyaltyAccrual{
				CustomerID:   *sale.CustomerID,
				PointsEarned: pointsEarned,
				AmountSpent:  sale.GrandTotal,
				PurchasedAt:  sale.InvoiceDate,
			}
			if err := s.customerSvc.AccrueLoyalty(ctx, accrual); err != nil {
				logger.Warn("Loyalty accrual failed after committed sale",
					slog.String("sale_id", sale.SaleID), slog.String("customer_id", *sale.CustomerID), slog.String("error", err.Error()))
				pointsEarned = 0
			}
		}
	}

	if sale.ShiftID != nil {
		if err := s.shiftSvc.RecordSale(ctx, *sale.ShiftID, sale.GrandTotal); err != nil {
			logger.Warn("Shift totals update failed after committed sale",
				slog.String("sale_id", sale.SaleID), slog.String("shift_id", *sale.ShiftID), slog.String("error", err.Error()))
		}
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActorID:    &sale.CashierID,
		Action:     "process_sale",
		Module:     "sales",
		EntityType: "sale",
		EntityID:   sale.SaleID,
		Status:     domain.AuditSuccess,
		Details:    "Invoice " + sale.InvoiceNo,
	})

	return pointsEarned
}

// buildReceipt assembles the render-ready receipt from the committed sale and
// the store settings.
func (s *saleService) buildReceipt(ctx context.Context, sale *domain.Sale, pointsEarned int64) (*dto.ReceiptData, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	receipt := &dto.ReceiptData{
		InvoiceNo:   sale.InvoiceNo,
		InvoiceDate: sale.InvoiceDate,
		Company: dto.ReceiptParty{
			Name:    settings["company.name"],
			Address: settings["company.address"],
			Phone:   settings["company.phone"],
			Email:   settings["company.email"],
			TaxID:   settings["company.tax_id"],
		},
		Customer:       dto.ReceiptParty{Name: sale.CustomerName},
		CashierName:    sale.CashierName,
		TerminalID:     sale.TerminalID,
		Subtotal:       sale.Subtotal,
		DiscountAmount: sale.DiscountAmount,
		TaxAmount:      sale.TaxAmount,
		GrandTotal:     sale.GrandTotal,
		AmountPaid:     sale.AmountPaid,
		ChangeAmount:   sale.ChangeAmount,
		PaymentMethod:  sale.PaymentMethod,
		PointsEarned:   pointsEarned,
		FooterText:     settings["receipt.footer_text"],
	}
	for _, item := range sale.Items {
		receipt.Lines = append(receipt.Lines, dto.ReceiptLine{
			Name:      item.ProductName,
			SKU:       item.ProductSKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.DiscountAmount,
			Total:     item.Total,
		})
	}

	return receipt, nil
}

// ProcessRefund refunds part or all of a sale. Amounts are proportional to
// the returned quantities; the repository re-verifies returnable quantities
// under row locks before anything is written.
func (s *saleService) ProcessRefund(ctx context.Context, req dto.ProcessRefundRequest, actorID string) (*dto.ProcessSaleResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.employeeRepo.FindEmployeeByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsActive || actor.IsLocked {
		return nil, ErrCashierInactive
	}

	original, err := s.saleRepo.FindSaleByID(ctx, req.SaleID)
	if err != nil {
		return nil, err
	}
	if original.OriginalSaleID != nil {
		return nil, fmt.Errorf("sale %s is itself a refund: %w", original.InvoiceNo, apperrors.ErrValidation)
	}

	itemsByID := map[string]domain.SaleItem{}
	for _, item := range original.Items {
		itemsByID[item.SaleItemID] = item
	}

	now := time.Now()
	refundID := uuid.NewString()

	var (
		refundItems []domain.SaleItem
		deltas      []domain.StockDelta
		itemReturns = map[string]decimal.Decimal{}
		refundSub   = decimal.Zero
		refundDisc  = decimal.Zero
		refundTax   = decimal.Zero
		refundTotal = decimal.Zero
	)
	for _, line := range req.Items {
		if !line.Quantity.IsPositive() {
			return nil, ErrRefundNotPositive
		}
		item, ok := itemsByID[line.SaleItemID]
		if !ok {
			return nil, fmt.Errorf("sale item %s does not belong to sale %s: %w", line.SaleItemID, original.InvoiceNo, apperrors.ErrNotFound)
		}
		returnable := item.Quantity.Sub(item.ReturnedQuantity)
		if line.Quantity.GreaterThan(returnable) {
			return nil, fmt.Errorf("sale item %s: %s returnable, %s requested: %w",
				line.SaleItemID, returnable.String(), line.Quantity.String(), apperrors.ErrValidation)
		}

		subtotal := accounting.ProportionalRefund(item.Subtotal, item.Quantity, line.Quantity)
		discount := accounting.ProportionalRefund(item.DiscountAmount, item.Quantity, line.Quantity)
		tax := accounting.ProportionalRefund(item.TaxAmount, item.Quantity, line.Quantity)
		total := accounting.ProportionalRefund(item.Total, item.Quantity, line.Quantity)

		refundItems = append(refundItems, domain.SaleItem{
			SaleItemID:      uuid.NewString(),
			SaleID:          refundID,
			ProductID:       item.ProductID,
			VariationID:     item.VariationID,
			ProductName:     item.ProductName,
			ProductSKU:      item.ProductSKU,
			ProductBarcode:  item.ProductBarcode,
			VariationName:   item.VariationName,
			Quantity:        line.Quantity.Neg(),
			UnitPrice:       item.UnitPrice,
			UnitCost:        item.UnitCost,
			Subtotal:        subtotal.Neg(),
			DiscountAmount:  discount.Neg(),
			DiscountPercent: item.DiscountPercent,
			TaxAmount:       tax.Neg(),
			TaxPercent:      item.TaxPercent,
			Total:           total.Neg(),
			CreatedAt:       now,
		})
		if item.VariationID != nil {
			deltas = append(deltas, domain.StockDelta{
				VariationID:  *item.VariationID,
				Quantity:     line.Quantity,
				MovementType: domain.MovementReturnCustomer,
				Reference:    domain.ReferenceRefund,
				ReferenceID:  refundID,
				Reason:       req.Reason,
				RecordedBy:   actor.EmployeeID,
			})
		}
		itemReturns[line.SaleItemID] = itemReturns[line.SaleItemID].Add(line.Quantity)

		refundSub = refundSub.Add(subtotal)
		refundDisc = refundDisc.Add(discount)
		refundTax = refundTax.Add(tax)
		refundTotal = refundTotal.Add(total)
	}

	// The time suffix keeps a second partial refund of the same sale from
	// colliding on the unique invoice number.
	refundInvoiceNo := "REF-" + original.InvoiceNo + "-" + now.Format("150405")
	refund := &domain.Sale{
		SaleID:          refundID,
		InvoiceNo:       refundInvoiceNo,
		InvoiceDate:     now,
		Status:          domain.SaleCompleted,
		CustomerID:      original.CustomerID,
		CustomerName:    original.CustomerName,
		CashierID:       actor.EmployeeID,
		CashierName:     actor.FullName(),
		Subtotal:        refundSub.Neg(),
		DiscountAmount:  refundDisc.Neg(),
		// Effective rate of the refunded lines; the original's cart-level
		// rate does not describe a partial refund.
		DiscountPercent: accounting.DiscountPercentOf(refundDisc, refundSub),
		TaxAmount:       refundTax.Neg(),
		GrandTotal:      refundTotal.Neg(),
		AmountPaid:      refundTotal.Neg(),
		ChangeAmount:    decimal.Zero,
		RefundedAmount:  decimal.Zero,
		PaymentMethod:   original.PaymentMethod,
		PaymentStatus:   domain.PaymentRefunded,
		Currency:        original.Currency,
		TerminalID:      req.TerminalID,
		ShiftID:         req.ShiftID,
		OriginalSaleID:  &original.SaleID,
		Items:           refundItems,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.EmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.EmployeeID,
		},
	}

	entries, err := s.ledgerSvc.EntriesForRefund(ctx, refund)
	if err != nil {
		return nil, err
	}

	app := portsrepo.RefundApplication{
		OriginalSaleID: original.SaleID,
		RefundTotal:    refundTotal,
		ItemReturns:    itemReturns,
	}
	if err := s.saleRepo.SaveRefund(ctx, refund, deltas, entries, app); err != nil {
		logger.Error("Failed to save refund", slog.String("original_sale_id", original.SaleID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Refund completed", slog.String("refund_id", refundID), slog.String("invoice_no", refundInvoiceNo), slog.String("amount", refundTotal.String()))

	if req.ShiftID != nil {
		if err := s.shiftSvc.RecordSale(ctx, *req.ShiftID, refund.GrandTotal); err != nil {
			logger.Warn("Shift totals update failed after committed refund",
				slog.String("refund_id", refundID), slog.String("error", err.Error()))
		}
	}
	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActorID:    &actor.EmployeeID,
		Action:     "process_refund",
		Module:     "sales",
		EntityType: "sale",
		EntityID:   refundID,
		Status:     domain.AuditSuccess,
		Details:    "Refund " + refundInvoiceNo + " against " + original.InvoiceNo + ": " + req.Reason,
	})

	resp := &dto.ProcessSaleResponse{Sale: dto.ToSaleResponse(refund)}
	receipt, err := s.buildReceipt(ctx, refund, 0)
	if err != nil {
		logger.Warn("Failed to assemble refund receipt", slog.String("refund_id", refundID), slog.String("error", err.Error()))
	} else {
		resp.Receipt = receipt
	}

	return resp, nil
}

// GetSaleDetails retrieves a sale with its items and the stock movements the
// sale triggered.
func (s *saleService) GetSaleDetails(ctx context.Context, saleID string) (*dto.GetSaleDetailsResponse, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	refType := domain.ReferenceSale
	if sale.OriginalSaleID != nil {
		refType = domain.ReferenceRefund
	}
	movements, err := s.productRepo.FindMovementsByReference(ctx, refType, saleID)
	if err != nil {
		return nil, err
	}

	return &dto.GetSaleDetailsResponse{
		Sale:      dto.ToSaleResponse(sale),
		Movements: dto.ToStockMovementResponses(movements),
	}, nil
}

// ListSales retrieves a paginated sale history.
func (s *saleService) ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	sales, nextToken, err := s.saleRepo.ListSales(ctx, params.From, params.To, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListSalesResponse{
		Sales:     make([]dto.SaleResponse, len(sales)),
		NextToken: nextToken,
	}
	for i := range sales {
		resp.Sales[i] = dto.ToSaleResponse(&sales[i])
	}
	return resp, nil
}
