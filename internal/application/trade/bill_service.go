package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/partner"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/trade"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"github.com/shopfront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SupplierFinder resolves the supplier a bill references
type SupplierFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error)
}

// BillService assembles buying bills and their ProductInBill lines
type BillService struct {
	billRepo        trade.BuyingBillRepository
	products        ProductFinder
	suppliers       SupplierFinder
	txScope         TransactionScope
	logger          *zap.Logger
	businessMetrics *telemetry.BusinessMetrics
}

// NewBillService creates a new BillService
func NewBillService(
	billRepo trade.BuyingBillRepository,
	products ProductFinder,
	suppliers SupplierFinder,
	txScope TransactionScope,
	logger *zap.Logger,
) *BillService {
	return &BillService{
		billRepo:  billRepo,
		products:  products,
		suppliers: suppliers,
		txScope:   txScope,
		logger:    logger,
	}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *BillService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create validates the bill, checks supplier and products exist, then writes
// the bill and its lines in one transaction. total_amount is the sum of the
// line totals.
func (s *BillService) Create(ctx context.Context, req CreateBillRequest) (*BillResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "buying_bill", "create")
	defer span.End()

	draft, err := trade.ValidateBill(req.toInput())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.checkSupplier(ctx, draft.Header.SupplierID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := bindProducts(ctx, s.products, draft.Lines); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	bill := trade.NewBuyingBill(draft)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := ensureBillNumberFree(ctx, repos.BillRepo(), bill.BillNumber, nil); err != nil {
			return err
		}
		return repos.BillRepo().Save(ctx, bill)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, rollbackError(ctx, s.logger, "create buying bill", err)
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrBillID, bill.ID.String(),
		telemetry.SpanAttrBillNumber, bill.BillNumber,
		telemetry.SpanAttrItemsCount, len(bill.Items),
		telemetry.SpanAttrTotal, bill.TotalAmount.String(),
	)
	s.businessMetrics.RecordDocument(ctx, telemetry.DocumentBill, bill.TotalAmount.Amount())

	logger.FromContextOr(ctx, s.logger).Info("Buying bill created",
		zap.String("bill_id", bill.BillNumber),
		zap.Int("items", len(bill.Items)),
		zap.String("total_amount", bill.TotalAmount.String()),
	)

	response := ToBillResponse(bill)
	return &response, nil
}

// GetByID retrieves a buying bill with its lines
func (s *BillService) GetByID(ctx context.Context, id uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapBillNotFound(err)
	}
	response := ToBillResponse(bill)
	return &response, nil
}

// List retrieves buying bills with filtering and pagination
func (s *BillService) List(ctx context.Context, filter BillListFilter) ([]BillResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}.Normalize()

	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.IsPaid != nil {
		domainFilter.Filters["is_paid"] = *filter.IsPaid
	}

	bills, err := s.billRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.billRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToBillResponses(bills), total, nil
}

// Update replaces the header and, when products are given, deletes and
// recreates every line before recomputing total_amount.
func (s *BillService) Update(ctx context.Context, id uuid.UUID, req UpdateBillRequest) (*BillResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "buying_bill", "update")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrBillID, id.String())

	if err := s.checkSupplier(ctx, req.Fournisseur); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var lines []trade.Line
	if req.Products != nil {
		var err error
		lines, err = trade.ValidateBillItems(toLineRequests(*req.Products))
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if err := bindProducts(ctx, s.products, lines); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	var bill *trade.BuyingBill
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		bill, err = repos.BillRepo().FindByID(ctx, id)
		if err != nil {
			return mapBillNotFound(err)
		}
		if err := bill.UpdateHeader(req.header()); err != nil {
			return err
		}
		if err := ensureBillNumberFree(ctx, repos.BillRepo(), bill.BillNumber, &bill.ID); err != nil {
			return err
		}
		if req.Products != nil {
			bill.ReplaceItems(lines)
		}
		return repos.BillRepo().Save(ctx, bill)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, rollbackError(ctx, s.logger, "update buying bill", err)
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// Delete removes a bill, its lines first
func (s *BillService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.billRepo.Delete(ctx, id); err != nil {
		return mapBillNotFound(err)
	}
	return nil
}

func (s *BillService) checkSupplier(ctx context.Context, id *uuid.UUID) error {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	_, err := s.suppliers.FindByID(ctx, *id)
	if errors.Is(err, shared.ErrNotFound) {
		return trade.ErrSupplierNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load supplier: %w", err)
	}
	return nil
}

func ensureBillNumberFree(ctx context.Context, repo trade.BuyingBillRepository, number string, excludeID *uuid.UUID) error {
	taken, err := repo.ExistsByBillNumber(ctx, number, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check bill number: %w", err)
	}
	if taken {
		return trade.ErrBillNumberTaken
	}
	return nil
}

func mapBillNotFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return trade.ErrBillNotFound
	}
	return err
}
