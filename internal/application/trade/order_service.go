package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/identity"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/trade"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"github.com/shopfront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// OrderService assembles customer orders and their ProductInOrder lines
type OrderService struct {
	orderRepo       trade.OrderRepository
	products        ProductFinder
	txScope         TransactionScope
	logger          *zap.Logger
	businessMetrics *telemetry.BusinessMetrics
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo trade.OrderRepository,
	products ProductFinder,
	txScope TransactionScope,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		products:  products,
		txScope:   txScope,
		logger:    logger,
	}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *OrderService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create validates the request, checks every product exists and then, in one
// transaction, links the matching client, writes the order and its lines.
// principal may be anonymous for guest checkout.
func (s *OrderService) Create(ctx context.Context, principal identity.Principal, req CreateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "create")
	defer span.End()

	draft, err := trade.ValidateOrder(req.toInput())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.reportDropped(ctx, draft.Dropped)

	if err := bindProducts(ctx, s.products, draft.Lines); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	order, err := trade.NewOrder(draft, principal.UserRef())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := s.linkClient(ctx, repos, order); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, rollbackError(ctx, s.logger, "create order", err)
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderID, order.ID.String(),
		telemetry.SpanAttrItemsCount, order.ItemCount(),
		telemetry.SpanAttrDroppedItems, len(draft.Dropped),
		telemetry.SpanAttrTotal, order.TotalPrice.String(),
	)
	s.businessMetrics.RecordDocument(ctx, telemetry.DocumentOrder, order.TotalPrice.Amount())

	logger.FromContextOr(ctx, s.logger).Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.Bool("guest", order.IsGuest()),
		zap.Int("items", order.ItemCount()),
		zap.String("total", order.TotalPrice.String()),
	)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order with its lines
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapOrderNotFound(err)
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}.Normalize()

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}
	if filter.UserID != nil {
		domainFilter.Filters["user_id"] = *filter.UserID
	}
	if filter.PaymentStatus != nil {
		domainFilter.Filters["payment_status"] = *filter.PaymentStatus
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// Update replaces the order's scalar fields and, when items are given,
// deletes and recreates its lines. Sending the same update twice yields the
// same lines and total.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, id.String())

	var lines []trade.Line
	if req.Items != nil {
		var dropped []uuid.UUID
		var err error
		lines, dropped, err = trade.ValidateOrderItems(toLineRequests(*req.Items))
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		s.reportDropped(ctx, dropped)
		if err := bindProducts(ctx, s.products, lines); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	var order *trade.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, id)
		if err != nil {
			return mapOrderNotFound(err)
		}
		previousName := order.CustomerFullname
		if err := order.UpdateHeader(req.header()); err != nil {
			return err
		}
		if order.CustomerFullname != previousName {
			order.ClientID = nil
			if err := s.linkClient(ctx, repos, order); err != nil {
				return err
			}
		}
		if req.Items != nil {
			order.ReplaceItems(lines)
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, rollbackError(ctx, s.logger, "update order", err)
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes an order, its lines first
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return mapOrderNotFound(err)
	}
	return nil
}

// linkClient attaches the client whose name equals customer_fullname. A miss
// is logged and the order stays unlinked.
func (s *OrderService) linkClient(ctx context.Context, repos TransactionalRepositories, order *trade.Order) error {
	if order.CustomerFullname == "" {
		return nil
	}
	client, err := repos.ClientRepo().FindByExactName(ctx, order.CustomerFullname)
	if errors.Is(err, shared.ErrNotFound) {
		logger.FromContextOr(ctx, s.logger).Info("No client matches customer name, order left unlinked",
			zap.String("customer_fullname", order.CustomerFullname))
		telemetry.AddEvent(telemetry.SpanFromContext(ctx), "client_not_found")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up client: %w", err)
	}
	order.AttachClient(client.ID)
	return nil
}

func (s *OrderService) reportDropped(ctx context.Context, dropped []uuid.UUID) {
	if len(dropped) == 0 {
		return
	}
	ids := make([]string, len(dropped))
	for i, id := range dropped {
		ids[i] = id.String()
	}
	logger.FromContextOr(ctx, s.logger).Warn("Dropped duplicate order items",
		zap.Strings("product_ids", ids))
	s.businessMetrics.RecordDroppedLines(ctx, telemetry.DocumentOrder, len(dropped))
}

// rollbackError passes domain errors through and turns anything else into
// TRANSACTION_FAILED after logging the cause.
func rollbackError(ctx context.Context, log *zap.Logger, op string, err error) error {
	if _, ok := shared.AsDomainError(err); ok {
		return err
	}
	logger.FromContextOr(ctx, log).Error("Transaction rolled back", zap.String("operation", op), zap.Error(err))
	return fmt.Errorf("%s: %w: %v", op, shared.ErrTransaction, err)
}

func mapOrderNotFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return trade.ErrOrderNotFound
	}
	return err
}
