package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/shopfront/backend/internal/application/trade"
)

// OrderHandler handles customer order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create godoc
// @Summary      Place an order
// @Description  Open to anonymous callers. When a token is sent the order is linked to the user.
// @Description  The order is linked to the client whose name equals customer_fullname exactly, after Unicode NFC normalization.
// @Description  A product listed twice keeps only its first line. Unknown products fail the whole order with 400. Line totals are always recomputed.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateOrderRequest true "Order"
// @Success      201 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        search query string false "Case-insensitive substring of the customer name"
// @Param        status query string false "Order status" Enums(PENDING, CONFIRMED, CANCELLED)
// @Param        client_id query string false "Client ID" format(uuid)
// @Param        user_id query string false "User ID" format(uuid)
// @Param        payment_status query bool false "Paid filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        order_by query string false "Sort field" Enums(created_at, updated_at, total_price, status)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]tradeapp.OrderResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter tradeapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	p, size := page(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, orders, total, p, size)
}

// Update godoc
// @Summary      Update an order
// @Description  Header fields are replaced. Items are replaced only when the items key is present.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body tradeapp.UpdateOrderRequest true "Order"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req tradeapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Delete godoc
// @Summary      Delete an order
// @Tags         orders
// @Param        id path string true "Order ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// BillHandler handles supplier buying bill endpoints
type BillHandler struct {
	BaseHandler
	billService *tradeapp.BillService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(billService *tradeapp.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// Create godoc
// @Summary      Record a buying bill
// @Description  total_amount is the sum of the line totals. Unknown products or suppliers fail the whole bill with 400.
// @Tags         buying-bills
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateBillRequest true "Bill"
// @Success      201 {object} dto.Response{data=tradeapp.BillResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /buyingBills [post]
func (h *BillHandler) Create(c *gin.Context) {
	var req tradeapp.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	bill, err := h.billService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, bill)
}

// GetByID godoc
// @Summary      Get a buying bill
// @Tags         buying-bills
// @Produce      json
// @Param        id path string true "Bill ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.BillResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /buyingBills/{id} [get]
func (h *BillHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	bill, err := h.billService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bill)
}

// List godoc
// @Summary      List buying bills
// @Tags         buying-bills
// @Produce      json
// @Param        search query string false "Search in bill number"
// @Param        fournisseur query string false "Supplier ID" format(uuid)
// @Param        is_paid query bool false "Paid filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        order_by query string false "Sort field" Enums(date, bill_id, total_amount)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]tradeapp.BillResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /buyingBills [get]
func (h *BillHandler) List(c *gin.Context) {
	var filter tradeapp.BillListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	bills, total, err := h.billService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	p, size := page(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, bills, total, p, size)
}

// Update godoc
// @Summary      Update a buying bill
// @Description  Header fields are replaced. Lines are replaced only when the products key is present.
// @Tags         buying-bills
// @Accept       json
// @Produce      json
// @Param        id path string true "Bill ID" format(uuid)
// @Param        request body tradeapp.UpdateBillRequest true "Bill"
// @Success      200 {object} dto.Response{data=tradeapp.BillResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /buyingBills/{id} [put]
func (h *BillHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req tradeapp.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	bill, err := h.billService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bill)
}

// Delete godoc
// @Summary      Delete a buying bill
// @Tags         buying-bills
// @Param        id path string true "Bill ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /buyingBills/{id} [delete]
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.billService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
