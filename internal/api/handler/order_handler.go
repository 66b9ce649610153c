package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rankforge/agency-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /api/orders. Books a new Pending order for the caller.
//
// @Summary      Book a new service order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.CreateOrder(c.Request().Context(), ports.CreateOrderInput{
		UserID:      who.UserID,
		ServiceType: req.ServiceType,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}

// List handles GET /api/orders. All orders for admins, own orders otherwise.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  errorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	orders, err := h.service.ListOrders(c.Request().Context(), who)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /api/orders/:id.
//
// @Summary      Get a single order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  errorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	order, err := h.service.GetOrder(c.Request().Context(), who, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

// Patch handles PATCH /api/orders, the admin transition workflow.
//
// @Summary      Transition an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      patchOrderRequest  true  "Transition request"
// @Success      200   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/orders [patch]
func (h *OrderHandler) Patch(c echo.Context) error {
	var req patchOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.Transition(c.Request().Context(), ports.TransitionInput{
		OrderID:    req.OrderID,
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
		Action:     req.Action,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}
