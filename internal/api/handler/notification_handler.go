package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rankforge/agency-api/internal/core/ports"
)

// NotificationHandler exposes the notification audit trail.
type NotificationHandler struct {
	repo ports.NotificationRepository
}

func NewNotificationHandler(repo ports.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

// List handles GET /api/notifications: the caller's own delivery records.
// Admins may pass ?order_id= to audit a single order instead.
//
// @Summary      List notification delivery records
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        order_id  query    string  false  "Filter by order (admin only)"
// @Success      200       {array}  domain.Notification
// @Failure      401       {object}  errorResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if orderID := c.QueryParam("order_id"); orderID != "" && who.IsAdmin() {
		records, err := h.repo.ListByOrder(c.Request().Context(), orderID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, records)
	}

	records, err := h.repo.ListByUser(c.Request().Context(), who.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}
