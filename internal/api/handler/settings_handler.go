package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rankforge/agency-api/internal/core/ports"
)

// SettingsHandler reads and updates the typed site configuration.
type SettingsHandler struct {
	service ports.SettingsService
}

func NewSettingsHandler(service ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Get handles GET /api/settings.
//
// @Summary      Read site settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  domain.Settings
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	settings, err := h.service.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// Update handles PUT /api/settings. The raw body goes to the service so the
// strict decoder can reject unknown keys.
//
// @Summary      Replace site settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.Settings  true  "New settings"
// @Success      200   {object}  domain.Settings
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	settings, err := h.service.Update(c.Request().Context(), raw)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}
