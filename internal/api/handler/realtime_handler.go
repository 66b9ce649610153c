package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/rankforge/agency-api/internal/core/domain"
	"github.com/rankforge/agency-api/internal/core/ports"
)

const channelGrantTTL = 5 * time.Minute

// RealtimeHandler authorizes realtime channel subscriptions. Clients call it
// once per channel before subscribing; the returned grant is a short-lived
// token the pub/sub edge verifies with the same secret.
type RealtimeHandler struct {
	jwtSecret string
}

func NewRealtimeHandler(jwtSecret string) *RealtimeHandler {
	return &RealtimeHandler{jwtSecret: jwtSecret}
}

type channelAuthRequest struct {
	Channel string `json:"channel" validate:"required"`
}

type channelAuthResponse struct {
	Channel string `json:"channel"`
	Grant   string `json:"grant"`
}

// Authorize handles POST /api/realtime/auth.
//
// @Summary      Authorize a realtime channel subscription
// @Tags         realtime
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      channelAuthRequest  true  "Channel to subscribe to"
// @Success      200   {object}  channelAuthResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/realtime/auth [post]
func (h *RealtimeHandler) Authorize(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req channelAuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if !channelAllowed(who, req.Channel) {
		return domain.ErrForbidden
	}

	grant, err := h.signGrant(who, req.Channel)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, channelAuthResponse{Channel: req.Channel, Grant: grant})
}

// channelAllowed decides whether the caller may listen on the channel.
// Admins may listen anywhere; users only on their own channels.
func channelAllowed(who ports.Identity, channel string) bool {
	if who.IsAdmin() {
		return true
	}
	switch {
	case channel == domain.UserChannel(who.UserID):
		return true
	case channel == domain.ChatChannel(who.UserID):
		return true
	case strings.HasPrefix(channel, "admin:"):
		return false
	}
	return false
}

func (h *RealtimeHandler) signGrant(who ports.Identity, channel string) (string, error) {
	claims := jwt.MapClaims{
		"sub":     who.UserID,
		"channel": channel,
		"exp":     time.Now().Add(channelGrantTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(h.jwtSecret))
}
