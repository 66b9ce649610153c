package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rankforge/agency-api/internal/core/ports"
)

// ChatHandler handles chat message endpoints. Live delivery happens over the
// realtime channel; these endpoints cover persistence and history.
type ChatHandler struct {
	service ports.ChatService
}

func NewChatHandler(service ports.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

type sendMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

// Send handles POST /api/chat/:conversation/messages.
//
// @Summary      Send a chat message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        conversation  path      string              true  "Conversation id"
// @Param        body          body      sendMessageRequest  true  "Message body"
// @Success      201           {object}  domain.Message
// @Failure      400           {object}  errorResponse
// @Failure      403           {object}  errorResponse
// @Router       /api/chat/{conversation}/messages [post]
func (h *ChatHandler) Send(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.service.SendMessage(c.Request().Context(), ports.SendMessageInput{
		ConversationID: c.Param("conversation"),
		Sender:         who,
		Body:           req.Body,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, msg)
}

// History handles GET /api/chat/:conversation/messages.
//
// @Summary      List messages of a conversation
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        conversation  path     string  true  "Conversation id"
// @Success      200           {array}  domain.Message
// @Failure      403           {object}  errorResponse
// @Router       /api/chat/{conversation}/messages [get]
func (h *ChatHandler) History(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	msgs, err := h.service.ListMessages(c.Request().Context(), who, c.Param("conversation"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, msgs)
}
