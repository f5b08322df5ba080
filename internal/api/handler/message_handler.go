package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusworks/campus-api/internal/core/ports"
)

type MessageHandler struct {
	messages ports.MessageService
}

func NewMessageHandler(messages ports.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type sendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Content     string `json:"content"      validate:"required,max=4000"`
}

// Send delivers a direct message from the caller to a recipient.
//
// @Summary      Send a direct message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      401   {object}  errorResponse
// @Router       /messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	identity, err := ctxIdentity(c)
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

	m, err := h.messages.Send(c.Request().Context(), req.RecipientID, req.Content, identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

// Conversation returns all messages between the caller and a peer.
//
// @Summary      Get a conversation
// @Tags         messages
// @Produce      json
// @Param        userID  path      string  true  "Peer user id"
// @Success      200     {array}   domain.Message
// @Failure      401     {object}  errorResponse
// @Router       /messages/{userID} [get]
func (h *MessageHandler) Conversation(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	msgs, err := h.messages.Conversation(c.Request().Context(), c.Param("userID"), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// Conversations lists the caller's threads with unread counts.
//
// @Summary      List conversations
// @Tags         messages
// @Produce      json
// @Success      200  {array}   domain.Conversation
// @Failure      401  {object}  errorResponse
// @Router       /conversations [get]
func (h *MessageHandler) Conversations(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	convs, err := h.messages.Conversations(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, convs)
}

// MarkRead records the caller as having read every message a peer has
// sent them so far.
//
// @Summary      Mark a conversation as read
// @Tags         messages
// @Param        userID  path  string  true  "Peer user id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /messages/{userID}/read [post]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.messages.MarkConversationRead(c.Request().Context(), c.Param("userID"), identity); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a message the caller sent.
//
// @Summary      Delete a message
// @Tags         messages
// @Param        id  path  string  true  "Message id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /messages/{id} [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.messages.Delete(c.Request().Context(), c.Param("id"), identity); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
