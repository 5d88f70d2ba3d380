package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/casafind/casafind-api/internal/api/shared"
	"github.com/casafind/casafind-api/internal/platform/logger"
	"github.com/casafind/casafind-api/internal/service"
)

// MessageHandler handles messaging between users. Every route requires
// authentication.
type MessageHandler struct {
	messages service.MessageService
	logger   *slog.Logger
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messages service.MessageService, logger *slog.Logger) *MessageHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for MessageHandler")
	}
	return &MessageHandler{
		messages: messages,
		logger:   logger.With(slog.String("component", "message_handler")),
	}
}

// List handles GET /api/messages?unread=true&page&limit.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}

	q := r.URL.Query()
	unread, _ := strconv.ParseBool(q.Get("unread"))

	page, err := h.messages.List(r.Context(), id.UserID, unread, q.Get("page"), q.Get("limit"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch messages")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// Conversation handles GET /api/messages/conversation/{propertyId}/{userId}.
func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, log, "propertyId", "userId")
	if !ok {
		return
	}

	messages, err := h.messages.Conversation(r.Context(), id.UserID, ids[0], ids[1])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch conversation")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, messages)
}

// Get handles GET /api/messages/{id}.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, log, "id")
	if !ok {
		return
	}

	message, err := h.messages.Get(r.Context(), id.UserID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch message")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, message)
}

// Send handles POST /api/messages.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}

	var req SendMessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	receiverID, err := parseUUIDField("receiver_id", req.ReceiverID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	propertyID, err := parseUUIDField("property_id", req.PropertyID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	message, err := h.messages.Send(r.Context(), id.UserID, service.SendMessageInput{
		ReceiverID: receiverID,
		PropertyID: propertyID,
		Content:    req.Content,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to send message")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, MessageCreatedResponse{
		Message: "Message sent successfully",
		Data:    message,
	})
}

// MarkRead handles PUT /api/messages/{id}/read.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, log, "id")
	if !ok {
		return
	}

	if err := h.messages.MarkRead(r.Context(), id.UserID, ids[0]); err != nil {
		HandleAPIError(w, r, err, "Failed to mark message as read")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Message marked as read"})
}

// Delete handles DELETE /api/messages/{id}.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, log, "id")
	if !ok {
		return
	}

	if err := h.messages.Delete(r.Context(), id.UserID, ids[0]); err != nil {
		HandleAPIError(w, r, err, "Failed to delete message")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Message deleted successfully"})
}
