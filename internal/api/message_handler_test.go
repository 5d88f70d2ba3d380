package api_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/casafind/casafind-api/internal/api"
	"github.com/casafind/casafind-api/internal/domain"
	"github.com/casafind/casafind-api/internal/mocks"
	"github.com/casafind/casafind-api/internal/service"
	"github.com/casafind/casafind-api/internal/service/auth"
	"github.com/casafind/casafind-api/internal/store"
)

func messageRouter(msgs *mocks.MockMessageService, id *auth.Identity) http.Handler {
	h := api.NewMessageHandler(msgs, testLogger())
	return newRouter(id, func(r chi.Router) {
		r.Get("/api/messages", h.List)
		r.Get("/api/messages/conversation/{propertyId}/{userId}", h.Conversation)
		r.Get("/api/messages/{id}", h.Get)
		r.Post("/api/messages", h.Send)
		r.Put("/api/messages/{id}/read", h.MarkRead)
		r.Delete("/api/messages/{id}", h.Delete)
	})
}

func TestMessageHandler_List(t *testing.T) {
	caller := newIdentity(domain.RoleOwner)

	tests := []struct {
		query  string
		unread bool
	}{
		{"", false},
		{"?unread=true", true},
		{"?unread=1", true},
		{"?unread=nope", false},
	}

	for _, tc := range tests {
		t.Run("query"+tc.query, func(t *testing.T) {
			msgs := new(mocks.MockMessageService)
			msgs.On("List", mock.Anything, caller.UserID, tc.unread, "", "").
				Return(&service.MessagePage{Messages: []domain.MessageView{}}, nil)

			rr := doJSON(t, messageRouter(msgs, &caller), http.MethodGet, "/api/messages"+tc.query, nil)

			assert.Equal(t, http.StatusOK, rr.Code)
			msgs.AssertExpectations(t)
		})
	}
}

func TestMessageHandler_Conversation(t *testing.T) {
	caller := newIdentity(domain.RoleInterested)
	pid, other := uuid.New(), uuid.New()
	msgs := new(mocks.MockMessageService)
	msgs.On("Conversation", mock.Anything, caller.UserID, pid, other).Return([]domain.MessageView{}, nil)

	rr := doJSON(t, messageRouter(msgs, &caller), http.MethodGet,
		"/api/messages/conversation/"+pid.String()+"/"+other.String(), nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestMessageHandler_GetNonParticipant(t *testing.T) {
	caller := newIdentity(domain.RoleInterested)
	mid := uuid.New()
	msgs := new(mocks.MockMessageService)
	msgs.On("Get", mock.Anything, caller.UserID, mid).Return(nil, service.ErrNotParticipant)

	rr := doJSON(t, messageRouter(msgs, &caller), http.MethodGet, "/api/messages/"+mid.String(), nil)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "You are not part of this conversation", errorMessage(t, rr))
}

func TestMessageHandler_Send(t *testing.T) {
	caller := newIdentity(domain.RoleInterested)
	receiver, pid := uuid.New(), uuid.New()

	t.Run("success", func(t *testing.T) {
		msgs := new(mocks.MockMessageService)
		sent := &domain.Message{ID: uuid.New(), SenderID: caller.UserID, ReceiverID: receiver, PropertyID: pid,
			Content: "Is it still available?"}
		msgs.On("Send", mock.Anything, caller.UserID, service.SendMessageInput{
			ReceiverID: receiver,
			PropertyID: pid,
			Content:    "Is it still available?",
		}).Return(sent, nil)

		rr := doJSON(t, messageRouter(msgs, &caller), http.MethodPost, "/api/messages", map[string]string{
			"receiver_id": receiver.String(),
			"property_id": pid.String(),
			"content":     "Is it still available?",
		})

		require.Equal(t, http.StatusCreated, rr.Code)
		var body api.MessageCreatedResponse
		decodeBody(t, rr, &body)
		assert.Equal(t, "Message sent successfully", body.Message)
		require.NotNil(t, body.Data)
		assert.Equal(t, sent.ID, body.Data.ID)
		assert.False(t, body.Data.IsRead)
	})

	t.Run("malformed receiver", func(t *testing.T) {
		msgs := new(mocks.MockMessageService)

		rr := doJSON(t, messageRouter(msgs, &caller), http.MethodPost, "/api/messages", map[string]string{
			"receiver_id": "bob",
			"property_id": pid.String(),
			"content":     "hi",
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid receiver_id: must be a valid ID", errorMessage(t, rr))
		msgs.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown receiver", func(t *testing.T) {
		msgs := new(mocks.MockMessageService)
		msgs.On("Send", mock.Anything, caller.UserID, mock.Anything).Return(nil, store.ErrUserNotFound)

		rr := doJSON(t, messageRouter(msgs, &caller), http.MethodPost, "/api/messages", map[string]string{
			"receiver_id": receiver.String(),
			"property_id": pid.String(),
			"content":     "hi",
		})

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "User not found", errorMessage(t, rr))
	})

	t.Run("message to self", func(t *testing.T) {
		msgs := new(mocks.MockMessageService)
		msgs.On("Send", mock.Anything, caller.UserID, mock.Anything).
			Return(nil, domain.NewValidationError("receiver_id", "cannot be the sender", domain.ErrSelfMessage))

		rr := doJSON(t, messageRouter(msgs, &caller), http.MethodPost, "/api/messages", map[string]string{
			"receiver_id": caller.UserID.String(),
			"property_id": pid.String(),
			"content":     "hi",
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestMessageHandler_MarkReadAndDelete(t *testing.T) {
	caller := newIdentity(domain.RoleOwner)
	mid := uuid.New()

	t.Run("mark read", func(t *testing.T) {
		msgs := new(mocks.MockMessageService)
		msgs.On("MarkRead", mock.Anything, caller.UserID, mid).Return(nil)

		rr := doJSON(t, messageRouter(msgs, &caller), http.MethodPut, "/api/messages/"+mid.String()+"/read", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"Message marked as read"}`, rr.Body.String())
	})

	t.Run("mark read by sender", func(t *testing.T) {
		msgs := new(mocks.MockMessageService)
		msgs.On("MarkRead", mock.Anything, caller.UserID, mid).Return(service.ErrNotParticipant)

		rr := doJSON(t, messageRouter(msgs, &caller), http.MethodPut, "/api/messages/"+mid.String()+"/read", nil)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("delete missing", func(t *testing.T) {
		msgs := new(mocks.MockMessageService)
		msgs.On("Delete", mock.Anything, caller.UserID, mid).Return(store.ErrMessageNotFound)

		rr := doJSON(t, messageRouter(msgs, &caller), http.MethodDelete, "/api/messages/"+mid.String(), nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Message not found", errorMessage(t, rr))
	})

	t.Run("delete by receiver", func(t *testing.T) {
		msgs := new(mocks.MockMessageService)
		msgs.On("Delete", mock.Anything, caller.UserID, mid).Return(service.ErrNotOwned)

		rr := doJSON(t, messageRouter(msgs, &caller), http.MethodDelete, "/api/messages/"+mid.String(), nil)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
