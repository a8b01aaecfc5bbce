package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"estate_market/constants"
	"estate_market/database"
	"estate_market/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messagesView struct {
	Messages []model.ChatMessage `json:"messages"`
	CanWrite bool                `json:"canWrite"`
}

func TestSupportChatRoundTrip(t *testing.T) {
	f := setup(t)
	buyerToken := token(t, f.buyer)

	status, env := f.do(t, http.MethodPost, fmt.Sprintf("/api/v1/project/%d/support-chat", f.project.ID), buyerToken, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	chatId := decode[map[string]string](t, env)["chatId"]
	assert.Equal(t, fmt.Sprintf("support_%d_%d", f.project.ID, f.buyer.ID), chatId)

	status, _ = f.do(t, http.MethodPost, "/api/v1/chat/"+chatId+"/messages", buyerToken, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = f.do(t, http.MethodPost, "/api/v1/chat/"+chatId+"/messages", buyerToken, map[string]any{"text": "Is 101 still free?"})
	require.Equal(t, http.StatusCreated, status, env.Message)

	status, env = f.do(t, http.MethodPost, "/api/v1/chat/"+chatId+"/messages", token(t, f.owner), map[string]any{"text": "Yes"})
	require.Equal(t, http.StatusCreated, status, env.Message)

	status, env = f.do(t, http.MethodGet, "/api/v1/chat/"+chatId+"/messages", buyerToken, nil)
	require.Equal(t, http.StatusOK, status)
	view := decode[messagesView](t, env)
	assert.True(t, view.CanWrite)
	require.Len(t, view.Messages, 2)
	assert.Equal(t, "Is 101 still free?", view.Messages[0].Text)
	assert.Equal(t, f.owner.ID, view.Messages[1].SenderId)

	stranger := model.Account{Username: "stranger", Password: "x", Phone: "0900000009", Role: constants.ROLE_BUYER, Status: constants.ACCOUNT_ACTIVE}
	require.NoError(t, database.DB.Create(&stranger).Error)
	status, _ = f.do(t, http.MethodGet, "/api/v1/chat/"+chatId+"/messages", token(t, stranger), nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = f.do(t, http.MethodGet, "/api/v1/chat/bogus/messages", buyerToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCommunityChatNeedsProjectAccess(t *testing.T) {
	f := setup(t)
	chatPath := fmt.Sprintf("/api/v1/chat/community_%d/messages", f.project.ID)

	status, _ := f.do(t, http.MethodPost, chatPath, token(t, f.buyer), map[string]any{"text": "hello"})
	assert.Equal(t, http.StatusForbidden, status)

	status, env := f.do(t, http.MethodPost, chatPath, token(t, f.owner), map[string]any{"text": "Welcome home"})
	require.Equal(t, http.StatusCreated, status, env.Message)

	// a manager without the community permission follows read-only
	manager := model.Account{Username: "mgr", Password: "x", Phone: "0900000003", Role: constants.ROLE_BUYER, Status: constants.ACCOUNT_ACTIVE}
	require.NoError(t, database.DB.Create(&manager).Error)
	status, env = f.do(t, http.MethodPost, "/api/v1/builder/managers", token(t, f.owner), map[string]any{
		"userId":      manager.ID,
		"permissions": map[string]bool{"canSupportChat": true},
	})
	require.Equal(t, http.StatusCreated, status, env.Message)

	managerToken := token(t, manager)
	status, env = f.do(t, http.MethodGet, chatPath, managerToken, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	view := decode[messagesView](t, env)
	assert.False(t, view.CanWrite)
	assert.Len(t, view.Messages, 1)

	status, env = f.do(t, http.MethodPost, chatPath, managerToken, map[string]any{"text": "hi"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, constants.CHAT_READ_ONLY, env.Message)
}

func TestModerationAndStats(t *testing.T) {
	f := setup(t)
	moderator := model.Account{Username: "mod", Password: "x", Phone: "0900000004", Role: constants.ROLE_MODERATOR, Status: constants.ACCOUNT_ACTIVE}
	require.NoError(t, database.DB.Create(&moderator).Error)
	modToken := token(t, moderator)
	buyerToken := token(t, f.buyer)

	status, env := f.do(t, http.MethodPost, "/api/v1/moderation/verification", buyerToken, map[string]any{
		"idFront": "https://img/front.png",
		"idBack":  "https://img/back.png",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	request := decode[model.IdVerificationRequest](t, env)

	status, _ = f.do(t, http.MethodPost, "/api/v1/moderation/verification", buyerToken, map[string]any{
		"idFront": "https://img/front.png",
		"idBack":  "https://img/back.png",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = f.do(t, http.MethodGet, "/api/v1/moderation/verification", buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = f.do(t, http.MethodGet, "/api/v1/moderation/verification", modToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]model.IdVerificationRequest](t, env), 1)

	status, _ = f.do(t, http.MethodGet, "/api/v1/stats", modToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = f.do(t, http.MethodPost, fmt.Sprintf("/api/v1/moderation/verification/%d/review", request.ID), modToken, map[string]any{"approved": true})
	require.Equal(t, http.StatusOK, status, env.Message)

	status, env = f.do(t, http.MethodGet, "/api/v1/account/me/status", buyerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, constants.VERIFICATION_VERIFIED, decode[model.UserStatus](t, env).Verification)

	status, env = f.do(t, http.MethodGet, "/api/v1/stats?fresh=true", modToken, nil)
	require.Equal(t, http.StatusOK, status)
	stats := decode[model.SystemStats](t, env)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalProjects)
	assert.Equal(t, int64(1), stats.VerifiedUsersCount)
	assert.Equal(t, int64(0), stats.PendingVerifications)
}
