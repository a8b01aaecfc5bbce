package helper_test

import (
	"testing"

	"estate_market/constants"
	"estate_market/helper"
	"estate_market/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChatId(t *testing.T) {
	ref, err := helper.ParseChatId("community_7")
	require.NoError(t, err)
	assert.Equal(t, helper.ChatRef{Type: constants.CHAT_COMMUNITY, ProjectId: 7}, ref)

	ref, err = helper.ParseChatId(helper.SupportChatId(7, 12))
	require.NoError(t, err)
	assert.Equal(t, helper.ChatRef{Type: constants.CHAT_SUPPORT, ProjectId: 7, AccountId: 12}, ref)

	for _, bad := range []string{"", "community", "community_x", "support_1", "support_1_0", "group_1"} {
		_, err := helper.ParseChatId(bad)
		assert.ErrorIs(t, err, helper.ErrInvalidChatId, bad)
	}
}

func TestChatAccess(t *testing.T) {
	db := setupTestDB(t)
	w := seedWorld(t, db)
	stranger := createAccount(t, db, "stranger", constants.ROLE_BUYER)
	community := helper.ChatRef{Type: constants.CHAT_COMMUNITY, ProjectId: w.project.ID}
	support := helper.ChatRef{Type: constants.CHAT_SUPPORT, ProjectId: w.project.ID, AccountId: w.buyer.ID}

	read, write, err := helper.ChatAccess(db, w.owner, community)
	require.NoError(t, err)
	assert.True(t, read && write)

	read, _, err = helper.ChatAccess(db, w.buyer, community)
	require.NoError(t, err)
	assert.False(t, read)

	read, write, err = helper.ChatAccess(db, w.buyer, support)
	require.NoError(t, err)
	assert.True(t, read && write)

	read, _, err = helper.ChatAccess(db, stranger, support)
	require.NoError(t, err)
	assert.False(t, read)

	// a manager without the community permission only reads
	_, err = helper.AddManager(db, w.builder.ID, model.AddManagerInput{AccountId: stranger.ID})
	require.NoError(t, err)
	read, write, err = helper.ChatAccess(db, stranger, community)
	require.NoError(t, err)
	assert.True(t, read)
	assert.False(t, write)
}

func TestSupportChatAndMessages(t *testing.T) {
	db := setupTestDB(t)
	w := seedWorld(t, db)

	chatId, err := helper.StartSupportChat(db, w.project.ID, w.buyer)
	require.NoError(t, err)
	assert.Equal(t, helper.SupportChatId(w.project.ID, w.buyer.ID), chatId)

	again, err := helper.StartSupportChat(db, w.project.ID, w.buyer)
	require.NoError(t, err)
	assert.Equal(t, chatId, again)

	messages, err := helper.GetMessages(db, chatId, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Support Bot", messages[0].SenderName)

	sent, err := helper.SaveMessage(db, chatId, w.buyer, "Is 101 still free?", "")
	require.NoError(t, err)
	assert.Equal(t, "text", sent.Type)

	messages, err = helper.GetMessages(db, chatId, 0)
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	buyerSessions, err := helper.ListChatSessions(db, w.buyer)
	require.NoError(t, err)
	require.Len(t, buyerSessions, 1)
	assert.Equal(t, chatId, buyerSessions[0].ID)

	ownerSessions, err := helper.ListChatSessions(db, w.owner)
	require.NoError(t, err)
	ids := []string{}
	for _, s := range ownerSessions {
		ids = append(ids, s.ID)
	}
	assert.ElementsMatch(t, []string{helper.CommunityChatId(w.project.ID), chatId}, ids)
}
