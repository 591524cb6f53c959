package usecase

import (
	"testing"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenChatReusesOpenConversation(t *testing.T) {
	f := newFixture(t)
	patient := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)

	first, err := f.patients.OpenChat(as(patient))
	require.NoError(t, err)
	assert.Equal(t, "WAITING", first.Chat.Status)

	second, err := f.patients.OpenChat(as(patient))
	require.NoError(t, err)
	assert.Equal(t, first.Chat.ID, second.Chat.ID)
	assert.Equal(t, int64(1), countRows(t, f.db, &entity.OperatorChat{}, ""))
}

func TestOpenChatAfterCloseStartsNewOne(t *testing.T) {
	f := newFixture(t)
	patient := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	closed := createChat(t, f.db, patient, entity.ChatStatusClosed)

	resp, err := f.patients.OpenChat(as(patient))
	require.NoError(t, err)
	assert.NotEqual(t, closed.ID, resp.Chat.ID)
	assert.Equal(t, "WAITING", resp.Chat.Status)
}

func TestPatientSendMessage(t *testing.T) {
	f := newFixture(t)
	patient := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)

	_, err := f.patients.SendMessage(as(patient), &dto.SendMessageRequest{Content: "  "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Zero(t, countRows(t, f.db, &entity.OperatorChat{}, ""))

	msg, err := f.patients.SendMessage(as(patient), &dto.SendMessageRequest{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "patient", msg.SenderType)

	var chat entity.OperatorChat
	require.NoError(t, f.db.First(&chat, msg.ChatID).Error)
	assert.True(t, chat.HasUnreadOperator)
	assert.False(t, chat.HasUnreadPatient)
}

func TestBlockedPatientCannotOpenChat(t *testing.T) {
	f := newFixture(t)
	patient := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	require.NoError(t, f.db.Model(patient).Update("is_messages_blocked", true).Error)

	_, err := f.patients.OpenChat(as(patient))
	assert.ErrorIs(t, err, ErrMessagesBlocked)
	assert.Zero(t, countRows(t, f.db, &entity.OperatorChat{}, ""))
}

func TestGetMyChatClearsPatientUnread(t *testing.T) {
	f := newFixture(t)
	patient := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	operator := testutil.CreatePatient(t, f.db, "op", entity.RoleOperator)

	_, err := f.patients.GetMyChat(as(patient))
	assert.ErrorIs(t, err, ErrNoOpenChat)

	opened, err := f.patients.OpenChat(as(patient))
	require.NoError(t, err)
	_, err = f.chats.SendMessage(as(operator), opened.Chat.ID, &dto.SendMessageRequest{Content: "How can I help?"})
	require.NoError(t, err)

	mine, err := f.patients.GetMyChat(as(patient))
	require.NoError(t, err)
	assert.False(t, mine.Chat.HasUnreadPatient)
	require.Len(t, mine.Chat.Messages, 1)
	assert.True(t, mine.Chat.Messages[0].IsRead)
}
