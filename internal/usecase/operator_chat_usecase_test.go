package usecase

import (
	"sync"
	"testing"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeChat(t *testing.T) {
	f := newFixture(t)
	patient := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	operatorA := testutil.CreatePatient(t, f.db, "op-a", entity.RoleOperator)
	operatorB := testutil.CreatePatient(t, f.db, "op-b", entity.RoleOperator)
	chat := createChat(t, f.db, patient, entity.ChatStatusWaiting)

	resp, err := f.chats.UpdateChat(as(operatorA), chat.ID, &dto.UpdateChatRequest{Action: "take"})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", resp.Chat.Status)
	require.NotNil(t, resp.Chat.OperatorID)
	assert.Equal(t, operatorA.ID, *resp.Chat.OperatorID)

	_, err = f.chats.UpdateChat(as(operatorB), chat.ID, &dto.UpdateChatRequest{Action: "take"})
	assert.ErrorIs(t, err, ErrChatAlreadyTaken)

	var stored entity.OperatorChat
	require.NoError(t, f.db.First(&stored, chat.ID).Error)
	assert.Equal(t, operatorA.ID, *stored.OperatorID)
	assert.Equal(t, int64(1), countRows(t, f.db, &entity.AuditLog{}, "action = ?", entity.AuditActionChatTake))
}

func TestConcurrentTakeHasOneWinner(t *testing.T) {
	f := newFixtureWithDB(t, testutil.NewFileDB(t))
	patient := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	operators := []*entity.Patient{
		testutil.CreatePatient(t, f.db, "op-a", entity.RoleOperator),
		testutil.CreatePatient(t, f.db, "op-b", entity.RoleOperator),
	}
	chat := createChat(t, f.db, patient, entity.ChatStatusWaiting)

	errs := make([]error, len(operators))
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, op := range operators {
		wg.Add(1)
		go func(i int, op *entity.Patient) {
			defer wg.Done()
			<-start
			_, errs[i] = f.chats.UpdateChat(as(op), chat.ID, &dto.UpdateChatRequest{Action: "take"})
		}(i, op)
	}
	close(start)
	wg.Wait()

	winner := -1
	for i, err := range errs {
		if err == nil {
			require.Equal(t, -1, winner, "both takes succeeded")
			winner = i
			continue
		}
		assert.ErrorIs(t, err, ErrChatAlreadyTaken)
	}
	require.NotEqual(t, -1, winner, "no take succeeded")

	var stored entity.OperatorChat
	require.NoError(t, f.db.First(&stored, chat.ID).Error)
	assert.Equal(t, entity.ChatStatusActive, stored.Status)
	require.NotNil(t, stored.OperatorID)
	assert.Equal(t, operators[winner].ID, *stored.OperatorID)
	assert.Equal(t, int64(1), countRows(t, f.db, &entity.AuditLog{}, "action = ?", entity.AuditActionChatTake))
}

func TestTakeChatNotFound(t *testing.T) {
	f := newFixture(t)
	operator := testutil.CreatePatient(t, f.db, "op", entity.RoleOperator)

	_, err := f.chats.UpdateChat(as(operator), 404, &dto.UpdateChatRequest{Action: "take"})
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestCloseChatIsTerminal(t *testing.T) {
	f := newFixture(t)
	patient := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	operator := testutil.CreatePatient(t, f.db, "op", entity.RoleOperator)
	chat := createChat(t, f.db, patient, entity.ChatStatusActive)

	resp, err := f.chats.UpdateChat(as(operator), chat.ID, &dto.UpdateChatRequest{Status: "CLOSED"})
	require.NoError(t, err)
	assert.Equal(t, "CLOSED", resp.Chat.Status)

	_, err = f.chats.UpdateChat(as(operator), chat.ID, &dto.UpdateChatRequest{Status: "CLOSED"})
	assert.ErrorIs(t, err, ErrChatAlreadyClosed)

	_, err = f.chats.UpdateChat(as(operator), chat.ID, &dto.UpdateChatRequest{Action: "take"})
	assert.ErrorIs(t, err, ErrChatAlreadyTaken)

	for _, status := range []string{"ACTIVE", "WAITING"} {
		_, err = f.chats.UpdateChat(as(operator), chat.ID, &dto.UpdateChatRequest{Status: status})
		assert.ErrorIs(t, err, ErrInvalidChatAction)
	}

	var stored entity.OperatorChat
	require.NoError(t, f.db.First(&stored, chat.ID).Error)
	assert.Equal(t, entity.ChatStatusClosed, stored.Status)
}

func TestUpdateChatRejectsUnknownAction(t *testing.T) {
	f := newFixture(t)
	patient := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	operator := testutil.CreatePatient(t, f.db, "op", entity.RoleOperator)
	chat := createChat(t, f.db, patient, entity.ChatStatusWaiting)

	_, err := f.chats.UpdateChat(as(operator), chat.ID, &dto.UpdateChatRequest{Action: "reopen"})
	assert.ErrorIs(t, err, ErrInvalidChatAction)

	_, err = f.chats.UpdateChat(as(operator), chat.ID, &dto.UpdateChatRequest{})
	assert.ErrorIs(t, err, ErrInvalidChatAction)

	_, err = f.chats.UpdateChat(as(operator), chat.ID, &dto.UpdateChatRequest{Action: "take", Status: "CLOSED"})
	assert.ErrorIs(t, err, ErrInvalidChatAction)

	var stored entity.OperatorChat
	require.NoError(t, f.db.First(&stored, chat.ID).Error)
	assert.Equal(t, entity.ChatStatusWaiting, stored.Status)
	assert.Nil(t, stored.OperatorID)
}

func TestSendMessageRejectsBlankContent(t *testing.T) {
	f := newFixture(t)
	patient := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	operator := testutil.CreatePatient(t, f.db, "op", entity.RoleOperator)
	chat := createChat(t, f.db, patient, entity.ChatStatusActive)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := f.chats.SendMessage(as(operator), chat.ID, &dto.SendMessageRequest{Content: content})
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}

	assert.Zero(t, countRows(t, f.db, &entity.ChatMessage{}, ""))
}

func TestSendMessageFlagsPatientUnread(t *testing.T) {
	f := newFixture(t)
	patient := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	operator := testutil.CreatePatient(t, f.db, "op", entity.RoleOperator)
	chat := createChat(t, f.db, patient, entity.ChatStatusActive)

	msg, err := f.chats.SendMessage(as(operator), chat.ID, &dto.SendMessageRequest{Content: "  Hello  "})
	require.NoError(t, err)
	assert.Equal(t, "Hello", msg.Content)
	assert.Equal(t, "operator", msg.SenderType)
	assert.Equal(t, operator.ID, msg.SenderID)

	var stored entity.OperatorChat
	require.NoError(t, f.db.First(&stored, chat.ID).Error)
	assert.True(t, stored.HasUnreadPatient)
	assert.False(t, stored.HasUnreadOperator)
	require.NotNil(t, stored.LastMessageAt)
}

func TestSendMessageToClosedChat(t *testing.T) {
	f := newFixture(t)
	patient := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	operator := testutil.CreatePatient(t, f.db, "op", entity.RoleOperator)
	chat := createChat(t, f.db, patient, entity.ChatStatusClosed)

	_, err := f.chats.SendMessage(as(operator), chat.ID, &dto.SendMessageRequest{Content: "late"})
	assert.ErrorIs(t, err, ErrChatClosed)

	_, err = f.chats.SendMessage(as(operator), 999, &dto.SendMessageRequest{Content: "nobody"})
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestGetChatMarksPatientMessagesRead(t *testing.T) {
	f := newFixture(t)
	patient := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	operator := testutil.CreatePatient(t, f.db, "op", entity.RoleOperator)

	_, err := f.patients.SendMessage(as(patient), &dto.SendMessageRequest{Content: "first"})
	require.NoError(t, err)
	_, err = f.patients.SendMessage(as(patient), &dto.SendMessageRequest{Content: "second"})
	require.NoError(t, err)

	list, err := f.chats.ListChats(as(operator), "")
	require.NoError(t, err)
	require.Len(t, list.Chats, 1)
	assert.True(t, list.Chats[0].HasUnreadOperator)

	detail, err := f.chats.GetChat(as(operator), list.Chats[0].ID)
	require.NoError(t, err)
	assert.False(t, detail.Chat.HasUnreadOperator)
	require.Len(t, detail.Chat.Messages, 2)
	assert.Equal(t, "first", detail.Chat.Messages[0].Content)
	assert.Equal(t, "second", detail.Chat.Messages[1].Content)
	assert.True(t, detail.Chat.Messages[0].IsRead)
	require.NotNil(t, detail.Chat.Patient)
	assert.False(t, detail.Chat.Patient.IsMessagesBlocked)

	assert.Zero(t, countRows(t, f.db, &entity.ChatMessage{}, "is_read = ?", false))
	assert.Zero(t, countRows(t, f.db, &entity.OperatorChat{}, "has_unread_operator = ?", true))

	_, err = f.chats.GetChat(as(operator), 12345)
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestListChatsFilterAndOrder(t *testing.T) {
	f := newFixture(t)
	anna := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	boris := testutil.CreatePatient(t, f.db, "boris", entity.RolePatient)
	operator := testutil.CreatePatient(t, f.db, "op", entity.RoleOperator)

	createChat(t, f.db, anna, entity.ChatStatusClosed)
	_, err := f.patients.SendMessage(as(anna), &dto.SendMessageRequest{Content: "anna here"})
	require.NoError(t, err)
	_, err = f.patients.SendMessage(as(boris), &dto.SendMessageRequest{Content: "boris here"})
	require.NoError(t, err)

	all, err := f.chats.ListChats(as(operator), "")
	require.NoError(t, err)
	require.Equal(t, 3, all.Total)
	assert.Equal(t, boris.ID, all.Chats[0].PatientID)
	assert.Equal(t, anna.ID, all.Chats[1].PatientID)
	assert.Nil(t, all.Chats[2].LastMessageAt)

	waiting, err := f.chats.ListChats(as(operator), "waiting")
	require.NoError(t, err)
	assert.Equal(t, 2, waiting.Total)

	_, err = f.chats.ListChats(as(operator), "ARCHIVED")
	assert.ErrorIs(t, err, ErrInvalidChatStatus)
}

func TestBlockPatientPurgesAllChats(t *testing.T) {
	f := newFixture(t)
	anna := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	boris := testutil.CreatePatient(t, f.db, "boris", entity.RolePatient)
	admin := testutil.CreatePatient(t, f.db, "admin", entity.RoleAdmin)

	closed := createChat(t, f.db, anna, entity.ChatStatusClosed)
	_, err := f.chats.SendMessage(as(admin), closed.ID, &dto.SendMessageRequest{Content: "x"})
	require.ErrorIs(t, err, ErrChatClosed)
	_, err = f.patients.SendMessage(as(anna), &dto.SendMessageRequest{Content: "help"})
	require.NoError(t, err)
	_, err = f.patients.SendMessage(as(boris), &dto.SendMessageRequest{Content: "other"})
	require.NoError(t, err)

	resp, err := f.chats.SetPatientBlocked(as(admin), closed.ID, &dto.BlockPatientRequest{Action: "block"})
	require.NoError(t, err)
	assert.True(t, resp.IsMessagesBlocked)
	assert.Equal(t, int64(2), resp.DeletedChats)

	assert.Zero(t, countRows(t, f.db, &entity.OperatorChat{}, "patient_id = ?", anna.ID))
	assert.Zero(t, countRows(t, f.db, &entity.ChatMessage{}, "sender_id = ?", anna.ID))
	assert.Equal(t, int64(1), countRows(t, f.db, &entity.OperatorChat{}, "patient_id = ?", boris.ID))
	assert.Equal(t, int64(1), countRows(t, f.db, &entity.ChatMessage{}, "sender_id = ?", boris.ID))

	var stored entity.Patient
	require.NoError(t, f.db.First(&stored, "id = ?", anna.ID).Error)
	assert.True(t, stored.IsMessagesBlocked)

	assert.Equal(t, int64(1), countRows(t, f.db, &entity.AuditLog{}, "action = ?", entity.AuditActionPatientBlock))
	assert.Equal(t, int64(1), countRows(t, f.db, &entity.AuditLog{}, "action = ?", entity.AuditActionChatsPurge))

	_, err = f.patients.SendMessage(as(anna), &dto.SendMessageRequest{Content: "again"})
	assert.ErrorIs(t, err, ErrMessagesBlocked)
	assert.Zero(t, countRows(t, f.db, &entity.OperatorChat{}, "patient_id = ?", anna.ID))
}

func TestUnblockPatientDoesNotRestoreChats(t *testing.T) {
	f := newFixture(t)
	anna := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	operator := testutil.CreatePatient(t, f.db, "op", entity.RoleOperator)

	sent, err := f.patients.SendMessage(as(anna), &dto.SendMessageRequest{Content: "hi"})
	require.NoError(t, err)
	chatID := sent.ChatID

	_, err = f.chats.SetPatientBlocked(as(operator), chatID, &dto.BlockPatientRequest{Action: "block"})
	require.NoError(t, err)

	visible, err := f.chats.ListChats(as(operator), "")
	require.NoError(t, err)
	assert.Zero(t, visible.Total)

	// the chat id died with the purge
	_, err = f.chats.SetPatientBlocked(as(operator), chatID, &dto.BlockPatientRequest{Action: "unblock"})
	assert.ErrorIs(t, err, ErrChatNotFound)

	resp, err := f.chats.SetPatientBlockedByID(as(operator), anna.ID, &dto.BlockPatientRequest{Action: "unblock"})
	require.NoError(t, err)
	assert.False(t, resp.IsMessagesBlocked)
	assert.Zero(t, resp.DeletedChats)
	assert.Zero(t, countRows(t, f.db, &entity.OperatorChat{}, "patient_id = ?", anna.ID))
	assert.Equal(t, int64(1), countRows(t, f.db, &entity.AuditLog{}, "action = ?", entity.AuditActionPatientUnblock))

	var stored entity.Patient
	require.NoError(t, f.db.First(&stored, "id = ?", anna.ID).Error)
	assert.False(t, stored.IsMessagesBlocked)

	_, err = f.patients.SendMessage(as(anna), &dto.SendMessageRequest{Content: "back again"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), countRows(t, f.db, &entity.OperatorChat{}, "patient_id = ?", anna.ID))
}

func TestSetPatientBlockedByID(t *testing.T) {
	f := newFixture(t)
	anna := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	operator := testutil.CreatePatient(t, f.db, "op", entity.RoleOperator)
	createChat(t, f.db, anna, entity.ChatStatusWaiting)
	createChat(t, f.db, anna, entity.ChatStatusClosed)

	resp, err := f.chats.SetPatientBlockedByID(as(operator), anna.ID, &dto.BlockPatientRequest{Action: "block"})
	require.NoError(t, err)
	assert.True(t, resp.IsMessagesBlocked)
	assert.Equal(t, int64(2), resp.DeletedChats)
	assert.Zero(t, countRows(t, f.db, &entity.OperatorChat{}, "patient_id = ?", anna.ID))

	_, err = f.chats.SetPatientBlockedByID(as(operator), uuid.New(), &dto.BlockPatientRequest{Action: "unblock"})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = f.chats.SetPatientBlockedByID(as(operator), operator.ID, &dto.BlockPatientRequest{Action: "block"})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = f.chats.SetPatientBlockedByID(as(operator), anna.ID, &dto.BlockPatientRequest{Action: "mute"})
	assert.ErrorIs(t, err, ErrInvalidBlockState)
}

func TestSetPatientBlockedRejectsUnknownAction(t *testing.T) {
	f := newFixture(t)
	anna := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	operator := testutil.CreatePatient(t, f.db, "op", entity.RoleOperator)
	chat := createChat(t, f.db, anna, entity.ChatStatusWaiting)

	_, err := f.chats.SetPatientBlocked(as(operator), chat.ID, &dto.BlockPatientRequest{Action: "ban"})
	assert.ErrorIs(t, err, ErrInvalidBlockState)
	assert.Equal(t, int64(1), countRows(t, f.db, &entity.OperatorChat{}, ""))
}

func TestDeleteChatIsolation(t *testing.T) {
	f := newFixture(t)
	anna := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	boris := testutil.CreatePatient(t, f.db, "boris", entity.RolePatient)
	operator := testutil.CreatePatient(t, f.db, "op", entity.RoleOperator)

	_, err := f.patients.SendMessage(as(anna), &dto.SendMessageRequest{Content: "a1"})
	require.NoError(t, err)
	_, err = f.patients.SendMessage(as(boris), &dto.SendMessageRequest{Content: "b1"})
	require.NoError(t, err)

	annaChat, err := f.patients.GetMyChat(as(anna))
	require.NoError(t, err)

	require.NoError(t, f.chats.DeleteChat(as(operator), annaChat.Chat.ID))

	assert.Zero(t, countRows(t, f.db, &entity.OperatorChat{}, "id = ?", annaChat.Chat.ID))
	assert.Zero(t, countRows(t, f.db, &entity.ChatMessage{}, "chat_id = ?", annaChat.Chat.ID))
	assert.Equal(t, int64(1), countRows(t, f.db, &entity.OperatorChat{}, ""))
	assert.Equal(t, int64(1), countRows(t, f.db, &entity.ChatMessage{}, ""))
	assert.Equal(t, int64(1), countRows(t, f.db, &entity.AuditLog{}, "action = ?", entity.AuditActionChatDelete))

	assert.ErrorIs(t, f.chats.DeleteChat(as(operator), annaChat.Chat.ID), ErrChatNotFound)
}

func TestChatLifecycleEndToEnd(t *testing.T) {
	f := newFixture(t)
	patient := testutil.CreatePatient(t, f.db, "anna", entity.RolePatient)
	operator := testutil.CreatePatient(t, f.db, "op-a", entity.RoleOperator)

	opened, err := f.patients.SendMessage(as(patient), &dto.SendMessageRequest{Content: "I need help"})
	require.NoError(t, err)
	chatID := opened.ChatID

	taken, err := f.chats.UpdateChat(as(operator), chatID, &dto.UpdateChatRequest{Action: "take"})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", taken.Chat.Status)
	assert.Equal(t, operator.ID, *taken.Chat.OperatorID)

	_, err = f.chats.SendMessage(as(operator), chatID, &dto.SendMessageRequest{Content: "Hello"})
	require.NoError(t, err)

	detail, err := f.chats.GetChat(as(operator), chatID)
	require.NoError(t, err)
	require.Len(t, detail.Chat.Messages, 2)
	assert.Equal(t, "I need help", detail.Chat.Messages[0].Content)
	assert.Equal(t, "Hello", detail.Chat.Messages[1].Content)
	assert.Equal(t, "operator", detail.Chat.Messages[1].SenderType)

	closed, err := f.chats.UpdateChat(as(operator), chatID, &dto.UpdateChatRequest{Status: "CLOSED"})
	require.NoError(t, err)
	assert.Equal(t, "CLOSED", closed.Chat.Status)

	_, err = f.chats.SendMessage(as(operator), chatID, &dto.SendMessageRequest{Content: "one more"})
	assert.ErrorIs(t, err, ErrChatClosed)
	assert.Equal(t, int64(2), countRows(t, f.db, &entity.ChatMessage{}, "chat_id = ?", chatID))
}
