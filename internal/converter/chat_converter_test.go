package converter

import (
	"testing"

	"clinic-backoffice/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestChatToResponseWithoutAssociations(t *testing.T) {
	chat := &entity.OperatorChat{ID: 3, PatientID: uuid.New(), Status: entity.ChatStatusWaiting}

	resp := ChatToResponse(chat)

	assert.Equal(t, "WAITING", resp.Status)
	assert.Nil(t, resp.Patient)
	assert.Nil(t, resp.Operator)
	assert.Nil(t, resp.Messages)
}

func TestChatToResponseWithPatientAndMessages(t *testing.T) {
	patient := entity.Patient{ID: uuid.New(), Login: "anna", Name: "Anna", IsMessagesBlocked: true}
	chat := &entity.OperatorChat{
		ID:        3,
		PatientID: patient.ID,
		Status:    entity.ChatStatusActive,
		Patient:   patient,
		Messages: []entity.ChatMessage{
			{ID: 1, ChatID: 3, SenderType: entity.SenderPatient, Content: "hi"},
		},
	}

	resp := ChatToResponse(chat)

	if assert.NotNil(t, resp.Patient) {
		assert.True(t, resp.Patient.IsMessagesBlocked)
	}
	assert.Len(t, resp.Messages, 1)
	assert.Equal(t, "patient", resp.Messages[0].SenderType)
}
