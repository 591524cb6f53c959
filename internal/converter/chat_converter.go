package converter

import (
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
)

func ChatMessageToResponse(message *entity.ChatMessage) *dto.ChatMessageResponse {
	if message == nil {
		return nil
	}

	return &dto.ChatMessageResponse{
		ID:         message.ID,
		ChatID:     message.ChatID,
		SenderID:   message.SenderID,
		SenderType: string(message.SenderType),
		Content:    message.Content,
		CreatedAt:  message.CreatedAt,
		IsRead:     message.IsRead,
	}
}

func ChatMessagesToResponses(messages []entity.ChatMessage) []dto.ChatMessageResponse {
	responses := make([]dto.ChatMessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, *ChatMessageToResponse(&messages[i]))
	}
	return responses
}

// ChatToResponse converts an OperatorChat with whatever associations were preloaded.
func ChatToResponse(chat *entity.OperatorChat) *dto.ChatResponse {
	if chat == nil {
		return nil
	}

	response := &dto.ChatResponse{
		ID:                chat.ID,
		PatientID:         chat.PatientID,
		OperatorID:        chat.OperatorID,
		Status:            string(chat.Status),
		CreatedAt:         chat.CreatedAt,
		UpdatedAt:         chat.UpdatedAt,
		LastMessageAt:     chat.LastMessageAt,
		HasUnreadOperator: chat.HasUnreadOperator,
		HasUnreadPatient:  chat.HasUnreadPatient,
		Patient:           PatientToSummary(&chat.Patient),
		Operator:          PatientToSummary(chat.Operator),
	}

	if chat.Messages != nil {
		response.Messages = ChatMessagesToResponses(chat.Messages)
	}

	return response
}

func ChatsToResponses(chats []entity.OperatorChat) []dto.ChatResponse {
	responses := make([]dto.ChatResponse, 0, len(chats))
	for i := range chats {
		responses = append(responses, *ChatToResponse(&chats[i]))
	}
	return responses
}
