package converter

import (
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
)

func LettersToResponses(letters []entity.Letter) []dto.LetterResponse {
	responses := make([]dto.LetterResponse, 0, len(letters))
	for _, l := range letters {
		responses = append(responses, dto.LetterResponse{
			ID:                   l.ID,
			PatientID:            l.PatientID,
			Subject:              l.Subject,
			Text:                 l.Text,
			IsRead:               l.IsRead,
			HasNewPatientMessage: l.HasNewPatientMessage,
			CreatedAt:            l.CreatedAt,
		})
	}
	return responses
}

func FeedbackToResponse(feedback *entity.Feedback) *dto.FeedbackResponse {
	if feedback == nil {
		return nil
	}

	response := &dto.FeedbackResponse{
		ID:        feedback.ID,
		Name:      feedback.Name,
		Text:      feedback.Text,
		Date:      feedback.Date,
		Grade:     feedback.Grade,
		ImageURL:  feedback.ImageURL,
		Verified:  feedback.Verified,
		ServiceID: feedback.ServiceID,
	}
	if feedback.Service != nil {
		response.ServiceName = feedback.Service.Name
	}
	return response
}

func FeedbacksToResponses(feedbacks []entity.Feedback) []dto.FeedbackResponse {
	responses := make([]dto.FeedbackResponse, 0, len(feedbacks))
	for i := range feedbacks {
		responses = append(responses, *FeedbackToResponse(&feedbacks[i]))
	}
	return responses
}

func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	response := &dto.AuditLogResponse{
		ID:        log.ID,
		UserID:    log.UserID,
		Action:    log.Action,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
	if log.User != nil {
		response.UserName = log.User.Name
	}
	return response
}

func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, *AuditLogToResponse(&logs[i]))
	}
	return responses
}
