package converter

import (
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:                patient.ID,
		Login:             patient.Login,
		Email:             patient.Email,
		Name:              patient.Name,
		Phone:             patient.Phone,
		Role:              string(patient.Role),
		AvatarURL:         patient.AvatarURL,
		IsMessagesBlocked: patient.IsMessagesBlocked,
		RegistrationDate:  patient.RegistrationDate,
	}
}

// PatientToSummary returns nil for an unloaded association
func PatientToSummary(patient *entity.Patient) *dto.PatientSummary {
	if patient == nil || patient.Login == "" && patient.Name == "" {
		return nil
	}

	return &dto.PatientSummary{
		ID:                patient.ID,
		Name:              patient.Name,
		Email:             patient.Email,
		Phone:             patient.Phone,
		AvatarURL:         patient.AvatarURL,
		IsMessagesBlocked: patient.IsMessagesBlocked,
	}
}
