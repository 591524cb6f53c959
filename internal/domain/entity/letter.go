package entity

import (
	"time"

	"github.com/google/uuid"
)

// Letter is a message addressed to the chief doctor.
type Letter struct {
	ID                   uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID            *uuid.UUID `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	Subject              string     `gorm:"type:varchar(255)" json:"subject"`
	Text                 string     `gorm:"type:text" json:"text"`
	IsRead               bool       `gorm:"not null;default:false;index" json:"is_read"`
	HasNewPatientMessage bool       `gorm:"not null;default:false" json:"has_new_patient_message"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Letter) TableName() string {
	return "letters"
}
