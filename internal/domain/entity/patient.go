package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient is the single account table: patients, operators, admins and the chief doctor.
type Patient struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Login             string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"login"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password          string    `gorm:"type:text;not null" json:"-"`
	Name              string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone             string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role              Role      `gorm:"type:varchar(20);not null;default:'PATIENT';index" json:"role"`
	AvatarURL         string    `gorm:"type:text" json:"avatar_url,omitempty"`
	IsMessagesBlocked bool      `gorm:"not null;default:false" json:"is_messages_blocked"`
	RegistrationDate  time.Time `gorm:"autoCreateTime" json:"registration_date"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
