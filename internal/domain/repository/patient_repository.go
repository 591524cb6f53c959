package repository

import (
	"clinic-backoffice/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindByLoginOrEmail(db *gorm.DB, loginOrEmail string) (*entity.Patient, error)
	ExistsByLoginOrEmail(db *gorm.DB, login, email string) (bool, error)
	SetMessagesBlocked(db *gorm.DB, id uuid.UUID, blocked bool) (int64, error)
}
