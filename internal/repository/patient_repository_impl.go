package repository

import (
	"errors"

	"clinic-backoffice/internal/domain/entity"
	domainRepo "clinic-backoffice/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByLoginOrEmail(db *gorm.DB, loginOrEmail string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("login = ? OR email = ?", loginOrEmail, loginOrEmail).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) ExistsByLoginOrEmail(db *gorm.DB, login, email string) (bool, error) {
	var count int64
	err := db.Model(&entity.Patient{}).
		Where("login = ? OR email = ?", login, email).
		Count(&count).Error
	return count > 0, err
}

func (r *patientRepository) SetMessagesBlocked(db *gorm.DB, id uuid.UUID, blocked bool) (int64, error) {
	result := db.Model(&entity.Patient{}).
		Where("id = ?", id).
		Update("is_messages_blocked", blocked)
	return result.RowsAffected, result.Error
}
