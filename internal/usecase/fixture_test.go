package usecase

import (
	"context"
	"testing"

	"clinic-backoffice/internal/delivery/http/middleware"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/repository"
	"clinic-backoffice/internal/service"
	"clinic-backoffice/internal/testutil"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type fixture struct {
	db  *gorm.DB
	log *logrus.Logger

	chats    *operatorChatUsecase
	patients *patientChatUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithDB(t, testutil.NewDB(t))
}

func newFixtureWithDB(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()

	log := testutil.NewLogger()
	audit := service.NewAuditService(log, repository.NewAuditLogRepository())

	chatRepo := repository.NewOperatorChatRepository()
	messageRepo := repository.NewChatMessageRepository()
	patientRepo := repository.NewPatientRepository()

	return &fixture{
		db:       db,
		log:      log,
		chats:    NewOperatorChatUsecase(db, log, chatRepo, messageRepo, patientRepo, audit).(*operatorChatUsecase),
		patients: NewPatientChatUsecase(db, log, chatRepo, messageRepo, patientRepo).(*patientChatUsecase),
	}
}

// as returns a context carrying an authenticated session with the account's role.
func as(p *entity.Patient) context.Context {
	ctx := middleware.WithSession(context.Background(), p.ID, p.Email, "token-"+p.Login)
	return middleware.WithRole(ctx, p.Role)
}

func createChat(t *testing.T, db *gorm.DB, patient *entity.Patient, status entity.ChatStatus) *entity.OperatorChat {
	t.Helper()

	chat := &entity.OperatorChat{PatientID: patient.ID, Status: status}
	if err := repository.NewOperatorChatRepository().Create(db, chat); err != nil {
		t.Fatalf("create chat: %v", err)
	}
	return chat
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
