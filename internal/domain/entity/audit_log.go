package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog records destructive or moderating actions taken by staff
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	User *Patient `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditLogFilter narrows the audit trail. Zero values match everything.
type AuditLogFilter struct {
	Action  string
	ActorID *uuid.UUID
	Limit   int
}

// JSON is a string-keyed document stored as jsonb.
type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("audit metadata: unsupported source type %T", value)
	}

	doc := map[string]interface{}{}
	if err := json.Unmarshal(bytes, &doc); err != nil {
		return err
	}
	*j = doc
	return nil
}

const (
	AuditActionChatTake       = "chat.take"
	AuditActionChatClose      = "chat.close"
	AuditActionChatDelete     = "chat.delete"
	AuditActionPatientBlock   = "patient.block"
	AuditActionPatientUnblock = "patient.unblock"
	AuditActionChatsPurge     = "patient.chats_purge"
	AuditActionFeedbackVerify = "feedback.verify"
	AuditActionFeedbackDelete = "feedback.delete"
	AuditActionLettersRead    = "letters.mark_all_read"
	AuditActionCategoryCreate = "category.create"
	AuditActionCategoryUpdate = "category.update"
	AuditActionCategoryDelete = "category.delete"
)
