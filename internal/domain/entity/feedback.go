package entity

import "time"

// Feedback is a patient review. A nil ServiceID means a general clinic review.
type Feedback struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Grade     int       `gorm:"not null" json:"grade"`
	ImageURL  string    `gorm:"type:text" json:"image_url,omitempty"`
	Verified  bool      `gorm:"not null;default:false;index" json:"verified"`
	ServiceID *uint     `gorm:"index" json:"service_id,omitempty"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}

// FeedbackFilter narrows the moderation list.
type FeedbackFilter struct {
	Verified *bool
}
