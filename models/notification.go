package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification channels and events
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"

	EventOrderConfirmed   = "order_confirmed"
	EventEngineerAssigned = "engineer_assigned"
	EventVisitReminder    = "visit_reminder"
	EventOrderCompleted   = "order_completed"
)

// NotificationSettings holds per-channel provider configuration and
// per-event toggles. One row per channel.
type NotificationSettings struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Channel string `gorm:"uniqueIndex;not null" json:"channel"` // sms or email
	Enabled bool   `gorm:"not null;default:false" json:"enabled"`

	// Sender identity: phone number for SMS, address for email
	SenderID string `json:"sender_id"`

	NotifyOrderConfirmed   bool `gorm:"not null;default:true" json:"notify_order_confirmed"`
	NotifyEngineerAssigned bool `gorm:"not null;default:true" json:"notify_engineer_assigned"`
	NotifyVisitReminder    bool `gorm:"not null;default:true" json:"notify_visit_reminder"`
	NotifyOrderCompleted   bool `gorm:"not null;default:true" json:"notify_order_completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the NotificationSettings model
func (NotificationSettings) TableName() string {
	return "notification_settings"
}

// EventEnabled reports whether notifications for the given event are on
func (s *NotificationSettings) EventEnabled(event string) bool {
	if !s.Enabled {
		return false
	}
	switch event {
	case EventOrderConfirmed:
		return s.NotifyOrderConfirmed
	case EventEngineerAssigned:
		return s.NotifyEngineerAssigned
	case EventVisitReminder:
		return s.NotifyVisitReminder
	case EventOrderCompleted:
		return s.NotifyOrderCompleted
	}
	return false
}

// NotificationLog records every notification attempt, sent or failed
type NotificationLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OrderID      uint      `gorm:"not null;index" json:"order_id"`
	Channel      string    `gorm:"not null" json:"channel"`
	Event        string    `gorm:"not null" json:"event"`
	Recipient    string    `gorm:"not null" json:"recipient"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	Status       string    `gorm:"not null" json:"status"` // sent or failed
	ErrorMessage string    `json:"error_message,omitempty"`
	SentAt       time.Time `json:"sent_at"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the NotificationLog model
func (NotificationLog) TableName() string {
	return "notification_logs"
}
