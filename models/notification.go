package models

import "time"

// Notification is an in-app copy of a dispatched message, shown on the
// recipient's dashboard bell.
type Notification struct {
	NotificationID   uint       `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	UserID           uint       `gorm:"column:user_id;index" json:"user_id"`
	Title            string     `gorm:"column:title" json:"title"`
	Message          string     `gorm:"column:message;type:text" json:"message"`
	Type             string     `gorm:"column:type" json:"type"` // info|success|warning|error
	RelatedRequestID *uint      `gorm:"column:related_request_id" json:"related_request_id,omitempty"`
	IsRead           bool       `gorm:"column:is_read" json:"is_read"`
	CreateAt         time.Time  `gorm:"column:create_at;autoCreateTime" json:"created_at"`
	UpdateAt         *time.Time `gorm:"column:update_at;autoUpdateTime" json:"-"`
}

func (Notification) TableName() string { return "notifications" }
