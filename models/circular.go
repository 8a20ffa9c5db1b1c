package models

import "time"

// Circular is a department-wide notice published by the HOD and shown on
// every student dashboard, newest first.
type Circular struct {
	CircularID uint      `gorm:"primaryKey;column:circular_id" json:"circular_id"`
	Title      string    `gorm:"column:title" json:"title"`
	Content    string    `gorm:"column:content;type:text" json:"content"`
	PostedBy   string    `gorm:"column:posted_by" json:"posted_by"`
	DatePosted time.Time `gorm:"column:date_posted;autoCreateTime" json:"date_posted"`
}

func (Circular) TableName() string { return "circulars" }
