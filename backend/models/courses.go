package models

import "gorm.io/gorm"

const (
	CourseStatusPending  = "pending"
	CourseStatusApproved = "approved"
	// Rejection is destructive: the record is deleted, never stored with a
	// rejected marker.
	CourseStatusRejected = "rejected"
)

type Course struct {
	gorm.Model
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Thumbnail   string     `gorm:"type:text" json:"thumbnail"` // inline data URI, bounded by utils.MaxInlineFileSize
	CreatorID   uint       `gorm:"index" json:"creator_id"`
	CreatorName string     `json:"creator_name"`
	Status      string     `gorm:"default:pending;index" json:"status"`
	Materials   []Material `json:"materials,omitempty"`
}

func (c *Course) IsApproved() bool {
	return c.Status == CourseStatusApproved
}
