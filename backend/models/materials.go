package models

import "gorm.io/gorm"

const (
	MaterialTypeArticle = "article"
	MaterialTypePDF     = "pdf"
	MaterialTypeVideo   = "video"
	MaterialTypeImage   = "image"
)

// Material carries exactly one content representation: Content for articles,
// FileURL (an inline data URI) for everything else.
type Material struct {
	gorm.Model
	CourseID uint   `gorm:"index" json:"course_id"`
	Title    string `gorm:"not null" json:"title"`
	Type     string `gorm:"not null" json:"type"`
	Content  string `gorm:"type:text" json:"content,omitempty"`
	FileURL  string `gorm:"type:text" json:"file_url,omitempty"`
}

func ValidMaterialType(t string) bool {
	switch t {
	case MaterialTypeArticle, MaterialTypePDF, MaterialTypeVideo, MaterialTypeImage:
		return true
	}
	return false
}
