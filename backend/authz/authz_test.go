package authz_test

import (
	"testing"

	"educourse/backend/authz"
	"educourse/backend/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func user(id uint, role string) *models.User {
	return &models.User{Model: gorm.Model{ID: id}, Username: "u", Role: role}
}

func course(creatorID uint, status string) *models.Course {
	return &models.Course{Model: gorm.Model{ID: 10}, CreatorID: creatorID, Status: status}
}

func TestCapabilities(t *testing.T) {
	tests := []struct {
		name   string
		user   *models.User
		course *models.Course
		want   authz.Capabilities
	}{
		{
			name:   "anonymous sees approved metadata only",
			user:   nil,
			course: course(1, models.CourseStatusApproved),
			want:   authz.Capabilities{ViewMetadata: true},
		},
		{
			name:   "anonymous sees nothing of a pending course",
			user:   nil,
			course: course(1, models.CourseStatusPending),
			want:   authz.Capabilities{},
		},
		{
			name:   "signed-in stranger gets full approved content",
			user:   user(2, models.RoleUser),
			course: course(1, models.CourseStatusApproved),
			want:   authz.Capabilities{ViewMetadata: true, ViewContent: true},
		},
		{
			name:   "signed-in stranger blocked from a pending course",
			user:   user(2, models.RoleUser),
			course: course(1, models.CourseStatusPending),
			want:   authz.Capabilities{},
		},
		{
			name:   "owner sees and extends own pending course",
			user:   user(1, models.RoleUser),
			course: course(1, models.CourseStatusPending),
			want:   authz.Capabilities{ViewMetadata: true, ViewContent: true, AddMaterial: true},
		},
		{
			name:   "owner cannot moderate",
			user:   user(1, models.RoleUser),
			course: course(1, models.CourseStatusApproved),
			want:   authz.Capabilities{ViewMetadata: true, ViewContent: true, AddMaterial: true},
		},
		{
			name:   "admin gets everything on any status",
			user:   user(3, models.RoleAdmin),
			course: course(1, models.CourseStatusPending),
			want:   authz.Capabilities{ViewMetadata: true, ViewContent: true, AddMaterial: true, Moderate: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, authz.For(tt.user, tt.course))
		})
	}
}
