// Package authz holds the one authorization-decision function for the
// platform. Every handler asks For(user, course) instead of repeating
// role/ownership checks inline.
package authz

import "educourse/backend/models"

// Capabilities is what a caller may do with a given course.
type Capabilities struct {
	ViewMetadata bool // title, description, thumbnail, creator name
	ViewContent  bool // materials and their discussions
	AddMaterial  bool
	Moderate     bool
}

// For computes the capability set for a (possibly anonymous) caller and a
// course. user == nil means unauthenticated.
//
// Rules: anyone may see metadata of an approved course; only signed-in users
// see content; the owner and admins see their course in any status and may
// add materials regardless of approval; only admins moderate.
func For(user *models.User, course *models.Course) Capabilities {
	approved := course.IsApproved()

	if user == nil {
		return Capabilities{ViewMetadata: approved}
	}

	owner := user.ID == course.CreatorID
	admin := user.IsAdmin()
	visible := approved || owner || admin

	return Capabilities{
		ViewMetadata: visible,
		ViewContent:  visible,
		AddMaterial:  owner || admin,
		Moderate:     admin,
	}
}
