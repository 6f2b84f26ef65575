package controllers

import (
	"educourse/backend/config"
	"educourse/backend/models"
	"educourse/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// currentUser resolves the caller from the Authorization header. Returns nil
// for anonymous or unresolvable callers; routes that require a signed-in user
// are additionally guarded by the auth middleware.
func currentUser(c *fiber.Ctx, db *gorm.DB, cfg *config.Config) *models.User {
	userID, err := utils.ExtractUserIDFromToken(c, cfg)
	if err != nil {
		return nil
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil
	}
	return &user
}
