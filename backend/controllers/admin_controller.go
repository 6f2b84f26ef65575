package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"educourse/backend/config"
	"educourse/backend/models"
	"educourse/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdminController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{DB: db, Cfg: cfg}
}

type DecideRequest struct {
	Outcome string `json:"outcome" validate:"required"`
}

// ListPendingCourses godoc
// @Summary Moderation queue
// @Description All courses awaiting an admin decision, oldest first.
// @Tags admin
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/courses/pending [get]
func (ac *AdminController) ListPendingCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := ac.DB.Where("status = ?", models.CourseStatusPending).
		Order("created_at asc").
		Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch pending courses")
	}
	return utils.Success(c, fiber.StatusOK, courses)
}

// DecideCourse godoc
// @Summary Decide a pending course
// @Description One-shot decision: approval persists the status, rejection
// @Description deletes the record outright. The response is authoritative;
// @Description clients drop the id from their queue only on success.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param input body DecideRequest true "approved or rejected"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/courses/{id}/decide [post]
func (ac *AdminController) DecideCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input DecideRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if details := utils.ValidateStruct(input); details != nil {
		return utils.ValidationError(c, details)
	}
	if input.Outcome != models.CourseStatusApproved && input.Outcome != models.CourseStatusRejected {
		return utils.BadRequest(c, "Outcome must be 'approved' or 'rejected'")
	}

	if err := ac.decide(uint(courseID), input.Outcome); err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			return utils.NotFound(c, "Course not found")
		case errors.Is(err, utils.ErrAlreadyDecided):
			return utils.Conflict(c, "Course has already been decided")
		default:
			return utils.InternalServerError(c, "Could not apply decision. Try again.")
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":      courseID,
		"outcome": input.Outcome,
	})
}

// decide applies the pending → approved|rejected transition. Approval updates
// the status in place; rejection hard-deletes the row so no trace remains.
func (ac *AdminController) decide(courseID uint, outcome string) error {
	var course models.Course
	if err := ac.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrNotFound
		}
		return fmt.Errorf("%w: %v", utils.ErrTransient, err)
	}

	if course.Status != models.CourseStatusPending {
		return utils.ErrAlreadyDecided
	}

	if outcome == models.CourseStatusApproved {
		if err := ac.DB.Model(&course).Update("status", models.CourseStatusApproved).Error; err != nil {
			return fmt.Errorf("%w: %v", utils.ErrTransient, err)
		}
		return nil
	}

	if err := ac.DB.Unscoped().Delete(&course).Error; err != nil {
		return fmt.Errorf("%w: %v", utils.ErrTransient, err)
	}
	return nil
}
