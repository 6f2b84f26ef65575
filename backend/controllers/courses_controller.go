package controllers

import (
	"errors"
	"strconv"
	"strings"

	"educourse/backend/authz"
	"educourse/backend/config"
	"educourse/backend/models"
	"educourse/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

// ListCourses godoc
// @Summary List approved courses
// @Description Returns metadata of every approved course. Public.
// @Tags courses
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses [get]
func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := cc.DB.Where("status = ?", models.CourseStatusApproved).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch courses")
	}

	result := []fiber.Map{}
	for _, course := range courses {
		result = append(result, fiber.Map{
			"id":           course.ID,
			"title":        course.Title,
			"description":  course.Description,
			"thumbnail":    course.Thumbnail,
			"creator_name": course.CreatorName,
			"created_at":   course.CreatedAt,
		})
	}

	return c.JSON(result)
}

// GetCourseDetails godoc
// @Summary Course detail
// @Description Metadata for anyone when the course is approved; materials only
// @Description for signed-in callers. A pending course resolves to 404 unless
// @Description the caller owns it or is an admin.
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{id} [get]
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found or not approved")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	user := currentUser(c, cc.DB, cc.Cfg)
	caps := authz.For(user, &course)
	if !caps.ViewMetadata {
		// Typing a pending or rejected id straight into the URL must not
		// leak the underlying fields.
		return utils.NotFound(c, "Course not found or not approved")
	}

	response := fiber.Map{
		"id":               course.ID,
		"title":            course.Title,
		"description":      course.Description,
		"thumbnail":        course.Thumbnail,
		"creator_name":     course.CreatorName,
		"status":           course.Status,
		"created_at":       course.CreatedAt,
		"can_add_material": caps.AddMaterial,
	}

	if caps.ViewContent {
		var materials []models.Material
		if err := cc.DB.Where("course_id = ?", course.ID).
			Order("created_at asc").
			Find(&materials).Error; err != nil {
			return utils.InternalServerError(c, "Could not fetch materials")
		}
		response["materials"] = materials
	}

	return c.JSON(response)
}

// CreateCourse godoc
// @Summary Upload a new course
// @Description Creates a course in pending status. Thumbnail is required and
// @Description stored inline, capped at 700 KiB.
// @Tags courses
// @Accept mpfd
// @Produce json
// @Param title formData string true "Course title"
// @Param description formData string true "Short description"
// @Param thumbnail formData file true "Thumbnail image (max 700KB)"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	user := currentUser(c, cc.DB, cc.Cfg)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	title := strings.TrimSpace(c.FormValue("title"))
	description := strings.TrimSpace(c.FormValue("description"))
	if title == "" || description == "" {
		return utils.BadRequest(c, "Title and description are required")
	}

	fh, err := c.FormFile("thumbnail")
	if err != nil {
		return utils.BadRequest(c, "Thumbnail image is required")
	}

	thumbnail, err := utils.EncodeInlineFile(fh)
	if err != nil {
		if errors.Is(err, utils.ErrFileTooLarge) {
			return utils.BadRequest(c, "File too large. Maximum size is 700KB.")
		}
		return utils.InternalServerError(c, "Could not read uploaded file")
	}

	course := models.Course{
		Title:       title,
		Description: description,
		Thumbnail:   thumbnail,
		CreatorID:   user.ID,
		CreatorName: user.Username,
		Status:      models.CourseStatusPending,
	}
	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return utils.Created(c, fiber.Map{
		"id":     course.ID,
		"title":  course.Title,
		"status": course.Status,
	})
}
