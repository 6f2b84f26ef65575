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

type MaterialsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewMaterialsController(db *gorm.DB, cfg *config.Config) *MaterialsController {
	return &MaterialsController{DB: db, Cfg: cfg}
}

var errInvalidCourseID = errors.New("invalid course id")

// courseForEditor loads a course and checks that the caller may add materials
// to it. A caller who can see the course but not edit it gets
// ErrPermissionDenied; one who cannot see it at all gets ErrNotFound.
func (mc *MaterialsController) courseForEditor(c *fiber.Ctx, user *models.User) (*models.Course, error) {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, errInvalidCourseID
	}

	var course models.Course
	if err := mc.DB.First(&course, courseID).Error; err != nil {
		return nil, utils.ErrNotFound
	}
	if !authz.For(user, &course).AddMaterial {
		return nil, utils.ErrPermissionDenied
	}

	return &course, nil
}

func editorError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errInvalidCourseID):
		return utils.BadRequest(c, "Invalid course ID")
	case errors.Is(err, utils.ErrPermissionDenied):
		return utils.Forbidden(c, "Only the course owner or an admin can add materials")
	default:
		return utils.NotFound(c, "Course not found")
	}
}

// ListMaterials godoc
// @Summary List course materials
// @Description Materials of a course, signed-in callers only. A course the
// @Description caller may not view resolves to 404.
// @Tags materials
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {array} models.Material
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/materials [get]
func (mc *MaterialsController) ListMaterials(c *fiber.Ctx) error {
	user := currentUser(c, mc.DB, mc.Cfg)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := mc.DB.First(&course, courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found or not approved")
	}
	if !authz.For(user, &course).ViewContent {
		return utils.NotFound(c, "Course not found or not approved")
	}

	var materials []models.Material
	if err := mc.DB.Where("course_id = ?", course.ID).
		Order("created_at asc").
		Find(&materials).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch materials")
	}

	return c.JSON(materials)
}

// AddMaterial godoc
// @Summary Add a material to a course
// @Description Owner or admin only, regardless of the course's approval
// @Description status. Articles carry text content; every other type carries
// @Description an uploaded file, stored inline and capped at 700 KiB.
// @Tags materials
// @Accept mpfd
// @Produce json
// @Param id path int true "Course ID"
// @Param title formData string true "Material title"
// @Param type formData string true "article | pdf | video | image"
// @Param content formData string false "Article text (type=article)"
// @Param file formData file false "Attachment (other types, max 700KB)"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/materials [post]
func (mc *MaterialsController) AddMaterial(c *fiber.Ctx) error {
	user := currentUser(c, mc.DB, mc.Cfg)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	course, err := mc.courseForEditor(c, user)
	if err != nil {
		return editorError(c, err)
	}

	title := strings.TrimSpace(c.FormValue("title"))
	materialType := c.FormValue("type")
	if title == "" {
		return utils.BadRequest(c, "Title is required")
	}
	if !models.ValidMaterialType(materialType) {
		return utils.BadRequest(c, "Invalid material type")
	}

	material := models.Material{
		CourseID: course.ID,
		Title:    title,
		Type:     materialType,
	}

	// Exactly one content representation, selected by type.
	if materialType == models.MaterialTypeArticle {
		content := strings.TrimSpace(c.FormValue("content"))
		if content == "" {
			return utils.BadRequest(c, "Article content must not be empty")
		}
		material.Content = content
	} else {
		fh, err := c.FormFile("file")
		if err != nil {
			return utils.BadRequest(c, "A file is required for this material type")
		}
		fileURL, err := utils.EncodeInlineFile(fh)
		if err != nil {
			if errors.Is(err, utils.ErrFileTooLarge) {
				return utils.BadRequest(c, "File too large. Maximum size is 700KB.")
			}
			return utils.InternalServerError(c, "Could not read uploaded file")
		}
		material.FileURL = fileURL
	}

	if err := mc.DB.Create(&material).Error; err != nil {
		return utils.InternalServerError(c, "Could not create material")
	}

	return utils.Created(c, material)
}
