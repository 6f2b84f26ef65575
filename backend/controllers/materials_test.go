package controllers_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestAddMaterialOwnerOnPendingCourse(t *testing.T) {
	// No approval gate for the owner: materials can be added while the
	// course is still pending.
	courseID := createCourse(t, "Owner adds early", creatorToken)

	resp, result := doMultipart(t, fmt.Sprintf("/api/courses/%d/materials", courseID),
		map[string]string{"title": "Draft notes", "type": "article", "content": "draft text"},
		"", "", nil, creatorToken)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, "article", data["type"])
	assert.Equal(t, "draft text", data["content"])
}

func TestAddMaterialAdminOnAnyCourse(t *testing.T) {
	courseID := createCourse(t, "Admin assists", creatorToken)

	resp, _ := doMultipart(t, fmt.Sprintf("/api/courses/%d/materials", courseID),
		map[string]string{"title": "Admin notes", "type": "article", "content": "text"},
		"", "", nil, adminToken)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestAddMaterialForbiddenForStranger(t *testing.T) {
	courseID := createCourse(t, "Keep out", creatorToken)
	approveCourse(t, courseID)

	resp, _ := doMultipart(t, fmt.Sprintf("/api/courses/%d/materials", courseID),
		map[string]string{"title": "Intruder", "type": "article", "content": "text"},
		"", "", nil, viewerToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAddMaterialContentRules(t *testing.T) {
	courseID := createCourse(t, "Content rules", creatorToken)
	base := fmt.Sprintf("/api/courses/%d/materials", courseID)

	// Article needs non-empty text.
	resp, _ := doMultipart(t, base,
		map[string]string{"title": "Empty article", "type": "article", "content": "   "},
		"", "", nil, creatorToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// File types need a file.
	resp, _ = doMultipart(t, base,
		map[string]string{"title": "No file", "type": "image"},
		"", "", nil, creatorToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Unknown type is rejected outright.
	resp, _ = doMultipart(t, base,
		map[string]string{"title": "Bad type", "type": "podcast", "content": "x"},
		"", "", nil, creatorToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAddMaterialWithFileStoresDataURI(t *testing.T) {
	courseID := createCourse(t, "With image", creatorToken)

	resp, result := doMultipart(t, fmt.Sprintf("/api/courses/%d/materials", courseID),
		map[string]string{"title": "Diagram", "type": "image"},
		"file", "diagram.png", []byte("png bytes"), creatorToken)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := result["data"].(map[string]interface{})
	fileURL := data["file_url"].(string)
	assert.True(t, strings.HasPrefix(fileURL, "data:"))
	assert.Contains(t, fileURL, ";base64,")
	assert.Empty(t, data["content"])
}

func TestListMaterialsRequiresSignIn(t *testing.T) {
	courseID := createCourse(t, "Members only", creatorToken)
	approveCourse(t, courseID)
	addArticle(t, courseID, "Lesson", creatorToken)
	path := fmt.Sprintf("/api/courses/%d/materials", courseID)

	resp, _ := doJSON(t, "GET", path, nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, "GET", path, nil, viewerToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestListMaterialsHidesUnapprovedCourse(t *testing.T) {
	courseID := createCourse(t, "Still pending", creatorToken)
	addArticle(t, courseID, "Lesson", creatorToken)
	path := fmt.Sprintf("/api/courses/%d/materials", courseID)

	// Stranger gets not-found, owner gets the list.
	resp, _ := doJSON(t, "GET", path, nil, viewerToken)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, "GET", path, nil, creatorToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
