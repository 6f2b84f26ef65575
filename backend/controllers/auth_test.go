package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	resp, result := doJSON(t, "POST", "/api/auth/register", map[string]string{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "password123",
	}, "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, result["token"])

	user := result["user"].(map[string]interface{})
	assert.Equal(t, "newuser", user["username"])
	assert.Equal(t, "user", user["role"])
}

func TestRegisterValidation(t *testing.T) {
	resp, _ := doJSON(t, "POST", "/api/auth/register", map[string]string{
		"username": "x",
		"email":    "not-an-email",
		"password": "123",
	}, "")

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	resp, result := doJSON(t, "POST", "/api/auth/login", map[string]string{
		"email":    "viewer@example.com",
		"password": "password",
	}, "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, result["token"])
}

func TestLoginBadCredentials(t *testing.T) {
	resp, _ := doJSON(t, "POST", "/api/auth/login", map[string]string{
		"email":    "viewer@example.com",
		"password": "wrong",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, "POST", "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetProfile(t *testing.T) {
	resp, result := doJSON(t, "GET", "/api/user/profile", nil, viewerToken)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "viewer", result["username"])
	assert.Equal(t, "viewer@example.com", result["email"])
	assert.Equal(t, "user", result["role"])
}

func TestGetProfileRequiresToken(t *testing.T) {
	resp, _ := doJSON(t, "GET", "/api/user/profile", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
