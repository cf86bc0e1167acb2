package handler

import (
	"errors"
	"os"
	"time"

	"bipang_apung/model"
	"bipang_apung/store"
	"bipang_apung/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = time.Hour

// Login checks the shared admin password against the stored hash and issues
// a one-hour admin token.
func (h *Handler) Login(c *fiber.Ctx) error {
	input, _ := c.Locals("inputLogin").(model.LoginInput)

	hash, err := h.Admin.PasswordHash(c.Context())
	if err != nil {
		if errors.Is(err, store.ErrAdminNotFound) {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Admin configuration not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid password", errors.New("password mismatch"))
	}

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["role"] = "admin"
	claims["id"] = "admin-login"
	claims["jti"] = uuid.New().String()
	claims["exp"] = time.Now().Add(tokenTTL).Unix()

	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    signed,
		HTTPOnly: true,
		SameSite: "None",
		Path:     "/",
		Expires:  time.Now().Add(tokenTTL),
	})

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Login successful",
		"token":     signed,
		"expiresIn": int(tokenTTL.Seconds()),
	})
}
