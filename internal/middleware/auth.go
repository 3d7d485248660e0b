package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/respirex/respirex-backend/internal/dto"
	"github.com/respirex/respirex-backend/internal/identity"
	"github.com/respirex/respirex-backend/internal/models"
)

const accountLocalsKey = "account"

// Auth verifies the bearer token and resolves it to a local account, creating
// the account on first sight of a new external identity.
func Auth(db *gorm.DB, verifier identity.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: missing bearer token",
			})
		}
		token := strings.TrimPrefix(header, "Bearer ")

		id, err := verifier.Verify(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		}

		var account models.Account
		err = db.Where(models.Account{ExternalID: id.Subject}).
			Attrs(models.Account{Email: id.Email}).
			FirstOrCreate(&account).Error
		if err != nil {
			slog.Error("account resolution failed", "error", err, "action", "auth")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Failed to resolve account",
			})
		}

		c.Locals(accountLocalsKey, &account)
		return c.Next()
	}
}

// Account extracts the authenticated account from the request context.
func Account(c *fiber.Ctx) *models.Account {
	account, _ := c.Locals(accountLocalsKey).(*models.Account)
	return account
}
