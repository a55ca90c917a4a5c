package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes registers login and logout.
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")
	authGroup.Post("/login", LoginAPI)
	authGroup.Post("/logout", LogoutAPI)
}

// AuthMiddleware validates the JWT from the cookie or Authorization header
// and stores the caller's identity on the request context.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("school_id", claims.SchoolID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_role", claims.Role)
	return c.Next()
}
