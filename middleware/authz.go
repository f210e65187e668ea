package middleware

import "github.com/gofiber/fiber/v2"

// RequireRole returns a middleware that rejects requests whose
// authenticated role is not in the allowed set. Runs after
// JWTMiddleware, which stores the role in the request locals.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: role not found", nil)
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}

// UserID pulls the authenticated user id out of the request locals.
func UserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userId").(uint)
	return userID, ok
}

// Owns reports whether the authenticated user owns a resource with the
// given owner id. Every owner-equality check in the handlers goes
// through this one predicate.
func Owns(c *fiber.Ctx, ownerID uint) bool {
	userID, ok := UserID(c)
	return ok && userID == ownerID
}
