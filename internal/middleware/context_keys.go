package middleware

import "github.com/gin-gonic/gin"

// employeeIDKey carries the authenticated employee's ID. The typed key
// prevents collisions with other context values.
const employeeIDKey = contextKey("employeeID")

// GetEmployeeIDFromContext retrieves the authenticated employee ID set by the
// auth middleware. The boolean reports whether one was present.
func GetEmployeeIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(employeeIDKey); v != nil {
		id, ok := v.(string)
		return id, ok
	}
	// Handlers registered without the middleware (tests, mostly) fall back
	// to the gin context map.
	if v, exists := c.Get(string(employeeIDKey)); exists {
		id, ok := v.(string)
		return id, ok
	}
	return "", false
}
