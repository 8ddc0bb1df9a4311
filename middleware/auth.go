package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/TaskForge/taskforge-backend/config"
	"github.com/TaskForge/taskforge-backend/logger"
	"github.com/TaskForge/taskforge-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// PrincipalClaims is the claim set TaskForge tokens carry. Token issuance
// happens upstream; this middleware only validates and projects the claims
// into a Principal.
type PrincipalClaims struct {
	Role         string `json:"role"`
	TeamID       string `json:"team_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the Bearer token and stores the resulting
// Principal in the request context. Requests without a valid token are
// rejected with 401 before any handler runs.
func AuthMiddleware(cfg *config.ServerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.GetLogger()

		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization required",
			})
			return
		}

		claims, err := parseToken(token, cfg.JwtSecretKey)
		if err != nil {
			log.Warnw("Invalid JWT token",
				"error", err,
				"token", logger.MaskToken(token),
				"path", c.Request.URL.Path,
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		principal := &types.Principal{
			ID:           claims.Subject,
			Role:         types.Role(claims.Role),
			TeamID:       claims.TeamID,
			DepartmentID: claims.DepartmentID,
		}

		if principal.ID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Token missing subject",
			})
			return
		}

		c.Set(PrincipalKey, principal)
		c.Set(UserIDKey, principal.ID)
		c.Next()
	}
}

func parseToken(token, secret string) (*PrincipalClaims, error) {
	claims := &PrincipalClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	return claims, nil
}

// GetPrincipal retrieves the authenticated principal from the request
// context. The second return is false when auth did not run or failed.
func GetPrincipal(c *gin.Context) (*types.Principal, bool) {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return nil, false
	}
	principal, ok := v.(*types.Principal)
	return principal, ok && principal != nil
}
