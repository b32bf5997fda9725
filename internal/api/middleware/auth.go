package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/model"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/jwt"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/redis"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/response"
)

// Context keys set by JWTAuth.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// JWTAuth extracts and verifies the access token from
// Authorization: Bearer <token>. A nil Redis client skips the
// blacklist check.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "wrong token type")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}

// RequireOp gates a route on the role capability table. The role set by
// JWTAuth must be closed and valid; anything else is rejected.
func RequireOp(op model.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(CtxRole)
		if !exists {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}

		role := model.Role(raw.(string))
		if !role.Valid() || !role.Can(op) {
			response.Forbidden(c, 10003, "the role does not allow this operation")
			c.Abort()
			return
		}

		c.Next()
	}
}
