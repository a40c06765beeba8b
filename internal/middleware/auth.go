// internal/middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"

	"github.com/plmining/licensing-backend/internal/i18n"
	"github.com/plmining/licensing-backend/internal/policy"
	"github.com/plmining/licensing-backend/internal/utils"
)

// SessionAuthenticator resolves a session token into its claims, rejecting
// expired, forged or signed-out sessions.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.JWTClaims, error)
}

const claimsKey = "claims"

// sessionToken reads the bearer token first and falls back to the session cookie.
func sessionToken(c *gin.Context, cookieName string) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			return cookie, true
		}
	}
	return "", false
}

func setSession(c *gin.Context, claims *utils.JWTClaims) bool {
	role, err := policy.ParseRole(claims.Role)
	if err != nil {
		return false
	}
	c.Set("user_id", claims.UserID)
	c.Set("email", claims.Email)
	c.Set("name", claims.Name)
	c.Set("role", role)
	c.Set(claimsKey, claims)
	return true
}

func AuthRequired(auth SessionAuthenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		token, ok := sessionToken(c, cookieName)
		if !ok {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			key := i18n.KeyAuthInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				key = i18n.KeyAuthTokenExpired
			}
			logrus.WithError(err).WithField("path", c.Request.URL.Path).Debug("Rejected session")
			utils.UnauthorizedResponse(c, i18n.T(lang, key))
			c.Abort()
			return
		}

		if !setSession(c, claims) {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the session when one is present and valid and never
// rejects the request.
func OptionalAuth(auth SessionAuthenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := sessionToken(c, cookieName)
		if !ok {
			c.Next()
			return
		}

		if claims, err := auth.Authenticate(c.Request.Context(), token); err == nil {
			setSession(c, claims)
		}
		c.Next()
	}
}

// RequireAction must run after AuthRequired. A refusal lists the roles that
// may perform the action.
func RequireAction(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := utils.GetRoleFromContext(c)
		if !ok || !policy.Can(role, action) {
			lang := utils.GetLangFromContext(c)
			utils.ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", i18n.T(lang, i18n.KeyAccessDenied), gin.H{
				"action":        action,
				"allowed_roles": policy.AllowedRoles(action),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetClaims returns the session claims stored by AuthRequired.
func GetClaims(c *gin.Context) (*utils.JWTClaims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.JWTClaims)
	return claims, ok
}

var publicPages = []string{"/login", "/sign-up", "/forgot-password", "/reset-password", "/verify-license", "/verification", "/unauthorized"}

func isPublicPage(path string) bool {
	for _, p := range publicPages {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// RouteGuard protects page requests. Unauthenticated visitors go to /login and
// roles outside a route's allow list go back to the dashboard with an error.
// Static assets and public pages pass through.
func RouteGuard(auth SessionAuthenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if isPublicPage(path) || isAsset(path) {
			c.Next()
			return
		}

		var (
			role          policy.Role
			authenticated bool
		)
		if token, ok := sessionToken(c, cookieName); ok {
			if claims, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				if r, err := policy.ParseRole(claims.Role); err == nil {
					role, authenticated = r, true
				}
			}
		}

		switch policy.CheckRoute(path, role, authenticated) {
		case policy.RedirectLogin:
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		case policy.RedirectUnauthorized:
			c.Redirect(http.StatusFound, "/?error=unauthorized")
			c.Abort()
		default:
			c.Next()
		}
	}
}

var assetPrefixes = []string{"/_next/", "/static/", "/assets/", "/favicon"}

func isAsset(path string) bool {
	for _, p := range assetPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
