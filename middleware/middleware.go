package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"workline/globals"
	"workline/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// JWT claims for portal actors (candidates and agents)
type Claims struct {
	Username string `json:"username"`
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AdminClaims are signed with a separate secret so the two credential
// namespaces cannot be crossed.
type AdminClaims struct {
	AdminID string `json:"adminId"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if websocket.IsWebSocketUpgrade(r) {
			// Websocket handshakes carry the token in the query string and
			// are verified by the chat handler itself.
			next(w, r, ps)
			return
		}

		claims, err := ValidateJWT(r.Header.Get("Authorization"))
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or missing token")
			return
		}

		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, globals.UsernameKey, claims.Username)
		ctx = context.WithValue(ctx, globals.RoleKey, claims.Role)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireRole gates a route on the actor's role (candidate or agent).
func RequireRole(role string, next httprouter.Handle) httprouter.Handle {
	return Authenticate(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		got, _ := r.Context().Value(globals.RoleKey).(string)
		if got != role {
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next(w, r, ps)
	})
}

func OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if claims, err := ValidateJWT(r.Header.Get("Authorization")); err == nil {
			ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, globals.UsernameKey, claims.Username)
			ctx = context.WithValue(ctx, globals.RoleKey, claims.Role)
			r = r.WithContext(ctx)
		}
		next(w, r, ps)
	}
}

// ValidateJWT parses an "Authorization: Bearer <token>" header value and
// returns the actor claims.
func ValidateJWT(header string) (*Claims, error) {
	tokenString, err := stripBearer(header)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	return claims, nil
}

// ValidateAdminJWT is the admin-namespace counterpart of ValidateJWT.
func ValidateAdminJWT(header string) (*AdminClaims, error) {
	tokenString, err := stripBearer(header)
	if err != nil {
		return nil, err
	}

	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return globals.AdminJwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	return claims, nil
}

// RequireAdmin authenticates against the admin namespace and checks the
// resolved role against the allowed set. MainAdmin passes every gate.
func RequireAdmin(next httprouter.Handle, roles ...string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := ValidateAdminJWT(r.Header.Get("Authorization"))
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or missing admin token")
			return
		}

		if !adminRoleAllowed(claims.Role, roles) {
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
			return
		}

		ctx := context.WithValue(r.Context(), globals.AdminIDKey, claims.AdminID)
		ctx = context.WithValue(ctx, globals.AdminRoleKey, claims.Role)
		next(w, r.WithContext(ctx), ps)
	}
}

func adminRoleAllowed(role string, allowed []string) bool {
	if role == "MainAdmin" {
		return true
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

func stripBearer(header string) (string, error) {
	if !strings.HasPrefix(header, "Bearer ") || len(header) < 8 {
		return "", fmt.Errorf("invalid token format")
	}
	return header[7:], nil
}
