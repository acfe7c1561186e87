package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"workline/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signActorToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)
	return token
}

func signAdminToken(t *testing.T, claims *AdminClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.AdminJwtSecret)
	require.NoError(t, err)
	return token
}

func TestValidateJWTRoundTrip(t *testing.T) {
	token := signActorToken(t, &Claims{
		Username: "aiko",
		UserID:   "u123",
		Role:     "candidate",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ValidateJWT("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u123", claims.UserID)
	assert.Equal(t, "aiko", claims.Username)
	assert.Equal(t, "candidate", claims.Role)
}

func TestValidateJWTExpired(t *testing.T) {
	token := signActorToken(t, &Claims{
		UserID: "u123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := ValidateJWT("Bearer " + token)
	assert.Error(t, err)
}

func TestValidateJWTMalformed(t *testing.T) {
	cases := []string{
		"",
		"Bearer",
		"Bearer not-a-token",
		"Basic abc123",
	}
	for _, header := range cases {
		_, err := ValidateJWT(header)
		assert.Error(t, err, "header %q should be rejected", header)
	}
}

func TestActorTokenRejectedByAdminGate(t *testing.T) {
	// Actor tokens are signed with the actor secret; the admin namespace
	// must not accept them even with matching claim shapes.
	token := signActorToken(t, &Claims{
		UserID: "u123",
		Role:   "MainAdmin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := ValidateAdminJWT("Bearer " + token)
	assert.Error(t, err)
}

func TestAuthenticateSetsContext(t *testing.T) {
	token := signActorToken(t, &Claims{
		Username: "aiko",
		UserID:   "u123",
		Role:     "agent",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	var gotUserID, gotRole string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRole, _ = r.Context().Value(globals.RoleKey).(string)
	})

	r := httptest.NewRequest("GET", "/api/profile", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u123", gotUserID)
	assert.Equal(t, "agent", gotRole)
}

func TestAuthenticateMissingToken(t *testing.T) {
	called := false
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	r := httptest.NewRequest("GET", "/api/profile", nil)
	w := httptest.NewRecorder()
	handler(w, r, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestRequireRole(t *testing.T) {
	token := signActorToken(t, &Claims{
		UserID: "u123",
		Role:   "candidate",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	handler := RequireRole("agent", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not run for wrong role")
	})

	r := httptest.NewRequest("GET", "/api/candidates", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminRoleGate(t *testing.T) {
	sign := func(role string) string {
		return signAdminToken(t, &AdminClaims{
			AdminID: "adm1",
			Role:    role,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
	}

	cases := []struct {
		role    string
		allowed []string
		want    int
	}{
		{"SalesAdmin", []string{"SalesAdmin"}, http.StatusOK},
		{"AgentAdmin", []string{"SalesAdmin"}, http.StatusForbidden},
		{"MainAdmin", []string{"SalesAdmin"}, http.StatusOK},
		{"MainAdmin", nil, http.StatusOK},
		{"SalesAdmin", nil, http.StatusForbidden},
	}

	for _, tc := range cases {
		handler := RequireAdmin(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {}, tc.allowed...)
		r := httptest.NewRequest("GET", "/api/admin/users", nil)
		r.Header.Set("Authorization", "Bearer "+sign(tc.role))
		w := httptest.NewRecorder()
		handler(w, r, nil)
		assert.Equal(t, tc.want, w.Code, "role %s allowed %v", tc.role, tc.allowed)
	}
}
