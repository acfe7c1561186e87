package utils

import (
	rndm "math/rand"
	"net/http"
	"os"
	"strings"

	"workline/globals"
)

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// --- Request Context Helpers ---

func GetUserIDFromRequest(r *http.Request) string {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

func GetUsernameFromRequest(r *http.Request) string {
	username, ok := r.Context().Value(globals.UsernameKey).(string)
	if !ok {
		return ""
	}
	return username
}

func GetRoleFromRequest(r *http.Request) string {
	role, ok := r.Context().Value(globals.RoleKey).(string)
	if !ok {
		return ""
	}
	return role
}

func GetAdminIDFromRequest(r *http.Request) string {
	adminID, ok := r.Context().Value(globals.AdminIDKey).(string)
	if !ok {
		return ""
	}
	return adminID
}

// --- List Normalization ---

// SplitList normalizes a comma-separated string into a trimmed slice.
// Empty segments are dropped; an empty input yields an empty slice.
func SplitList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return []string{}
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// NormalizeList accepts either a comma-separated string or an
// already-split slice and returns a trimmed slice in both cases. Form
// submissions send strings, JSON clients send arrays; both shapes are legal.
func NormalizeList(values []string) []string {
	if len(values) == 1 {
		return SplitList(values[0])
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func Contains(slice []string, value string) bool {
	for _, s := range slice {
		if s == value {
			return true
		}
	}
	return false
}

// --- Directory Helper ---

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
