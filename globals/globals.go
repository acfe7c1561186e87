package globals

import (
	"context"
	"os"
)

// Context keys
type ContextKey string

const (
	UserIDKey    ContextKey = "userId"
	UsernameKey  ContextKey = "username"
	RoleKey      ContextKey = "role"
	AdminIDKey   ContextKey = "adminId"
	AdminRoleKey ContextKey = "adminRole"
)

var (
	JwtSecret      = secretFromEnv("JWT_SECRET", "dev_actor_secret")
	AdminJwtSecret = secretFromEnv("ADMIN_JWT_SECRET", "dev_admin_secret")
)

var Ctx = context.Background()

func secretFromEnv(key, fallback string) []byte {
	if v := os.Getenv(key); v != "" {
		return []byte(v)
	}
	return []byte(fallback)
}
