package config

import "os"

// Server captures process-level configuration. It is constructed once in main
// and passed down explicitly; nothing in this package is a mutable singleton.
type Server struct {
	Addr          string
	DatabaseURL   string
	JWTSigningKey string
	Env           string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("MINEHUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	env := os.Getenv("MINEHUB_ENV")
	if env == "" {
		env = "dev"
	}

	return Server{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSigningKey: jwtSigningKey,
		Env:           env,
	}
}
