package config

// GetAuthSkipperPaths returns the route paths served without authentication.
func GetAuthSkipperPaths() []string {
	return []string{"/health", "/api/auth/login", "/playground"}
}
