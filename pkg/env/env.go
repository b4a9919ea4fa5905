package env

import "os"

// Get returns the named environment variable or fallback when unset.
func Get(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
