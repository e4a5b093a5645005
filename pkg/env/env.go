package env

import "os"

// Get returns the value of the given environment variable or a fallback.
// It covers pre-config lookups such as LOG_FORMAT that run before
// envconfig has parsed the INILAP_* settings.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
