package env

import "os"

// Get reads an environment variable, falling back when it is unset or blank.
// Used for knobs that sit outside the envconfig-managed Config, such as the
// logger's LOG_FORMAT switch.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
