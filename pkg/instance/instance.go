package instance

import "github.com/angelmondragon/partsfinder-backend/pkg/env"

// GetID returns the process instance identifier. The Heroku dyno name wins
// over WORKER_ID; without either the process is "local".
func GetID() string {
	if id := env.Get("DYNO", ""); id != "" {
		return id
	}
	return env.Get("WORKER_ID", "local")
}
