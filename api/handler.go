package api

import (
	"net/http"

	"github.com/angelmondragon/partsfinder-backend/api/routes"
)

// NewHandler returns the HTTP handler that cmd/api wires into its server.
func NewHandler(params routes.Params) http.Handler {
	return routes.NewRouter(params)
}
