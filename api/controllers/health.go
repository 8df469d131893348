package controllers

import (
	"net/http"
	"time"

	"github.com/weiluntsai/backoffice-backend/api/responses"
	"github.com/weiluntsai/backoffice-backend/pkg/config"
	"github.com/weiluntsai/backoffice-backend/pkg/db"
)

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
	Env       string `json:"env"`
}

// Health handles GET /health: liveness plus backing-store connectivity. It
// reports without forcing a dial, so a cold process answers "not connected"
// until the first data request establishes the connection.
func Health(cfg *config.Config, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		database := "not connected"
		if dbP != nil && dbP.Connected() && dbP.Ping(r.Context()) == nil {
			database = "connected"
		}
		responses.Write(w, http.StatusOK, healthResponse{
			Status:    "ok",
			Database:  database,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Env:       cfg.App.Env,
		})
	}
}

// Root handles GET /: a service banner with the endpoint index.
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.Write(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "back office management API",
			"version": "1.0.0",
			"endpoints": map[string]string{
				"health":    "/health",
				"products":  "/api/products",
				"orders":    "/api/orders",
				"customers": "/api/customers",
				"contacts":  "/api/contacts",
				"dashboard": "/api/dashboard",
			},
		})
	}
}
