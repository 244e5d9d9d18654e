package handlers

import "net/http"

const (
	serviceName    = "User Management API"
	serviceVersion = "1.0.0"
)

// Home returns service metadata and the endpoint catalogue.
func Home(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, "Welcome to the User Management API",
		map[string]interface{}{
			"api_name":    serviceName,
			"version":     serviceVersion,
			"description": "REST API for managing user data with CRUD operations",
			"endpoints": map[string]string{
				"GET /":                  "API information",
				"GET /users":             "Get all users",
				"GET /users/{id}":        "Get user by ID",
				"POST /users":            "Create new user",
				"PUT /users/{id}":        "Update user",
				"DELETE /users/{id}":     "Delete user",
				"GET /users/search?q=":   "Search users",
				"GET /users/events":      "WebSocket feed of user changes",
			},
		})
}
