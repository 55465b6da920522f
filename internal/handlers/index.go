package handlers

import (
	"net/http"

	"TODOLIST_BACK-END/internal/dto"
	"TODOLIST_BACK-END/internal/utils"
)

// APIVersion is reported by the index and the swagger document
const APIVersion = "1.0.0"

// Index lists every endpoint of the API
// @Summary API welcome page
// @Description Returns a welcome message and the list of available endpoints.
// @Tags meta
// @Produce json
// @Success 200 {object} dto.IndexResponse
// @Router / [get]
func Index(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.IndexResponse{
		Message: "Welcome to TODO API",
		AvailableEndpoints: dto.AvailableEndpoints{
			Documentation: map[string]string{
				"swagger_ui":     "/docs/index.html",
				"openapi_schema": "/docs/doc.json",
			},
			UserManagement: map[string]dto.Endpoint{
				"create_user":      {Path: "/users/", Method: http.MethodPost, Description: "Create a new user account"},
				"get_current_user": {Path: "/users/me/", Method: http.MethodGet, Description: "Get current user information"},
			},
			TodoOperations: map[string]dto.Endpoint{
				"list_todos":  {Path: "/todos", Method: http.MethodGet, Description: "List all TODOs for authenticated user"},
				"create_todo": {Path: "/todos", Method: http.MethodPost, Description: "Create a new TODO item"},
				"get_todo":    {Path: "/todos/{todo_id}", Method: http.MethodGet, Description: "Get a specific TODO by ID"},
				"update_todo": {Path: "/todos/{todo_id}", Method: http.MethodPut, Description: "Update a specific TODO by ID"},
				"delete_todo": {Path: "/todos/{todo_id}", Method: http.MethodDelete, Description: "Delete a specific TODO by ID"},
			},
		},
		Authentication: "This API uses HTTP Basic Authentication. Include your username and password with each request.",
		Version:        APIVersion,
	})
}
