package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"TODOLIST_BACK-END/internal/dto"
	"TODOLIST_BACK-END/internal/models"
	"TODOLIST_BACK-END/internal/store"
	"TODOLIST_BACK-END/internal/utils"
)

const todoIDParam = "todo_id"

// TodoHandler manages todo endpoints. Every method expects BasicAuthMiddleware
// to have put the username in the request context.
type TodoHandler struct {
	todos store.TodoStore
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(todos store.TodoStore) *TodoHandler {
	return &TodoHandler{todos: todos}
}

// ListTodos handles GET /todos
// @Summary List all TODOs
// @Description Retrieve all TODOs of the authenticated user in creation order.
// @Tags todos
// @Produce json
// @Security BasicAuth
// @Success 200 {array} dto.TodoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /todos [get]
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	owner, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	todos, err := h.todos.ListTodos(r.Context(), owner)
	if err != nil {
		h.internalError(w, r, err, "listing todos")
		return
	}

	items := make([]dto.TodoResponse, 0, len(todos))
	for _, todo := range todos {
		items = append(items, toTodoResponse(todo))
	}
	utils.WriteJSONResponse(w, http.StatusOK, items)
}

// CreateTodo handles POST /todos
// @Summary Create a new TODO
// @Description Create a TODO owned by the authenticated user. completed defaults to false.
// @Tags todos
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param payload body dto.TodoRequest true "Todo payload"
// @Success 201 {object} dto.TodoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /todos [post]
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	owner, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	title, completed, ok := decodeTodoRequest(w, r)
	if !ok {
		return
	}

	todo := &models.Todo{Title: title, Completed: completed, Owner: owner}
	if err := h.todos.CreateTodo(r.Context(), todo); err != nil {
		h.internalError(w, r, err, "creating todo")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, toTodoResponse(*todo))
}

// GetTodo handles GET /todos/{todo_id}
// @Summary Get a specific TODO
// @Tags todos
// @Produce json
// @Security BasicAuth
// @Param todo_id path int true "Todo ID"
// @Success 200 {object} dto.TodoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /todos/{todo_id} [get]
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.requestTarget(w, r)
	if !ok {
		return
	}

	todo, err := h.ownedTodo(r.Context(), id, owner)
	if err != nil {
		h.lookupError(w, r, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toTodoResponse(*todo))
}

// UpdateTodo handles PUT /todos/{todo_id}
// @Summary Update a TODO
// @Description Replace title and completed of a TODO. An omitted completed is stored as false.
// @Tags todos
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param todo_id path int true "Todo ID"
// @Param payload body dto.TodoRequest true "Todo payload"
// @Success 200 {object} dto.TodoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /todos/{todo_id} [put]
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.requestTarget(w, r)
	if !ok {
		return
	}

	title, completed, ok := decodeTodoRequest(w, r)
	if !ok {
		return
	}

	todo, err := h.ownedTodo(r.Context(), id, owner)
	if err != nil {
		h.lookupError(w, r, err)
		return
	}

	todo.Title = title
	todo.Completed = completed
	if err := h.todos.UpdateTodo(r.Context(), *todo); err != nil {
		h.lookupError(w, r, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toTodoResponse(*todo))
}

// DeleteTodo handles DELETE /todos/{todo_id}
// @Summary Delete a TODO
// @Tags todos
// @Security BasicAuth
// @Param todo_id path int true "Todo ID"
// @Success 204 "No content"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /todos/{todo_id} [delete]
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.requestTarget(w, r)
	if !ok {
		return
	}

	if _, err := h.ownedTodo(r.Context(), id, owner); err != nil {
		h.lookupError(w, r, err)
		return
	}

	if err := h.todos.DeleteTodo(r.Context(), id, owner); err != nil {
		h.lookupError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedTodo is the only lookup path for single-todo endpoints. A todo that
// belongs to someone else is reported exactly like a missing one.
func (h *TodoHandler) ownedTodo(ctx context.Context, id int64, owner string) (*models.Todo, error) {
	todo, err := h.todos.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo.Owner != owner {
		return nil, store.ErrNotFound
	}
	return todo, nil
}

// requestTarget resolves the acting user and the {todo_id} path parameter.
func (h *TodoHandler) requestTarget(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	owner, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return "", 0, false
	}

	id, ok := utils.ParsePathID(r, todoIDParam)
	if !ok {
		utils.WriteValidationError(w, dto.FieldError{Field: todoIDParam, Message: "must be an integer"})
		return "", 0, false
	}
	return owner, id, true
}

func (h *TodoHandler) lookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Todo not found")
		return
	}
	h.internalError(w, r, err, "loading todo")
}

func (h *TodoHandler) internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	hlog.FromRequest(r).Error().Err(err).Msg(msg)
	utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
}

// decodeTodoRequest reports every bad field in one 422, decode errors first.
func decodeTodoRequest(w http.ResponseWriter, r *http.Request) (string, bool, bool) {
	var req dto.TodoRequest
	fields, bodyOK := utils.DecodeJSONBody(w, r, &req)
	if bodyOK && !utils.HasField(fields, "title") &&
		(req.Title == nil || strings.TrimSpace(*req.Title) == "") {
		fields = append(fields, dto.FieldError{Field: "title", Message: "field required"})
	}
	if len(fields) > 0 {
		utils.WriteValidationError(w, fields...)
		return "", false, false
	}

	completed := false
	if req.Completed != nil {
		completed = *req.Completed
	}
	return *req.Title, completed, true
}

func toTodoResponse(todo models.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:        todo.ID,
		Title:     todo.Title,
		Completed: todo.Completed,
		Owner:     todo.Owner,
	}
}
