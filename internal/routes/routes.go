package routes

import (
	"net/http"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "TODOLIST_BACK-END/docs" // registers the swagger spec
	"TODOLIST_BACK-END/internal/auth"
	"TODOLIST_BACK-END/internal/config"
	"TODOLIST_BACK-END/internal/handlers"
	"TODOLIST_BACK-END/internal/middleware"
	"TODOLIST_BACK-END/internal/store"
	"TODOLIST_BACK-END/internal/utils"
)

// routeMethods are the methods tried when working out which ones a path allows.
var routeMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

// NewRouter builds the handlers on top of s and registers every route.
// Requests that match no route get the API's JSON error body.
func NewRouter(s store.Store, authCfg config.AuthConfig) http.Handler {
	mux := http.NewServeMux()
	SetupRoutes(
		mux,
		handlers.NewAuthHandler(s, authCfg.BcryptCost),
		handlers.NewTodoHandler(s),
		handlers.NewHealthHandler(s),
		auth.NewAuthenticator(s),
		authCfg.Realm,
	)
	return jsonFallback(mux)
}

// SetupRoutes configures all application routes
func SetupRoutes(
	mux *http.ServeMux,
	authHandler *handlers.AuthHandler,
	todoHandler *handlers.TodoHandler,
	healthHandler *handlers.HealthHandler,
	authenticator middleware.Authenticator,
	realm string,
) {
	protected := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.BasicAuthMiddleware(next, authenticator, realm)
	}

	// Health check routes
	mux.HandleFunc("GET /healthz", healthHandler.HealthCheck)
	mux.HandleFunc("GET /livez", healthHandler.LivenessCheck)
	mux.HandleFunc("GET /readyz", healthHandler.ReadinessCheck)

	// User routes
	mux.HandleFunc("POST /users/{$}", authHandler.Register)
	mux.HandleFunc("GET /users/me/{$}", protected(authHandler.Me))

	// Todo routes
	mux.HandleFunc("GET /todos", protected(todoHandler.ListTodos))
	mux.HandleFunc("POST /todos", protected(todoHandler.CreateTodo))
	mux.HandleFunc("GET /todos/{todo_id}", protected(todoHandler.GetTodo))
	mux.HandleFunc("PUT /todos/{todo_id}", protected(todoHandler.UpdateTodo))
	mux.HandleFunc("DELETE /todos/{todo_id}", protected(todoHandler.DeleteTodo))

	// API documentation
	mux.Handle("GET /docs/", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	// Root route
	mux.HandleFunc("GET /{$}", handlers.Index)
}

// jsonFallback serves matched requests through mux and answers the rest with
// a JSON 404 or 405 instead of the mux's plain-text pages.
func jsonFallback(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pattern := mux.Handler(r); pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}

		var allowed []string
		for _, method := range routeMethods {
			alt := r.Clone(r.Context())
			alt.Method = method
			if _, pattern := mux.Handler(alt); pattern != "" {
				allowed = append(allowed, method)
			}
		}

		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
			utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method Not Allowed",
				r.Method+" is not allowed on "+r.URL.Path)
			return
		}
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "No route matches "+r.URL.Path)
	})
}
