package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/hlog"

	"TODOLIST_BACK-END/internal/auth"
	"TODOLIST_BACK-END/internal/dto"
	"TODOLIST_BACK-END/internal/models"
	"TODOLIST_BACK-END/internal/store"
	"TODOLIST_BACK-END/internal/utils"
)

const (
	maxUsernameLength = 50
	// bcrypt ignores everything past 72 bytes
	maxPasswordBytes = 72
)

// AuthHandler handles user registration and identity requests
type AuthHandler struct {
	users      store.UserStore
	bcryptCost int
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users store.UserStore, bcryptCost int) *AuthHandler {
	return &AuthHandler{users: users, bcryptCost: bcryptCost}
}

// Register handles user registration
// @Summary Create a new user
// @Description Create a new user account. The password is hashed before storage and never returned.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.UserResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Username already registered"
// @Failure 422 {object} dto.ErrorResponse "Missing or invalid fields"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/ [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	fields, bodyOK := utils.DecodeJSONBody(w, r, &req)
	if bodyOK {
		fields = validateRegistration(req, fields)
	}
	if len(fields) > 0 {
		utils.WriteValidationError(w, fields...)
		return
	}

	hashedPassword, err := auth.HashPassword(*req.Password, h.bcryptCost)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("hashing password")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	user := models.User{Username: *req.Username, PasswordHash: hashedPassword}
	err = h.users.CreateUser(r.Context(), user)
	if errors.Is(err, store.ErrUserExists) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Username already registered", "choose a different username")
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("creating user")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	hlog.FromRequest(r).Info().Str("username", user.Username).Msg("user registered")
	utils.WriteJSONResponse(w, http.StatusCreated, dto.UserResponse{Username: user.Username})
}

// Me returns the authenticated user
// @Summary Get current user information
// @Description Retrieve the information of the currently authenticated user.
// @Tags users
// @Produce json
// @Security BasicAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing credentials"
// @Router /users/me/ [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	username, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.UserResponse{Username: username})
}

// validateRegistration appends rule violations to the decode errors in
// fields, skipping any field that already failed to decode.
func validateRegistration(req dto.RegisterRequest, fields []dto.FieldError) []dto.FieldError {
	if !utils.HasField(fields, "username") {
		switch {
		case req.Username == nil || strings.TrimSpace(*req.Username) == "":
			fields = append(fields, dto.FieldError{Field: "username", Message: "field required"})
		case utf8.RuneCountInString(*req.Username) > maxUsernameLength:
			fields = append(fields, dto.FieldError{Field: "username", Message: "must be at most 50 characters"})
		case strings.Contains(*req.Username, ":"):
			// Basic Auth splits on the first colon
			fields = append(fields, dto.FieldError{Field: "username", Message: "must not contain ':'"})
		}
	}

	if !utils.HasField(fields, "password") {
		switch {
		case req.Password == nil || strings.TrimSpace(*req.Password) == "":
			fields = append(fields, dto.FieldError{Field: "password", Message: "field required"})
		case len(*req.Password) > maxPasswordBytes:
			fields = append(fields, dto.FieldError{Field: "password", Message: "must be at most 72 bytes"})
		}
	}

	return fields
}
