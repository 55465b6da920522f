package utils

import (
	"encoding/json"
	"net/http"

	"TODOLIST_BACK-END/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a dto.ErrorResponse with the given status
func WriteErrorResponse(w http.ResponseWriter, status int, errMsg, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: errMsg, Message: message})
}

// WriteValidationError writes a 422 listing every offending field
func WriteValidationError(w http.ResponseWriter, fields ...dto.FieldError) {
	WriteJSONResponse(w, http.StatusUnprocessableEntity, dto.ErrorResponse{
		Error:   "Validation error",
		Message: "request contains invalid or missing fields",
		Fields:  fields,
	})
}

// WriteUnauthorized writes a 401 carrying the Basic challenge
func WriteUnauthorized(w http.ResponseWriter, realm, message string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`"`)
	WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", message)
}
