package handler

import (
	"encoding/json"
	"net/http"

	"guild/pkg/action"
)

// statusFor maps a result code to its HTTP status. The envelope itself
// carries the code; the status is for clients and proxies that only look at
// the line.
func statusFor(code action.Code) int {
	switch code {
	case action.CodeOK:
		return http.StatusOK
	case action.CodeInputError:
		return http.StatusBadRequest
	case action.CodeUnauthorized:
		return http.StatusUnauthorized
	case action.CodeForbidden:
		return http.StatusForbidden
	case action.CodeNotFound:
		return http.StatusNotFound
	case action.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeResponse renders a result envelope with its mapped status code.
func writeResponse[T any](w http.ResponseWriter, resp action.Response[T]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(resp.Code))
	_ = json.NewEncoder(w).Encode(resp)
}

// writeCreated is writeResponse with 201 for successful creations.
func writeCreated[T any](w http.ResponseWriter, resp action.Response[T]) {
	if !resp.Successful {
		writeResponse(w, resp)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resp)
}

// loginResponse is the token payload returned on successful authentication.
type loginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int      `json:"expires_in"`
	PersonID    string   `json:"person_id"`
	Roles       []string `json:"roles"`
}
