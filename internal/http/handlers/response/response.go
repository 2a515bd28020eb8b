package response

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

func RenderUnauthorized(rw http.ResponseWriter) {
	RenderError(rw, "invalid access token", http.StatusUnauthorized)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, "internal error", http.StatusInternalServerError)
}

func RenderRateLimitExceeded(rw http.ResponseWriter) {
	RenderError(rw, "rate limit exceeded", http.StatusTooManyRequests)
}

func RenderBadRequest(rw http.ResponseWriter, msg string) {
	RenderError(rw, msg, http.StatusBadRequest)
}

// RenderNotFound, RenderConflict and RenderUnprocessable expose the domain error message to the page.
func RenderNotFound(rw http.ResponseWriter, err error) {
	RenderError(rw, err.Error(), http.StatusNotFound)
}

func RenderConflict(rw http.ResponseWriter, err error) {
	RenderError(rw, err.Error(), http.StatusConflict)
}

func RenderUnprocessable(rw http.ResponseWriter, err error) {
	RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
}

func RenderNoContent(rw http.ResponseWriter) {
	rw.WriteHeader(http.StatusNoContent)
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	Render(rw, errorResponse{Error: msg}, status)
}

func Render(rw http.ResponseWriter, res any, status int) {
	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	rw.Write(content)
}
