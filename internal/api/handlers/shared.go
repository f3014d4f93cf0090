package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/api/response"
)

// maxBodyBytes bounds request bodies; estimate forms are a few hundred bytes.
const maxBodyBytes = 1 << 20

// errEmptyBody is returned by parseJSON when the request has no body.
var errEmptyBody = errors.New("request body is empty")

// parseJSON decodes the request body into T. Unknown fields are ignored so
// that the form can post extra presentation fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, errEmptyBody
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, errEmptyBody
		}
		return v, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}

// MethodNotAllowed answers requests whose method is not routed.
//
// Response: 405 Method Not Allowed with {"error": "Method not allowed"}
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	response.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
}

// NotFound answers requests for unknown paths.
//
// Response: 404 Not Found with {"error": "Not found"}
func NotFound(w http.ResponseWriter, _ *http.Request) {
	response.RespondError(w, http.StatusNotFound, "Not found", nil)
}
