package response

import (
	"encoding/json"
	"net/http"
)

// encodeFailureBody matches the API's error shape
const encodeFailureBody = `{"error":{"code":"INTERNAL_ERROR","message":"failed to encode response"}}`

// JSON writes data as the response body with the given status. The body is
// encoded before anything is written, so a value that cannot be encoded
// yields a 500 instead of a truncated success. Nil data writes no body.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	if data == nil {
		w.WriteHeader(status)
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(encodeFailureBody)
	}
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
