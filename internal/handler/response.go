package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fansite-cms/api/internal/model"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteData writes a success envelope carrying data
func WriteData(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, model.Envelope{Success: true, Data: data})
}

// WriteSuccess writes a success envelope with an optional message and no data
func WriteSuccess(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, model.Envelope{Success: true, Message: message})
}

// WriteError writes a failure envelope
func WriteError(w http.ResponseWriter, err *model.APIError) {
	err.WriteJSON(w)
}

// DecodeJSON decodes a bounded JSON request body into v
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return errBadBody("request body is empty")
		}
		return errBadBody("invalid request body")
	}
	return nil
}

// badBodyError is a malformed request body. It maps to 400.
type badBodyError struct {
	msg string
}

func (e *badBodyError) Error() string { return e.msg }

func errBadBody(format string, args ...interface{}) error {
	return &badBodyError{msg: fmt.Sprintf(format, args...)}
}
