// Package httpx centralizes the JSON response envelope. Every error leaving
// the API carries a stable machine code plus a message translated to the
// request language; backend detail never reaches the client.
package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/orcapro/orcapro/internal/i18n"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body := []byte("null")
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Fail writes the error envelope for the given code, translating the
// user-facing message with the language resolved from the request.
func Fail(w http.ResponseWriter, lang string, status int, code string, details any) {
	JSON(w, status, ErrorResponse{Error: code, Message: i18n.T(lang, code), Details: details})
}
