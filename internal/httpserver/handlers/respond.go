// Package handlers implements the admin API endpoints. Every response
// carries the same JSON envelope, {"code": ..., "message": ...,
// "data": ...}, with code 0 and message "ok" on success and the
// errcode value mirrored by the HTTP status on failure.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skulk-project/skulk/internal/errcode"
)

type envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func respond(w http.ResponseWriter, httpStatus int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(env)
}

// respondOK writes the success envelope around data.
func respondOK(w http.ResponseWriter, data interface{}) {
	respond(w, http.StatusOK, envelope{Code: errcode.OK, Message: "ok", Data: data})
}

// respondCoded writes an explicit error envelope.
func respondCoded(w http.ResponseWriter, httpStatus, code int, message string, data interface{}) {
	respond(w, httpStatus, envelope{Code: code, Message: message, Data: data})
}

// respondError derives status, code, and message from a coded error.
// The wire carries the bare message; the cause chain stays in logs.
func respondError(w http.ResponseWriter, err error) {
	message := err.Error()
	var coded *errcode.Error
	if errors.As(err, &coded) {
		message = coded.Message
	}
	respond(w, errcode.HTTPStatus(err), envelope{Code: errcode.Code(err), Message: message})
}

// respondNotFound is the shared 404 envelope for unknown account ids.
func respondNotFound(w http.ResponseWriter) {
	respondCoded(w, http.StatusNotFound, errcode.NotFoundCode, "account not found", nil)
}
