package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/service"
)

const maxBodyBytes = 1 << 20 // 1MB

// Plain-text bodies for unexpected faults; write routes use the capitalized form.
const (
	msgServerError      = "Server error"
	msgWriteServerError = "Server Error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.MessageResponse{Msg: msg})
}

func writeErrors(w http.ResponseWriter, status int, errs ...model.FieldError) {
	writeJSON(w, status, model.ErrorsResponse{Errors: errs})
}

// serverError logs err and answers 500 with a plain-text body.
func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(msg))
}

// decodeBody reads a JSON request body into v. An empty body leaves v zeroed so
// validation reports the missing fields. On failure it writes the 400/413
// response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrors(w, http.StatusRequestEntityTooLarge, model.FieldError{Msg: "Request body too large"})
			return false
		}
		writeErrors(w, http.StatusBadRequest, model.FieldError{Msg: "Invalid request body"})
		return false
	}
	return true
}

// writeValidation answers 400 with the field errors when err is a validation failure.
func writeValidation(w http.ResponseWriter, err error) bool {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeErrors(w, http.StatusBadRequest, verr.Fields...)
		return true
	}
	return false
}
