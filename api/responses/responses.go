package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/weiluntsai/backoffice-backend/pkg/config"
	"github.com/weiluntsai/backoffice-backend/pkg/env"
	pkgerrors "github.com/weiluntsai/backoffice-backend/pkg/errors"
	"github.com/weiluntsai/backoffice-backend/pkg/logger"
)

// Envelope is the uniform response body: a success flag, a human-readable
// message, and the payload. Count is present on list responses; Error carries
// the diagnostic detail outside production.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Details any    `json:"details,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Diagnostic detail never leaves the process in production. The environment
// is read per call, not at package init, so a .env file loaded during startup
// still flips the gate.
func includeDiagnostics() bool {
	return !strings.EqualFold(
		env.Get("BACKOFFICE_APP_ENV", config.AppEnvDev), config.AppEnvProd)
}

// WriteData answers 200 with a data payload.
func WriteData(w http.ResponseWriter, data any) {
	Write(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// WriteList answers 200 with a data payload and its element count.
func WriteList(w http.ResponseWriter, data any, count int) {
	Write(w, http.StatusOK, Envelope{Success: true, Data: data, Count: &count})
}

// WriteCreated answers 201 with a message and the created record.
func WriteCreated(w http.ResponseWriter, message string, data any) {
	Write(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// WriteMessage answers 200 with a message and an optional payload.
func WriteMessage(w http.ResponseWriter, message string, data any) {
	Write(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// WriteError maps the error through the taxonomy metadata and renders the
// failure envelope.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict,
		pkgerrors.CodeDependency:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	payload := Envelope{Success: false, Message: msg}
	if meta.DetailsAllowed {
		payload.Details = typed.Details()
	}
	if includeDiagnostics() {
		if cause := typed.Unwrap(); cause != nil {
			payload.Error = cause.Error()
		}
	}

	if logg != nil {
		dump := pkgerrors.Dump(err)
		ctx = logg.WithFields(ctx, map[string]any{
			"error":       dump.TopMessage,
			"error_code":  dump.Code,
			"error_chain": dump.Chain,
			"pg_code":     dump.PGCode,
			"pg_detail":   dump.PGDetail,
		})
		logg.Error(ctx, "request.error", err)
	}

	Write(w, meta.HTTPStatus, payload)
}

// Write serializes any payload with the given status.
func Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
