package handler

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/sellium/checkout-service/internal/domain/order"
	"github.com/sellium/checkout-service/internal/stripe"
)

// ValidationError indicates a malformed request body. Surfaced as HTTP 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationErr(reason string) error { return &ValidationError{Reason: reason} }

// writeJSON encodes a response body with jx and writes it with the status.
func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	var e jx.Encoder
	encode(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError maps a failure to the HTTP error taxonomy and writes the JSON
// error body {code, message}.
//
//	not found       -> 404
//	validation      -> 400
//	configuration   -> 500 (actionable message, no credentials leaked)
//	upstream        -> 502
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	var (
		vErr    *ValidationError
		infErr  *order.ItemNotFoundError
		dnfErr  *order.DiscountNotFoundError
		tnfErr  *order.TaxNotFoundError
		mixErr  *order.MixedCurrencyError
		cfgErr  *stripe.ConfigurationError
		upErr   *stripe.UpstreamError
	)
	switch {
	case errors.As(err, &vErr):
		status, msg = http.StatusBadRequest, vErr.Error()
	case errors.As(err, &mixErr):
		status, msg = http.StatusBadRequest, mixErr.Error()
	case errors.As(err, &infErr):
		status, msg = http.StatusNotFound, infErr.Error()
	case errors.As(err, &dnfErr):
		status, msg = http.StatusNotFound, dnfErr.Error()
	case errors.As(err, &tnfErr):
		status, msg = http.StatusNotFound, tnfErr.Error()
	case errors.Is(err, order.ErrNotFound):
		status, msg = http.StatusNotFound, "order not found"
	case errors.As(err, &cfgErr):
		status, msg = http.StatusInternalServerError, cfgErr.Error()
	case errors.As(err, &upErr):
		status, msg = http.StatusBadGateway, "payment gateway error"
	}

	if status >= http.StatusInternalServerError {
		zctx.From(r.Context()).Error("Request failed",
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	writeJSON(w, status, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Int(status) })
			e.Field("message", func(e *jx.Encoder) { e.Str(msg) })
		})
	})
}

// notFound writes a 404 with the given message.
func notFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Int(http.StatusNotFound) })
			e.Field("message", func(e *jx.Encoder) { e.Str(msg) })
		})
	})
}

// pathID parses the {id} path value as a positive integer.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validationErr("invalid id: " + raw)
	}
	return id, nil
}
