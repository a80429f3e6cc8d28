package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/go-faster/jx"

	"github.com/sellium/checkout-service/internal/domain/auth"
)

// apiKeyHeader carries the admin API key.
const apiKeyHeader = "Api-Key"

// RequireAPIKey returns a middleware authenticating requests via
// HMAC-SHA256-hashed API keys: the provided key is hashed with the pepper,
// looked up, and compared in constant time against the stored hash.
func RequireAPIKey(apikeys auth.Repository, pepper []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(apiKeyHeader)
			if key == "" {
				unauthorized(w)
				return
			}

			mac := hmac.New(sha256.New, pepper)
			mac.Write([]byte(key))
			hash := mac.Sum(nil)

			info, err := apikeys.FindByHash(r.Context(), hex.EncodeToString(hash))
			if err != nil {
				unauthorized(w)
				return
			}

			stored, err := hex.DecodeString(info.KeyHash)
			if err != nil {
				unauthorized(w)
				return
			}
			if subtle.ConstantTimeCompare(hash, stored) != 1 {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Int(http.StatusUnauthorized) })
			e.Field("message", func(e *jx.Encoder) { e.Str("unauthorized") })
		})
	})
}
