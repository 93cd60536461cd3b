package interceptors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nicjohnson145/hlp/set"
	"github.com/nicjohnson145/kvgate/internal/api"
	"github.com/nicjohnson145/kvgate/internal/token"
	"github.com/rs/zerolog"
)

var (
	ErrNoClaimsError         = errors.New("no claims in context")
	ErrCannotCastClaimsError = errors.New("context value not *token.Token")
)

type claimsKey struct{}

const (
	tokenHeader  = "Authorization"
	bearerPrefix = "Bearer "
)

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: msg})
}

func NewAuthMiddleware(signingKey []byte, excludedPaths *set.Set[string]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if excludedPaths.Contains(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			// Check the header exists
			header := r.Header.Get(tokenHeader)
			if header == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeAuthError(w, http.StatusUnauthorized, "no token provided")
				return
			}
			if !strings.HasPrefix(header, bearerPrefix) {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeAuthError(w, http.StatusUnauthorized, "authorization header must be a bearer token")
				return
			}

			// Parse out the token
			tok, err := token.ParseJWT(strings.TrimPrefix(header, bearerPrefix), signingKey)
			if err != nil {
				zerolog.Ctx(r.Context()).Debug().Err(err).Msg("rejecting token")
				writeAuthError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			// Add the parsed token to the context
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, tok)))
		})
	}
}

func ClaimsFromCtx(ctx context.Context) (*token.Token, error) {
	val := ctx.Value(claimsKey{})
	if val == nil {
		return nil, ErrNoClaimsError
	}

	tok, ok := val.(*token.Token)
	if !ok {
		return nil, ErrCannotCastClaimsError
	}

	return tok, nil
}

// SubjectFromCtx is empty when auth is off or the route is excluded
func SubjectFromCtx(ctx context.Context) string {
	tok, err := ClaimsFromCtx(ctx)
	if err != nil {
		return ""
	}
	return tok.Subject
}
