package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"server/internal/domain"
)

type userKey struct{}

// SignSession issues an HS256 session token for the given user id.
func SignSession(secret, userID string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func verifySession(secret, token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("invalid claims")
	}
	return claims.Subject, nil
}

// Auth verifies the bearer session token and resolves the caller's plan and
// free-usage counter through the identity provider. Premium users and users
// whose counter was never initialized get free_usage reset to 0.
func Auth(secret string, identity domain.IdentityClient, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, "missing authorization")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeAuthError(w, "invalid authorization")
				return
			}
			userID, err := verifySession(secret, parts[1])
			if err != nil {
				writeAuthError(w, "invalid token")
				return
			}

			profile, err := identity.Lookup(r.Context(), userID)
			if err != nil {
				logger.Error().Err(err).Str("user_id", userID).Msg("identity lookup failed")
				writeAuthError(w, "Unauthorized, Authentication failed")
				return
			}

			user := domain.AuthUser{ID: userID, Plan: profile.Plan}
			if !user.IsPremium() && profile.UsageTracked {
				user.FreeUsage = profile.FreeUsage
			} else if err := identity.SetFreeUsage(r.Context(), userID, 0); err != nil {
				logger.Warn().Err(err).Str("user_id", userID).Msg("free usage reset failed")
			}

			ctx := context.WithValue(r.Context(), userKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated caller stored by Auth.
func UserFromContext(ctx context.Context) (domain.AuthUser, bool) {
	u, ok := ctx.Value(userKey{}).(domain.AuthUser)
	return u, ok
}

// ContextWithUser injects an authenticated caller, for tests and internal use.
func ContextWithUser(ctx context.Context, user domain.AuthUser) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"errors":  []map[string]string{{"message": message}},
	})
}
