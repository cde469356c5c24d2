package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/americanadages/adages-society/internal/domain"
	"github.com/americanadages/adages-society/internal/transport/web/controller"
)

const (
	auth0AuthHeaderPrefix = "Bearer auth0|"
	supabaseAudience      = "authenticated"
)

// AuthResult represents the result of a successful authentication.
type AuthResult struct {
	UserID string
	Method domain.AuthMethod
}

// AuthValidator attempts to validate authentication from a request.
// Returns nil, nil if this validator doesn't apply (wrong auth type).
// Returns AuthResult, nil on success.
// Returns nil, error if validation was attempted but failed.
type AuthValidator func(r *http.Request) (*AuthResult, error)

// NewAuthMiddleware creates a middleware that validates requests using multiple authentication methods.
func NewAuthMiddleware(validators []AuthValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, validate := range validators {
				result, err := validate(r)
				if result == nil && err == nil {
					continue // This validator doesn't apply
				}

				if err != nil {
					logger := domain.LoggerFromContext(r.Context())
					logger.WarnContext(r.Context(), "authentication failed", "error", err)
					controller.WriteError(w, r, http.StatusUnauthorized, err.Error())
					return
				}

				ctx := domain.ContextWithUserID(r.Context(), result.UserID)
				ctx = domain.ContextWithAuthMethod(ctx, result.Method)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// Unauthenticated requests pass through; requireAuthMiddleware guards private routes.
			next.ServeHTTP(w, r)
		})
	}
}

// NewSupabaseValidator creates a validator for session tokens issued by Supabase Auth,
// signed with the project's shared HS256 secret.
func NewSupabaseValidator(supabaseURL, jwtSecret string) (AuthValidator, error) {
	if jwtSecret == "" {
		return nil, errors.New("supabase JWT secret must not be empty")
	}

	issuerURL, err := url.Parse(strings.TrimSuffix(supabaseURL, "/") + "/auth/v1")
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}

	secret := []byte(jwtSecret)
	jwtValidator, err := validator.New(
		func(context.Context) (interface{}, error) { return secret, nil },
		validator.HS256,
		issuerURL.String(),
		[]string{supabaseAudience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT validator: %w", err)
	}

	return func(r *http.Request) (*AuthResult, error) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || strings.HasPrefix(authHeader, auth0AuthHeaderPrefix) {
			return nil, nil
		}

		rawToken, err := jwtmiddleware.AuthHeaderTokenExtractor(r)
		if err != nil {
			return nil, fmt.Errorf("malformed authorization header")
		}
		if rawToken == "" {
			return nil, nil
		}

		token, err := jwtValidator.ValidateToken(r.Context(), rawToken)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT token")
		}

		claims := token.(*validator.ValidatedClaims)
		if claims.RegisteredClaims.Subject == "" {
			return nil, fmt.Errorf("JWT token has no subject")
		}

		return &AuthResult{
			UserID: claims.RegisteredClaims.Subject,
			Method: domain.AuthMethodSupabase,
		}, nil
	}, nil
}

// NewAuth0Validator creates a validator for Auth0 JWT tokens.
func NewAuth0Validator(auth0Domain, auth0Audience string) (AuthValidator, error) {
	issuerURL, err := url.Parse("https://" + auth0Domain + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)
	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{auth0Audience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT validator: %w", err)
	}

	return func(r *http.Request) (*AuthResult, error) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, auth0AuthHeaderPrefix) {
			return nil, nil
		}

		token, err := jwtValidator.ValidateToken(r.Context(), authHeader[len(auth0AuthHeaderPrefix):])
		if err != nil {
			return nil, fmt.Errorf("invalid JWT token")
		}

		claims := token.(*validator.ValidatedClaims)
		return &AuthResult{
			UserID: claims.RegisteredClaims.Subject,
			Method: domain.AuthMethodAuth0,
		}, nil
	}, nil
}
