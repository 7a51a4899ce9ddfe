package auth

import (
	"context"
	"crypto/hmac"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	APIKeyHeader = "X-API-Key"
	UserIDHeader = "X-User-Id"
	bearerPrefix = "Bearer "
)

var (
	// ErrInvalidToken токен отсутствует, повреждён, просрочен или без sub.
	ErrInvalidToken = errors.New("invalid token")
	// ErrNotConfigured не задан ни секрет, ни публичный ключ.
	ErrNotConfigured = errors.New("jwt verification key not configured")
)

type ctxKey struct{}

// Config ключи проверки токенов и ключ ярлыка /save.
type Config struct {
	JWTSecret    string
	JWTPublicKey string // PEM, RS256
	Issuer       string
	APIKey       string
}

type Auth struct {
	secret    []byte
	publicKey *rsa.PublicKey
	issuer    string
	apiKey    string
	logger    *zap.Logger
}

// New создаёт проверяющего. Публичный ключ имеет приоритет над секретом.
func New(cfg Config, logger *zap.Logger) (*Auth, error) {
	a := &Auth{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		apiKey: cfg.APIKey,
		logger: logger,
	}
	if cfg.JWTPublicKey != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.JWTPublicKey))
		if err != nil {
			return nil, fmt.Errorf("parse jwt public key: %w", err)
		}
		a.publicKey = key
	}
	return a, nil
}

// VerifyToken проверяет подпись и срок действия токена и возвращает sub.
func (a *Auth) VerifyToken(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}
	if a.publicKey == nil && len(a.secret) == 0 {
		return "", ErrNotConfigured
	}

	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	if a.publicKey != nil {
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	} else {
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if a.publicKey != nil {
			return a.publicKey, nil
		}
		return a.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// ValidateUserID достаёт пользователя из заголовка Authorization: Bearer <jwt>.
func (a *Auth) ValidateUserID(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	userID, err := a.VerifyToken(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
	if err != nil {
		a.logger.Debug("Bearer token rejected", zap.Error(err))
		return "", false
	}
	return userID, true
}

// ValidAPIKey сравнивает ключ за постоянное время. Пустой настроенный ключ отклоняет всё.
func (a *Auth) ValidAPIKey(key string) bool {
	if a.apiKey == "" || key == "" {
		return false
	}
	want := sha256.Sum256([]byte(a.apiKey))
	got := sha256.Sum256([]byte(key))
	return hmac.Equal(want[:], got[:])
}

// RequireUser пропускает только запросы с валидным bearer-токеном.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := a.ValidateUserID(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// RequireAPIKey защита /save: сначала ключ, потом X-User-Id.
func (a *Auth) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.ValidAPIKey(r.Header.Get(APIKeyHeader)) {
			writeError(w, http.StatusUnauthorized, "Invalid API key")
			return
		}
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			writeError(w, http.StatusBadRequest, "X-User-Id header is required")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID кладёт пользователя в контекст.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserIDFromContext возвращает пользователя, установленного middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ctxKey{}).(string)
	return userID, ok && userID != ""
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
