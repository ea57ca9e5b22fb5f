// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SessionUser is what the middleware injects into the request context.
// It is refetched from the database on every request (via UserFetcher)
// so role changes and deletions take effect immediately.
type SessionUser struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// UserFetcher loads a fresh SessionUser for a verified token subject.
// Returning (nil, nil) means the user no longer exists; the request
// proceeds unauthenticated.
type UserFetcher interface {
	FetchSessionUser(ctx context.Context, userID string) (*SessionUser, error)
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// TokenManager issues and verifies the signed session tokens. Tokens are
// HS256 JWTs carrying the user id and role, valid for TTL (7 days by
// default), and travel either in an HTTP-only cookie or an
// Authorization: Bearer header.
type TokenManager struct {
	secret     []byte
	cookieName string
	domain     string
	secure     bool
	ttl        time.Duration
	fetcher    UserFetcher
	log        *zap.Logger
}

// DefaultTTL is the fixed session lifetime.
const DefaultTTL = 7 * 24 * time.Hour

func NewTokenManager(secret, cookieName, domain string, secure bool, ttl time.Duration, logger *zap.Logger) (*TokenManager, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret too short (%d chars); provide >=32 random chars", len(secret))
	}
	if cookieName == "" {
		cookieName = "taskflow_session"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenManager{
		secret:     []byte(secret),
		cookieName: cookieName,
		domain:     domain,
		secure:     secure,
		ttl:        ttl,
		log:        logger,
	}, nil
}

// SetUserFetcher wires the per-request user lookup. Must be called before
// the middleware serves traffic.
func (tm *TokenManager) SetUserFetcher(f UserFetcher) { tm.fetcher = f }

// Issue signs a session token for the given user id and role.
func (tm *TokenManager) Issue(userID, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(tm.ttl).Unix(),
	})
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns its subject and role claims.
func (tm *TokenManager) Parse(tokenString string) (userID, role string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid session token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid session token claims")
	}
	sub, _ := claims["sub"].(string)
	r, _ := claims["role"].(string)
	if sub == "" {
		return "", "", fmt.Errorf("session token missing subject")
	}
	return sub, r, nil
}

// SetSessionCookie writes the HTTP-only session cookie. In production
// (secure=true) the cookie is Secure + SameSite=None so the SPA origin
// can use it cross-site; in dev Lax is fine over http://localhost.
func (tm *TokenManager) SetSessionCookie(w http.ResponseWriter, token string) {
	c := &http.Cookie{
		Name:     tm.cookieName,
		Value:    token,
		Path:     "/",
		Domain:   tm.domain,
		MaxAge:   int(tm.ttl.Seconds()),
		HttpOnly: true,
		Secure:   tm.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if tm.secure {
		c.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, c)
}

// ClearSessionCookie expires the session cookie.
func (tm *TokenManager) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     tm.cookieName,
		Value:    "",
		Path:     "/",
		Domain:   tm.domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   tm.secure,
	})
}

// tokenFromRequest looks in the Authorization header first (API clients),
// then the session cookie (browsers).
func (tm *TokenManager) tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(tm.cookieName); err == nil {
		return c.Value
	}
	return ""
}

// LoadSessionUser injects the user into context if the request carries a
// valid token. Invalid or expired tokens are ignored; resolvers that
// require auth reject unauthenticated requests themselves.
func (tm *TokenManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := tm.tokenFromRequest(r)
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, _, err := tm.Parse(tokenString)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		if tm.fetcher == nil {
			next.ServeHTTP(w, r)
			return
		}
		u, err := tm.fetcher.FetchSessionUser(r.Context(), userID)
		if err != nil {
			tm.log.Warn("session user fetch failed",
				zap.String("user_id", userID),
				zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		if u == nil {
			// Token subject no longer exists; treat as signed out.
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// WithUser returns a context carrying the session user.
func WithUser(ctx context.Context, u *SessionUser) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

// CurrentUser returns the session user & "found?" flag.
func CurrentUser(ctx context.Context) (*SessionUser, bool) {
	u, ok := ctx.Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a user into a request for handler tests,
// bypassing the token middleware.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(WithUser(r.Context(), u))
}

// HashPassword produces a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
