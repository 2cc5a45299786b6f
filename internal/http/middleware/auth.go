package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const AuthUserKey contextKey = "auth_user"

// Auth modes accepted by NewVerifier
const (
	AuthModeNone   = "none"
	AuthModePaseto = "paseto"
	AuthModeJWT    = "jwt"
)

// AuthenticatedUser is the editor identified by the bearer token
type AuthenticatedUser struct {
	ID    string
	Email string
}

// TokenVerifier checks a bearer token and returns its user
type TokenVerifier interface {
	Verify(token string) (*AuthenticatedUser, error)
}

// NewVerifier builds the verifier for mode. Mode none returns a nil verifier,
// which makes RequireAuth a pass-through.
func NewVerifier(mode, pasetoPublicKey, jwtSecret string) (TokenVerifier, error) {
	switch mode {
	case "", AuthModeNone:
		return nil, nil
	case AuthModePaseto:
		return NewPasetoVerifier(pasetoPublicKey)
	case AuthModeJWT:
		if jwtSecret == "" {
			return nil, errors.New("jwt secret is required for jwt auth")
		}
		return NewJWTVerifier([]byte(jwtSecret)), nil
	default:
		return nil, fmt.Errorf("unknown auth mode: %s", mode)
	}
}

// PasetoVerifier accepts v4.public tokens signed by the matching secret key
type PasetoVerifier struct {
	PublicKey paseto.V4AsymmetricPublicKey
}

// NewPasetoVerifier decodes a base64 public key
func NewPasetoVerifier(publicKeyBase64 string) (*PasetoVerifier, error) {
	if publicKeyBase64 == "" {
		return nil, errors.New("paseto public key is required for paseto auth")
	}
	raw, err := base64.StdEncoding.DecodeString(publicKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode paseto public key: %w", err)
	}
	publicKey, err := paseto.NewV4AsymmetricPublicKeyFromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid paseto public key: %w", err)
	}
	return &PasetoVerifier{PublicKey: publicKey}, nil
}

func (v *PasetoVerifier) Verify(token string) (*AuthenticatedUser, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.NotExpired())

	verified, err := parser.ParseV4Public(v.PublicKey, token, nil)
	if err != nil {
		return nil, err
	}

	userID, err := verified.GetString("user_id")
	if err != nil {
		return nil, errors.New("user ID not found in token")
	}
	email, _ := verified.GetString("email")
	return &AuthenticatedUser{ID: userID, Email: email}, nil
}

// SignPasetoToken issues an editor token, used by cmd/keygen and tests
func SignPasetoToken(secretKey paseto.V4AsymmetricSecretKey, userID, email string, ttl time.Duration) string {
	now := time.Now()
	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(ttl))
	token.SetString("user_id", userID)
	if email != "" {
		token.SetString("email", email)
	}
	return token.V4Sign(secretKey, nil)
}

// EditorClaims are the claims of an HS256 editor token
type EditorClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier accepts HS256 tokens signed with a shared secret
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret []byte) *JWTVerifier {
	return &JWTVerifier{secret: secret}
}

func (v *JWTVerifier) Verify(tokenString string) (*AuthenticatedUser, error) {
	claims := &EditorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" {
		return nil, errors.New("user ID not found in token")
	}
	return &AuthenticatedUser{ID: claims.UserID, Email: claims.Email}, nil
}

// SignJWT issues an HS256 editor token
func SignJWT(secret []byte, userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := EditorClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// AuthConfig holds the verifier used by RequireAuth
type AuthConfig struct {
	Verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthConfig {
	return &AuthConfig{Verifier: verifier}
}

// RequireAuth rejects requests without a valid bearer token. Without a verifier
// every request passes.
func (ac *AuthConfig) RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if ac.Verifier == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			user, err := ac.Verifier.Verify(parts[1])
			if err != nil {
				writeError(w, fmt.Sprintf("Invalid token: %v", err), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AuthUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAuthenticatedUser returns the user stored by RequireAuth
func GetAuthenticatedUser(ctx context.Context) (*AuthenticatedUser, bool) {
	user, ok := ctx.Value(AuthUserKey).(*AuthenticatedUser)
	return user, ok
}
