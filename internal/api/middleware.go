package api

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"paytrack/internal/constants"
	"paytrack/internal/db"
	"paytrack/internal/models"
)

// UserContextKey holds the authenticated user in the request context.
var UserContextKey = &contextKey{"User"}

type contextKey struct {
	name string
}

// IdentityClaims is the JWT payload: the account id plus registered claims.
type IdentityClaims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// CreateToken signs a JWT for the user, valid for 24 hours.
func CreateToken(user models.User, secret string) (string, error) {
	claims := IdentityClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "paytrack",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseToken(tokenStr, secret string) (*IdentityClaims, error) {
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// AuthMiddleware validates the Bearer token and loads the account into the
// request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "Missing Authorization header")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeJSONError(w, http.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
				return
			}

			claims, err := parseToken(parts[1], secret)
			if err != nil {
				log.Printf("AuthMiddleware: token rejected: %v", err)
				writeJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			user, err := db.GetUserByID(claims.UserID)
			if err != nil {
				log.Printf("AuthMiddleware: account %d not found: %v", claims.UserID, err)
				writeJSONError(w, http.StatusUnauthorized, "Account no longer exists")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleMiddleware restricts a route to users whose role is at least the
// required one. Admin passes everything.
func RoleMiddleware(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := r.Context().Value(UserContextKey).(models.User)
			if !ok {
				writeJSONError(w, http.StatusForbidden, "User data not found in context")
				return
			}
			if user.Role != constants.ROLE_ADMIN && user.Role != requiredRole {
				writeJSONError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// currentUser fetches the authenticated account from the context.
func currentUser(r *http.Request) (models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(models.User)
	return user, ok
}
