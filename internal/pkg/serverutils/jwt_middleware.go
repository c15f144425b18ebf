package serverutils

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	LocalUserId = "user_id"
	LocalEmail  = "email"
)

type SessionClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs an HS256 session token whose subject is the
// identity subject used as the profile's external id.
func IssueSessionToken(secret []byte, subject, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ParseSessionToken(secret []byte, tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// JwtMiddleware rejects requests without a valid bearer session token and
// exposes the subject and email as locals.
func JwtMiddleware(secret []byte) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Authentication required"))
		}

		claims, err := ParseSessionToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Authentication required"))
		}

		ctx.Locals(LocalUserId, claims.Subject)
		ctx.Locals(LocalEmail, claims.Email)
		return ctx.Next()
	}
}

// UserId returns the authenticated subject set by JwtMiddleware.
func UserId(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(LocalUserId).(string)
	return id
}

func Email(ctx *fiber.Ctx) string {
	email, _ := ctx.Locals(LocalEmail).(string)
	return email
}
