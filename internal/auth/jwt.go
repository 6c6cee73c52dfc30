package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails signature, expiry or
// claim checks. Callers surface it as a single terminal rejection; the
// underlying reason is not leaked to the client.
var ErrInvalidToken = errors.New("authentication is invalid")

// Identity is the verified result of a successful token check.
type Identity struct {
	UserID string
}

// Verifier validates an identity token and returns the identity it carries.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// JWT issues and verifies HS256 tokens with {id, exp} claims.
type JWT struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewJWT(secret string, tokenTTL time.Duration) *JWT {
	return &JWT{secret: []byte(secret), tokenTTL: tokenTTL}
}

// Generate signs a token for the given user ID.
func (j *JWT) Generate(userID string) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(j.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// Verify parses and validates a token string. The context is accepted to
// satisfy Verifier; HS256 verification itself is local and does not block.
func (j *JWT) Verify(_ context.Context, tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: userID}, nil
}

// VerifyWithTimeout bounds a verification call with a deadline so a hung
// verifier rejects the handshake instead of stalling it. The verification
// runs in its own goroutine because Verifier implementations are not
// required to honor context cancellation promptly.
func VerifyWithTimeout(parent context.Context, v Verifier, token string, timeout time.Duration) (Identity, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	type result struct {
		id  Identity
		err error
	}

	resultCh := make(chan result, 1)
	go func() {
		id, err := v.Verify(ctx, token)
		resultCh <- result{id: id, err: err}
	}()

	select {
	case r := <-resultCh:
		return r.id, r.err
	case <-ctx.Done():
		return Identity{}, ctx.Err()
	}
}
