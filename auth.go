package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL        = 5 * time.Hour
	bcryptCost      = 10
	sharingKeyChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	sharingKeyLen   = 50
	resetTokenBytes = 20
	resetTokenTTL   = time.Hour

	claimsContextKey = "linkdeck.claims"
)

// errInvalidToken covers every verification failure: bad signature,
// malformed structure, expired. Callers never learn which.
var errInvalidToken = errors.New("invalid token")

type TokenClaims struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	UniqueKey string `json:"unique_key"`
	jwt.StandardClaims
}

func issueToken(user *UserRow, secret []byte, now time.Time) (string, error) {
	claims := &TokenClaims{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		UniqueKey: user.UniqueKey,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenTTL).Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("error SignedString: %w", err)
	}
	return signed, nil
}

func verifyToken(tokenString string, secret []byte) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}

// authRequired guards every private route. Routes registered under the
// guarded group get the verified claims in the request context, so a
// handler cannot run without a valid bearer token.
func authRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return errorResponse(c, 401, "Unauthorized")
		}
		claims, err := verifyToken(strings.TrimPrefix(header, "Bearer "), jwtSecret)
		if err != nil {
			c.Logger().Debugf("error verifyToken: %s", err)
			return errorResponse(c, 401, "Unauthorized")
		}
		c.Set(claimsContextKey, claims)
		return next(c)
	}
}

func currentClaims(c echo.Context) *TokenClaims {
	return c.Get(claimsContextKey).(*TokenClaims)
}

func generatePasswordHash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error bcrypt.GenerateFromPassword: %w", err)
	}
	return string(hashed), nil
}

func comparePasswordHash(password, passwordHash string) (bool, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return false, nil
		}
		return false, fmt.Errorf("error bcrypt.CompareHashAndPassword: %w", err)
	}
	return true, nil
}

// generateSharingKey builds the permanent public-access capability for an
// account: 50 random alphanumeric characters with the creation timestamp
// (unix milliseconds) appended. Keys are never regenerated or rotated.
func generateSharingKey(now time.Time) (string, error) {
	b := make([]byte, sharingKeyLen)
	max := big.NewInt(int64(len(sharingKeyChars)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("error rand.Int: %w", err)
		}
		b[i] = sharingKeyChars[n.Int64()]
	}
	return string(b) + strconv.FormatInt(now.UnixMilli(), 10), nil
}

func generateResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("error rand.Read: %w", err)
	}
	return hex.EncodeToString(b), nil
}
