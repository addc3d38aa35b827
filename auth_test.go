package main

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyToken(t *testing.T) {
	secret := []byte("test-secret")
	user := &UserRow{
		ID:        42,
		Name:      "A",
		Email:     "a@x.com",
		UniqueKey: "key-42",
	}

	token, err := issueToken(user, secret, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := verifyToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.ID)
	assert.Equal(t, "A", claims.Name)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "key-42", claims.UniqueKey)
}

func TestVerifyTokenExpired(t *testing.T) {
	secret := []byte("test-secret")
	user := &UserRow{ID: 1, Email: "a@x.com"}

	// issued long enough ago that the embedded expiry has passed
	token, err := issueToken(user, secret, time.Now().Add(-tokenTTL-time.Minute))
	require.NoError(t, err)

	_, err = verifyToken(token, secret)
	assert.ErrorIs(t, err, errInvalidToken)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	user := &UserRow{ID: 1, Email: "a@x.com"}

	token, err := issueToken(user, []byte("secret-one"), time.Now())
	require.NoError(t, err)

	_, err = verifyToken(token, []byte("secret-two"))
	assert.ErrorIs(t, err, errInvalidToken)
}

func TestVerifyTokenMalformed(t *testing.T) {
	for _, token := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := verifyToken(token, []byte("test-secret"))
		assert.ErrorIs(t, err, errInvalidToken, "token=%q", token)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := generatePasswordHash("secret12")
	require.NoError(t, err)
	require.NotEqual(t, "secret12", hash)

	ok, err := comparePasswordHash("secret12", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = comparePasswordHash("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateSharingKey(t *testing.T) {
	now := time.Now()
	key, err := generateSharingKey(now)
	require.NoError(t, err)

	// 50 random chars followed by the unix-millisecond timestamp
	suffix := strconv.FormatInt(now.UnixMilli(), 10)
	require.Len(t, key, sharingKeyLen+len(suffix))
	assert.True(t, strings.HasSuffix(key, suffix))
	for _, r := range key[:sharingKeyLen] {
		assert.Contains(t, sharingKeyChars, string(r))
	}
}

func TestGenerateSharingKeyUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := generateSharingKey(time.Now())
		require.NoError(t, err)
		assert.False(t, seen[key], "duplicate sharing key: %s", key)
		seen[key] = true
	}
}

func TestGenerateResetToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := generateResetToken()
		require.NoError(t, err)
		require.Len(t, token, resetTokenBytes*2)
		assert.False(t, seen[token], "duplicate reset token: %s", token)
		seen[token] = true
	}
}

func newAuthTestContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/contents", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	c, rec := newAuthTestContext("")
	handler := authRequired(func(c echo.Context) error {
		t.Fatal("handler must not run without credentials")
		return nil
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequiredWrongScheme(t *testing.T) {
	c, rec := newAuthTestContext("Basic dXNlcjpwYXNz")
	handler := authRequired(func(c echo.Context) error {
		t.Fatal("handler must not run without a bearer credential")
		return nil
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	c, rec := newAuthTestContext("Bearer not-a-token")
	handler := authRequired(func(c echo.Context) error {
		t.Fatal("handler must not run with an invalid token")
		return nil
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequiredValidToken(t *testing.T) {
	user := &UserRow{ID: 7, Name: "B", Email: "b@x.com", UniqueKey: "key-7"}
	token, err := issueToken(user, jwtSecret, time.Now())
	require.NoError(t, err)

	c, rec := newAuthTestContext("Bearer " + token)
	var got *TokenClaims
	handler := authRequired(func(c echo.Context) error {
		got = currentClaims(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "b@x.com", got.Email)
}
