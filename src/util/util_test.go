package util

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("jane@example.com"))
	assert.True(t, ValidateEmail("jane.doe+budget@mail.example.org"))
	assert.False(t, ValidateEmail("jane"))
	assert.False(t, ValidateEmail("jane@"))
	assert.False(t, ValidateEmail(""))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("Budget2024"))
	assert.False(t, ValidatePassword("Short1"))
	assert.False(t, ValidatePassword("alllowercase1"))
	assert.False(t, ValidatePassword("ALLUPPERCASE1"))
	assert.False(t, ValidatePassword("NoDigitsHere"))
	assert.False(t, ValidatePassword("A1"+strings.Repeat("a", 80)))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", got)

	for _, bad := range []string{"", "2024-3-5", "03/05/2024", "2024-02-30"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Generate(42, "jane@example.com")
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("one", time.Hour).Generate(1, "a@example.com")
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := issuer.Generate(1, "a@example.com")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Minute).Parse(token)
	assert.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	_, err := issuer.Parse("")
	assert.Error(t, err)
	_, err = issuer.Parse("not.a.token")
	assert.Error(t, err)
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, http.StatusBadRequest, "bad things")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"bad things"}`, rr.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"rent"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "rent", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"rent"} {"x":1}`))
	assert.Error(t, DecodeJSON(req, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`nope`))
	assert.Error(t, DecodeJSON(req, &dst))
}
