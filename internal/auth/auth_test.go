package auth

import (
	"testing"
	"time"

	"guidepost/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *StaticCredentialStore {
	t.Helper()
	store, err := NewStaticCredentialStore(&config.Config{
		ModeratorEmail:    "test@t.ca",
		ModeratorPassword: "123456Pw",
	})
	require.NoError(t, err)
	return store
}

func TestAuthenticate(t *testing.T) {
	a := NewAuthenticator(testStore(t))

	tests := []struct {
		name     string
		email    string
		password string
		want     bool
	}{
		{"valid credentials", "test@t.ca", "123456Pw", true},
		{"wrong password", "test@t.ca", "wrongpass", false},
		{"unknown email", "nobody@t.ca", "123456Pw", false},
		{"empty credentials", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal := a.Authenticate(tt.email, tt.password)
			if tt.want {
				require.NotNil(t, principal)
				assert.Equal(t, uint(1), principal.ID)
				assert.Equal(t, "test@t.ca", principal.Email)
				assert.Equal(t, "moderator", principal.Role)
			} else {
				assert.Nil(t, principal)
			}
		})
	}
}

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test_secret", 24*time.Hour)
	principal := &Principal{ID: 1, Email: "test@t.ca", Role: "moderator"}

	token, err := issuer.Issue(principal)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, principal.ID, got.ID)
	assert.Equal(t, principal.Email, got.Email)
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test_secret", 24*time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	token, err := issuer.Issue(&Principal{ID: 1, Email: "test@t.ca"})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid or expired token")
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test_secret", 24*time.Hour)

	for _, token := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		_, err := issuer.Verify(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test_secret", 24*time.Hour)
	other := NewTokenIssuer("other_secret", 24*time.Hour)

	token, err := other.Issue(&Principal{ID: 1, Email: "test@t.ca"})
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}
