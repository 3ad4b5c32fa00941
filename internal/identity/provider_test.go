package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dmitrijs2005/s3share/internal/common"
	"github.com/dmitrijs2005/s3share/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(domain string) *config.Config {
	return &config.Config{
		CognitoClientID:     "client-123",
		CognitoClientSecret: "shh",
		CognitoDomain:       domain + "/",
		CognitoRedirectURI:  "http://localhost:5173/callback",
		CognitoLogoutURI:    "http://localhost:5173",
	}
}

func TestCognitoProvider_SignInURL(t *testing.T) {
	p := NewCognitoProvider(testConfig("https://auth.example.com"))

	u, err := url.Parse(p.SignInURL("state-1"))
	require.NoError(t, err)

	assert.Equal(t, "auth.example.com", u.Host)
	assert.Equal(t, "/oauth2/authorize", u.Path)
	q := u.Query()
	assert.Equal(t, "client-123", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "openid email", q.Get("scope"))
	assert.Equal(t, "http://localhost:5173/callback", q.Get("redirect_uri"))
}

func TestCognitoProvider_SignOutURL(t *testing.T) {
	p := NewCognitoProvider(testConfig("https://auth.example.com"))

	assert.Equal(t,
		"https://auth.example.com/logout?client_id=client-123&logout_uri=http%3A%2F%2Flocalhost%3A5173",
		p.SignOutURL())
}

func TestCognitoProvider_Exchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth2/token" {
			http.NotFound(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client-123" || pass != "shh" {
			http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
			return
		}
		if err := r.ParseForm(); err != nil || r.PostForm.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":3600,"id_token":"the-id-token"}`))
	}))
	defer srv.Close()

	p := NewCognitoProvider(testConfig(srv.URL))

	t.Run("ok", func(t *testing.T) {
		tok, err := p.Exchange(context.Background(), "good-code")
		require.NoError(t, err)
		assert.Equal(t, "the-id-token", tok)
	})

	t.Run("rejected code", func(t *testing.T) {
		_, err := p.Exchange(context.Background(), "bad-code")
		assert.Error(t, err)
	})
}

func TestCognitoProvider_Exchange_NoIDToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer"}`))
	}))
	defer srv.Close()

	p := NewCognitoProvider(testConfig(srv.URL))

	_, err := p.Exchange(context.Background(), "code")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
