package identity

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/s3share/internal/common"
	"github.com/dmitrijs2005/s3share/internal/config"
	"golang.org/x/oauth2"
)

// Provider is the redirect-based identity provider.
type Provider interface {
	// SignInURL is where the browser goes to sign in.
	SignInURL(state string) string
	// Exchange trades an authorization code for an ID token.
	Exchange(ctx context.Context, code string) (string, error)
	// SignOutURL is where the browser goes after the local session is removed.
	SignOutURL() string
}

// CognitoProvider talks to a Cognito user pool hosted UI.
type CognitoProvider struct {
	oauth     *oauth2.Config
	domain    string
	logoutURI string
}

// NewCognitoProvider builds a provider from the Cognito settings in c.
func NewCognitoProvider(c *config.Config) *CognitoProvider {
	domain := strings.TrimRight(c.CognitoDomain, "/")

	authStyle := oauth2.AuthStyleInParams
	if c.CognitoClientSecret != "" {
		authStyle = oauth2.AuthStyleInHeader
	}

	return &CognitoProvider{
		oauth: &oauth2.Config{
			ClientID:     c.CognitoClientID,
			ClientSecret: c.CognitoClientSecret,
			RedirectURL:  c.CognitoRedirectURI,
			Scopes:       []string{"openid", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   domain + "/oauth2/authorize",
				TokenURL:  domain + "/oauth2/token",
				AuthStyle: authStyle,
			},
		},
		domain:    domain,
		logoutURI: c.CognitoLogoutURI,
	}
}

func (p *CognitoProvider) SignInURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

func (p *CognitoProvider) Exchange(ctx context.Context, code string) (string, error) {
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}

	idToken, ok := tok.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", common.ErrInvalidToken
	}
	return idToken, nil
}

func (p *CognitoProvider) SignOutURL() string {
	return fmt.Sprintf("%s/logout?client_id=%s&logout_uri=%s",
		p.domain, p.oauth.ClientID, url.QueryEscape(p.logoutURI))
}
