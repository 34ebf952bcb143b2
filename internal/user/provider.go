package user

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// Profile is what the identity provider vouches for.
type Profile struct {
	Subject       string
	Email         string
	Name          string
	EmailVerified bool
}

type IdentityProvider interface {
	Exchange(ctx context.Context, code string) (*Profile, error)
}

type googleProvider struct {
	oauthConfig *oauth2.Config
}

func NewGoogleProvider(oauthConfig *oauth2.Config) IdentityProvider {
	return &googleProvider{oauthConfig: oauthConfig}
}

func (p *googleProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	srv, err := goauth2.NewService(ctx, option.WithTokenSource(p.oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("create oauth2 client: %w", err)
	}

	info, err := srv.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch google userinfo: %w", err)
	}

	return &Profile{
		Subject:       info.Id,
		Email:         info.Email,
		Name:          info.Name,
		EmailVerified: info.VerifiedEmail != nil && *info.VerifiedEmail,
	}, nil
}
