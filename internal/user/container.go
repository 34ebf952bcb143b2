package user

import (
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

type UserContainer struct {
	Repo    UserRepository
	Service UserService
	Handler *Handler
}

func NewUserContainer(db *gorm.DB) *UserContainer {
	oauthConfig := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}

	repo := NewRepository(db)
	service := NewService(repo, NewGoogleProvider(oauthConfig))
	handler := NewHandler(service)

	return &UserContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
