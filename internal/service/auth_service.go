package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	config "github.com/maheshrc27/devjournal/configs"
	"github.com/maheshrc27/devjournal/internal/models"
	"github.com/maheshrc27/devjournal/internal/repository"
	"github.com/maheshrc27/devjournal/internal/transfer"
	"github.com/maheshrc27/devjournal/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const SessionDuration = 7 * 24 * time.Hour

// IdentityProvider resolves an OAuth authorization code to a user profile.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*transfer.GoogleUserInfo, error)
}

type googleProvider struct {
	oauth2Config *oauth2.Config
}

func NewGoogleProvider(cfg config.Config) IdentityProvider {
	return &googleProvider{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURI,
			Scopes:       []string{googleoauth.UserinfoEmailScope, googleoauth.UserinfoProfileScope},
			Endpoint:     google.Endpoint,
		},
	}
}

func (p *googleProvider) AuthCodeURL(state string) string {
	return p.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (p *googleProvider) Exchange(ctx context.Context, code string) (*transfer.GoogleUserInfo, error) {
	if p.oauth2Config.ClientID == "" || p.oauth2Config.ClientSecret == "" || p.oauth2Config.RedirectURL == "" {
		err := errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return nil, err
	}

	token, err := p.oauth2Config.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	client := p.oauth2Config.Client(ctx, token)
	svc, err := googleoauth.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error fetching user info: %w", err)
	}

	return &transfer.GoogleUserInfo{
		ID:      info.Id,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

type AuthService interface {
	LoginURL(state string) string
	LoginCallback(ctx context.Context, code string) (string, *models.User, error)
	ValidateSession(token string) (string, error)
}

type authService struct {
	secretKey string
	idp       IdentityProvider
	u         repository.UserRepository
}

func NewAuthService(secretKey string, idp IdentityProvider, u repository.UserRepository) AuthService {
	return &authService{
		secretKey: secretKey,
		idp:       idp,
		u:         u,
	}
}

func (s *authService) LoginURL(state string) string {
	return s.idp.AuthCodeURL(state)
}

// LoginCallback exchanges the authorization code, records the user and
// returns a signed session token.
func (s *authService) LoginCallback(ctx context.Context, code string) (string, *models.User, error) {
	if code == "" {
		err := newValidationError("authorization code is empty")
		slog.Info(err.Error())
		return "", nil, err
	}

	userInfo, err := s.idp.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if userInfo.ID == "" {
		return "", nil, fmt.Errorf("%w: identity provider returned no subject", ErrUnauthorized)
	}

	user := &models.User{
		ID:             userInfo.ID,
		Email:          userInfo.Email,
		Name:           userInfo.Name,
		ProfilePicture: userInfo.Picture,
	}
	if err := s.u.Upsert(ctx, user); err != nil {
		return "", nil, fmt.Errorf("saving user: %w", err)
	}

	token, err := utils.GenerateToken(s.secretKey, user.ID, SessionDuration)
	if err != nil {
		return "", nil, fmt.Errorf("creating session: %w", err)
	}

	return token, user, nil
}

func (s *authService) ValidateSession(token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}

	claims, err := utils.ValidateToken(s.secretKey, token)
	if err != nil {
		return "", ErrUnauthorized
	}
	return claims.UserID, nil
}
