package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"faq-management-be/internal/config"
	"faq-management-be/internal/dto"
	"faq-management-be/internal/repository/memory"
	"faq-management-be/pkg/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

type IAuthService interface {
	// Login is the simplified form-based path: raw email+name checked
	// against the allowed-domain policy.
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// LoginWithGoogleToken is the hardened path: an externally issued Google
	// ID token whose audience and email claims are verified before the same
	// domain policy applies.
	LoginWithGoogleToken(ctx context.Context, idToken string) (*dto.LoginResponse, error)
	GetGoogleLoginURL() (string, error)
	HandleGoogleCallback(ctx context.Context, code string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, sessionID string)
}

type authService struct {
	cfg          config.AuthConfig
	sessions     *memory.SessionRepository
	googleConf   *oauth2.Config
	tokenInfoURL string
}

func NewAuthService(cfg config.AuthConfig, sessions *memory.SessionRepository) IAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &authService{
		cfg:          cfg,
		sessions:     sessions,
		googleConf:   conf,
		tokenInfoURL: googleTokenInfoURL,
	}
}

// allowedEmail applies the domain policy. The suffix includes the "@", so
// subdomain addresses like user@sub.dai.co.jp are rejected. Comparison is
// case-insensitive.
func (s *authService) allowedEmail(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), strings.ToLower(s.cfg.AllowedDomain))
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if !s.allowedEmail(req.Email) {
		return nil, fmt.Errorf("only %s accounts may use this app", s.cfg.AllowedDomain)
	}
	return s.openSession(req.Email, req.Name)
}

func (s *authService) LoginWithGoogleToken(ctx context.Context, idToken string) (*dto.LoginResponse, error) {
	endpoint := s.tokenInfoURL + "?id_token=" + url.QueryEscape(idToken)
	res, err := http.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %v", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, errors.New("invalid identity token")
	}

	var info struct {
		Aud           string `json:"aud"`
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}

	if info.Aud != s.cfg.GoogleClientID {
		return nil, errors.New("identity token issued for a different client")
	}
	if info.EmailVerified != "true" {
		return nil, errors.New("email address not verified by identity provider")
	}
	if !s.allowedEmail(info.Email) {
		return nil, fmt.Errorf("only %s accounts may use this app", s.cfg.AllowedDomain)
	}

	return s.openSession(info.Email, info.Name)
}

func (s *authService) GetGoogleLoginURL() (string, error) {
	if s.cfg.GoogleClientID == "" {
		return "", errors.New("google login is not configured")
	}

	b := make([]byte, 16)
	rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), nil
}

func (s *authService) HandleGoogleCallback(ctx context.Context, code string) (*dto.LoginResponse, error) {
	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %v", err)
	}

	userInfoURL := "https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + url.QueryEscape(token.AccessToken)
	res, err := http.Get(userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %v", err)
	}
	defer res.Body.Close()

	content, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var googleUser struct {
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
		Name          string `json:"name"`
	}
	if err := json.Unmarshal(content, &googleUser); err != nil {
		return nil, err
	}

	if !googleUser.VerifiedEmail {
		return nil, errors.New("email address not verified by identity provider")
	}
	if !s.allowedEmail(googleUser.Email) {
		return nil, fmt.Errorf("only %s accounts may use this app", s.cfg.AllowedDomain)
	}

	return s.openSession(googleUser.Email, googleUser.Name)
}

func (s *authService) Logout(ctx context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
}

// openSession creates the in-memory session and signs the access token that
// points at it.
func (s *authService) openSession(email, name string) (*dto.LoginResponse, error) {
	session := &store.Session{
		ID:            uuid.New().String(),
		Email:         email,
		Name:          name,
		Authenticated: true,
	}
	s.sessions.Save(session)

	claims := jwt.MapClaims{
		"sid":   session.ID,
		"email": email,
		"exp":   time.Now().Add(time.Duration(s.cfg.SessionTTLMinutes) * time.Minute).Unix(),
	}
	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := jwtToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signedToken,
		User: dto.UserDTO{
			Email: email,
			Name:  name,
		},
	}, nil
}
