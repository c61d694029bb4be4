package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"team-scheduler-api/core/cache"
	"team-scheduler-api/core/config"
	"team-scheduler-api/core/constants"
	"team-scheduler-api/core/errors"
	"team-scheduler-api/core/logger"
	"team-scheduler-api/core/utils"
	"team-scheduler-api/modules/auth/dto"
	"team-scheduler-api/modules/auth/entity"
	"team-scheduler-api/modules/auth/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var googleScopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/calendar",
}

// AuthServiceInterface defines the auth contract.
type AuthServiceInterface interface {
	GetGoogleLoginURL(ctx context.Context) (*dto.LoginURLResponse, *errors.AppError)
	HandleGoogleCallback(ctx context.Context, state, code string) (*dto.CallbackResponse, *errors.AppError)
	Logout(ctx context.Context, token string) *errors.AppError
	GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
}

type AuthService struct {
	repo        *repository.AuthRepository
	cache       cache.Cache
	userInfoURL string
}

func NewAuthService(repo *repository.AuthRepository, c cache.Cache) *AuthService {
	return &AuthService{
		repo:        repo,
		cache:       c,
		userInfoURL: constants.GoogleUserInfoAPI,
	}
}

func (service *AuthService) oauthConfig() (*oauth2.Config, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, fmt.Errorf("config not initialized")
	}
	return &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		RedirectURL:  cfg.GoogleAPI.RedirectURL,
		Scopes:       googleScopes,
		Endpoint:     google.Endpoint,
	}, nil
}

// GetGoogleLoginURL builds the consent URL. Offline access with forced
// consent so a refresh token is issued on every authorization.
func (service *AuthService) GetGoogleLoginURL(ctx context.Context) (*dto.LoginURLResponse, *errors.AppError) {
	oauthCfg, err := service.oauthConfig()
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Server configuration error", err)
	}

	state := utils.GenerateRandomString(32)
	if err := service.cache.SetOAuthState(ctx, state, constants.OAuthStateTTL); err != nil {
		logger.Error("AuthService:GetGoogleLoginURL:SetOAuthState:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save OAuth state", err)
	}

	url := oauthCfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)

	return &dto.LoginURLResponse{URL: url, State: state}, nil
}

// HandleGoogleCallback exchanges the authorization code, upserts the user and
// stores the calendar credential. Credential storage failure fails the whole
// callback: a user signed in without a stored credential would silently
// surface later as IncompleteParticipants in every availability check.
func (service *AuthService) HandleGoogleCallback(ctx context.Context, state, code string) (*dto.CallbackResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	ok, err := service.cache.ConsumeOAuthState(ctx, state)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:ConsumeOAuthState:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to verify OAuth state", err)
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid or expired OAuth state", nil)
	}

	oauthCfg, err := service.oauthConfig()
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Server configuration error", err)
	}

	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:Exchange:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "failed to exchange authorization code", err)
	}

	userInfo, appErr := service.fetchGoogleUserInfo(ctx, token.AccessToken)
	if appErr != nil {
		return nil, appErr
	}

	email := strings.ToLower(userInfo.Email)
	var domain *string
	if at := strings.LastIndex(email, "@"); at >= 0 {
		d := email[at+1:]
		domain = &d
	}

	user := &entity.User{Email: email, Domain: domain}
	if userInfo.Name != "" {
		user.Name = &userInfo.Name
	}
	if userInfo.Picture != "" {
		user.ImageURL = &userInfo.Picture
	}

	stored, err := service.repo.UpsertUser(ctx, user)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save user", err)
	}

	cred := &entity.GoogleCredential{
		UserID:      stored.ID,
		Email:       email,
		AccessToken: token.AccessToken,
		Scope:       strings.Join(googleScopes, " "),
	}
	if token.RefreshToken != "" {
		rt := token.RefreshToken
		cred.RefreshToken = &rt
	}
	if !token.Expiry.IsZero() {
		exp := token.Expiry
		cred.ExpiresAt = &exp
	}

	if err := service.repo.UpsertCredential(ctx, cred); err != nil {
		logger.Error("AuthService:HandleGoogleCallback:UpsertCredential:Error", "error", err, "email", email)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to store calendar credential", err)
	}

	sessionToken, err := utils.GenerateToken(stored.ID, stored.Email)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:GenerateToken:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue session token", err)
	}

	return &dto.CallbackResponse{
		Token: sessionToken,
		User:  toUserResponse(stored),
	}, nil
}

// Logout blacklists the session token until its natural expiry.
func (service *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return errors.NewAppError(errors.ErrUnauthorized, "invalid token", err)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := service.cache.BlacklistToken(ctx, token, ttl); err != nil {
		logger.Error("AuthService:Logout:BlacklistToken:Error", "error", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
	}
	return nil
}

func (service *AuthService) GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := service.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "User not found", nil)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (service *AuthService) fetchGoogleUserInfo(ctx context.Context, accessToken string) (*dto.GoogleUserInfo, *errors.AppError) {
	req, err := http.NewRequestWithContext(ctx, "GET", service.userInfoURL, nil)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	client := &http.Client{Timeout: constants.ProviderCallTimeout}
	resp, err := client.Do(req)
	if err != nil {
		logger.Error("AuthService:fetchGoogleUserInfo:DoRequest:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch user info", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("AuthService:fetchGoogleUserInfo:APIError", "status", resp.StatusCode)
		return nil, errors.NewAppError(errors.ErrInternalServer, fmt.Sprintf("Google userinfo error: %d", resp.StatusCode), nil)
	}

	var info dto.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to parse user info", err)
	}
	if info.Email == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Google account has no email", nil)
	}

	return &info, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:    u.ID.String(),
		Email: u.Email,
	}
	if u.Name != nil {
		resp.Name = *u.Name
	}
	if u.Domain != nil {
		resp.Domain = *u.Domain
	}
	if u.ImageURL != nil {
		resp.ImageURL = *u.ImageURL
	}
	return resp
}
