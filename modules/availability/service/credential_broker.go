package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"team-scheduler-api/core/config"
	"team-scheduler-api/core/constants"
	"team-scheduler-api/core/logger"
	authEntity "team-scheduler-api/modules/auth/entity"
)

// CredentialStore is the persistence surface the broker needs. Implemented by
// the auth repository.
type CredentialStore interface {
	GetCredentialByEmail(ctx context.Context, email string) (*authEntity.GoogleCredential, error)
	UpsertCredential(ctx context.Context, cred *authEntity.GoogleCredential) error
	DeleteCredentialByEmail(ctx context.Context, email string) error
	ListExpiringCredentials(ctx context.Context, cutoff time.Time) ([]authEntity.GoogleCredential, error)
}

// ResolveResult partitions the requested identities: every identity lands in
// exactly one of Ready or Missing, never both, never neither.
type ResolveResult struct {
	Ready   map[string]authEntity.GoogleCredential
	Missing []string
}

// CredentialBroker resolves a usable bearer credential per participant,
// refreshing tokens that are expired or inside the safety buffer. A missing
// or unrefreshable credential is reported, never papered over: treating "no
// credential" as "no busy time" would corrupt the availability intersection.
type CredentialBroker struct {
	store    CredentialStore
	tokenURL string
	buffer   time.Duration
	client   *http.Client
	now      func() time.Time
}

func NewCredentialBroker(store CredentialStore) *CredentialBroker {
	return &CredentialBroker{
		store:    store,
		tokenURL: constants.GoogleTokenURL,
		buffer:   constants.TokenRefreshBuffer,
		client:   &http.Client{Timeout: constants.ProviderCallTimeout},
		now:      time.Now,
	}
}

// Resolve looks up a credential for each identity, refreshing where needed.
// At most one refresh attempt is made per identity per call. The returned
// error covers store failures only; provider refresh failures degrade the
// identity to Missing instead.
func (b *CredentialBroker) Resolve(ctx context.Context, emails []string) (*ResolveResult, error) {
	result := &ResolveResult{
		Ready:   make(map[string]authEntity.GoogleCredential, len(emails)),
		Missing: make([]string, 0),
	}

	for _, email := range emails {
		email = strings.ToLower(email)

		cred, err := b.store.GetCredentialByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to load credential for %s: %w", email, err)
		}
		if cred == nil {
			result.Missing = append(result.Missing, email)
			continue
		}

		if cred.Usable(b.now(), b.buffer) {
			result.Ready[email] = *cred
			continue
		}

		refreshed, outcome := b.refresh(ctx, cred)
		switch outcome {
		case refreshOK:
			result.Ready[email] = *refreshed
		case refreshPermanentFailure:
			// The grant itself is dead; keeping the row would make every
			// later request repeat a refresh that can never succeed.
			if err := b.store.DeleteCredentialByEmail(ctx, email); err != nil {
				logger.Error("CredentialBroker:Resolve:DeleteCredential:Error", "error", err, "email", email)
			}
			result.Missing = append(result.Missing, email)
		case refreshTransientFailure:
			result.Missing = append(result.Missing, email)
		}
	}

	return result, nil
}

// RefreshExpiring proactively refreshes stored credentials whose expiry falls
// within twice the safety buffer. Used by the periodic background sweep so
// interactive requests rarely pay the refresh round-trip.
func (b *CredentialBroker) RefreshExpiring(ctx context.Context) (refreshed int, dropped int, err error) {
	cutoff := b.now().Add(2 * b.buffer)
	creds, err := b.store.ListExpiringCredentials(ctx, cutoff)
	if err != nil {
		return 0, 0, err
	}

	for i := range creds {
		cred := creds[i]
		_, outcome := b.refresh(ctx, &cred)
		switch outcome {
		case refreshOK:
			refreshed++
		case refreshPermanentFailure:
			if err := b.store.DeleteCredentialByEmail(ctx, cred.Email); err != nil {
				logger.Error("CredentialBroker:RefreshExpiring:DeleteCredential:Error", "error", err, "email", cred.Email)
			}
			dropped++
		}
	}

	return refreshed, dropped, nil
}

type refreshOutcome int

const (
	refreshOK refreshOutcome = iota
	refreshPermanentFailure
	refreshTransientFailure
)

type tokenEndpointResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int    `json:"expires_in"`
	RefreshToken     string `json:"refresh_token"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// refresh performs a single refresh-token grant against the provider token
// endpoint. invalid_grant means the refresh token itself has been revoked —
// a permanent, non-retryable condition. Everything else (network failures,
// 5xx, rate limits) is transient and leaves the stored credential intact.
func (b *CredentialBroker) refresh(ctx context.Context, cred *authEntity.GoogleCredential) (*authEntity.GoogleCredential, refreshOutcome) {
	if cred.RefreshToken == nil || *cred.RefreshToken == "" {
		logger.Warn("CredentialBroker:refresh:NoRefreshToken", "email", cred.Email)
		return nil, refreshTransientFailure
	}

	cfg, ok := config.GetSafe()
	if !ok {
		logger.Error("CredentialBroker:refresh:ConfigNotInitialized")
		return nil, refreshTransientFailure
	}

	form := url.Values{}
	form.Set("client_id", cfg.GoogleAPI.ClientID)
	form.Set("client_secret", cfg.GoogleAPI.ClientSecret)
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", *cred.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, "POST", b.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, refreshTransientFailure
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.client.Do(req)
	if err != nil {
		logger.Error("CredentialBroker:refresh:DoRequest:Error", "error", err, "email", cred.Email)
		return nil, refreshTransientFailure
	}
	defer resp.Body.Close()

	var body tokenEndpointResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.Error("CredentialBroker:refresh:Decode:Error", "error", err, "email", cred.Email)
		return nil, refreshTransientFailure
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && body.Error == "invalid_grant" {
			logger.Warn("CredentialBroker:refresh:InvalidGrant",
				"email", cred.Email, "description", body.ErrorDescription)
			return nil, refreshPermanentFailure
		}
		logger.Error("CredentialBroker:refresh:TokenEndpointError",
			"status", resp.StatusCode, "provider_error", body.Error, "email", cred.Email)
		return nil, refreshTransientFailure
	}

	if body.AccessToken == "" {
		logger.Error("CredentialBroker:refresh:NoAccessToken", "email", cred.Email)
		return nil, refreshTransientFailure
	}

	expiresAt := b.now().Add(time.Duration(body.ExpiresIn) * time.Second)
	cred.AccessToken = body.AccessToken
	cred.ExpiresAt = &expiresAt
	if body.RefreshToken != "" {
		rt := body.RefreshToken
		cred.RefreshToken = &rt
	}

	// The in-memory token is valid for this request even if persisting it
	// fails; the failure is logged so the gap is visible.
	if err := b.store.UpsertCredential(ctx, cred); err != nil {
		logger.Error("CredentialBroker:refresh:UpsertCredential:Error", "error", err, "email", cred.Email)
	}

	return cred, refreshOK
}
