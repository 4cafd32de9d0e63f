package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"gorm.io/gorm"

	"github.com/gtwndtl/travelbook-backend/entity"
)

// SocialProfile is the normalized identity a provider hands back after a
// successful external handshake.
type SocialProfile struct {
	Email      string
	Name       string
	Provider   string
	ProviderID string
}

// ErrSocialAuthFailed is returned when the provider rejects the presented
// token or the profile is unusable.
var ErrSocialAuthFailed = errors.New("social authentication failed")

// ProviderVerifier exchanges a provider access token for a profile. The
// OAuth browser dance happens on the client; the backend only verifies the
// resulting token against the provider.
type ProviderVerifier interface {
	Verify(ctx context.Context, accessToken string) (SocialProfile, error)
}

// GoogleVerifier validates tokens against the Google userinfo endpoint.
type GoogleVerifier struct {
	Client *http.Client
}

func (v *GoogleVerifier) Verify(ctx context.Context, accessToken string) (SocialProfile, error) {
	var body struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := fetchJSON(ctx, v.Client, "https://www.googleapis.com/oauth2/v3/userinfo?access_token="+url.QueryEscape(accessToken), &body); err != nil {
		return SocialProfile{}, err
	}
	if body.Sub == "" || body.Email == "" {
		return SocialProfile{}, ErrSocialAuthFailed
	}
	return SocialProfile{
		Email:      body.Email,
		Name:       body.Name,
		Provider:   entity.ProviderGoogle,
		ProviderID: body.Sub,
	}, nil
}

// FacebookVerifier validates tokens against the Facebook Graph API.
type FacebookVerifier struct {
	Client *http.Client
}

func (v *FacebookVerifier) Verify(ctx context.Context, accessToken string) (SocialProfile, error) {
	var body struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := fetchJSON(ctx, v.Client, "https://graph.facebook.com/me?fields=id,name,email&access_token="+url.QueryEscape(accessToken), &body); err != nil {
		return SocialProfile{}, err
	}
	if body.ID == "" || body.Email == "" {
		return SocialProfile{}, ErrSocialAuthFailed
	}
	return SocialProfile{
		Email:      body.Email,
		Name:       body.Name,
		Provider:   entity.ProviderFacebook,
		ProviderID: body.ID,
	}, nil
}

func fetchJSON(ctx context.Context, client *http.Client, rawURL string, out any) error {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSocialAuthFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ErrSocialAuthFailed
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FindOrCreateUser resolves a social profile to a local account: match on
// (provider, providerId) first; else link the provider to an existing email
// account; else create a fresh user with the default role.
func FindOrCreateUser(db *gorm.DB, p SocialProfile) (*entity.User, error) {
	var user entity.User
	err := db.Where("provider = ? AND provider_id = ?", p.Provider, p.ProviderID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	err = db.Where("email = ?", p.Email).First(&user).Error
	if err == nil {
		// Link provider to the existing account.
		user.Provider = p.Provider
		user.ProviderID = &p.ProviderID
		if err := db.Save(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	user = entity.User{
		Email:      p.Email,
		Name:       p.Name,
		Role:       entity.RoleUser,
		Provider:   p.Provider,
		ProviderID: &p.ProviderID,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
