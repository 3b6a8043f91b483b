package lightcast

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// oauthScope is the open-access scope Lightcast grants for the skills API.
const oauthScope = "emsi_open"

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// fetchToken exchanges the client credentials for a short-lived bearer
// token. Tokens are not cached: each incoming request batch re-authenticates
// so that credential rotation takes effect immediately.
func (g *Gateway) fetchToken(ctx context.Context) (string, error) {
	if g.clientID == "" || g.clientSecret == "" {
		return "", &ErrMissingCredentials{}
	}

	form := url.Values{}
	form.Set("client_id", g.clientID)
	form.Set("client_secret", g.clientSecret)
	form.Set("grant_type", "client_credentials")
	form.Set("scope", oauthScope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", &ErrUpstreamUnavailable{Operation: "auth", Status: 0, Body: err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ErrUpstreamUnavailable{Operation: "auth", Status: resp.StatusCode, Body: string(body)}
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil || token.AccessToken == "" {
		return "", &ErrUpstreamUnavailable{Operation: "auth", Status: resp.StatusCode, Body: "no access_token in reply"}
	}

	return token.AccessToken, nil
}
