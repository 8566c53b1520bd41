package msgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

var requiredScopes = []string{
	"https://graph.microsoft.com/Calendars.Read",
	"offline_access",
}

func msEndpoint(tenantID, path string) string {
	return "https://login.microsoftonline.com/" + tenantID + "/oauth2/v2.0/" + path
}

// OAuth2Config returns the device code flow configuration for Microsoft
// Graph with the given tenant and client IDs.
func OAuth2Config(tenantID, clientID string) *oauth2.Config {
	return &oauth2.Config{
		ClientID: clientID,
		Scopes:   requiredScopes,
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: msEndpoint(tenantID, "devicecode"),
			TokenURL:      msEndpoint(tenantID, "token"),
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

// TokenStore persists OAuth2 tokens as JSON in a single file.
type TokenStore struct {
	Path string
}

// DefaultTokenStore stores tokens in ~/.ttt/auth/msgraph_tokens.json.
func DefaultTokenStore() (TokenStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return TokenStore{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	return TokenStore{Path: filepath.Join(home, ".ttt", "auth", "msgraph_tokens.json")}, nil
}

// Load returns the saved token, or nil if none has been saved yet.
func (s TokenStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s to re-authenticate): %w", s.Path, err)
	}
	return &tok, nil
}

// Save writes tok through a temp file and rename.
func (s TokenStore) Save(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	tmpPath := s.Path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// Authenticate returns a usable token. It reuses a saved token, refreshes an
// expired one, or runs the device code flow and prints the sign-in
// instructions to prompt.
func Authenticate(ctx context.Context, cfg *oauth2.Config, store TokenStore, prompt io.Writer) (*oauth2.Token, error) {
	tok, err := store.Load()
	if err != nil {
		slog.Warn("ignoring saved token", "err", err)
		tok = nil
	}

	if tok != nil && tok.Valid() {
		return tok, nil
	}

	if tok != nil && tok.RefreshToken != "" {
		refreshed, err := cfg.TokenSource(ctx, tok).Token()
		if err == nil {
			if err := store.Save(refreshed); err != nil {
				slog.Warn("could not save refreshed token", "err", err)
			}
			return refreshed, nil
		}
		slog.Warn("token refresh failed, re-authenticating", "err", err)
	}

	resp, err := cfg.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device auth request failed: %w", err)
	}

	fmt.Fprintln(prompt)
	fmt.Fprintln(prompt, "To sign in, use a web browser to open the page:")
	fmt.Fprintf(prompt, "  %s\n", resp.VerificationURI)
	fmt.Fprintf(prompt, "Enter the code: %s\n", resp.UserCode)
	fmt.Fprintln(prompt)

	newTok, err := cfg.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("device authentication failed: %w", err)
	}
	if err := store.Save(newTok); err != nil {
		slog.Warn("could not save token", "err", err)
	}
	return newTok, nil
}
