package gmail

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// tokenFile is the stored credential shape. Either field works;
// current tooling emits access_token, older token files used token.
type tokenFile struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
}

// TokenStatus describes the credential file for "gmex token show".
type TokenStatus struct {
	Path   string
	Exists bool
	Size   int64
}

// loadToken reads the bearer token from the given path.
func loadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	token := tf.AccessToken
	if token == "" {
		token = tf.Token
	}
	if token == "" {
		return "", fmt.Errorf("token file %s has no access_token", path)
	}
	return token, nil
}

// ImportToken validates raw JSON and writes it to path, creating parent
// directories. The file is written 0600 since it holds a credential.
func ImportToken(path string, raw []byte) error {
	var tf tokenFile
	if err := json.Unmarshal(raw, &tf); err != nil {
		return fmt.Errorf("invalid token JSON: %w", err)
	}
	if tf.AccessToken == "" && tf.Token == "" {
		return fmt.Errorf("token JSON has no access_token field")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// GetTokenStatus stats the credential file.
func GetTokenStatus(path string) TokenStatus {
	info, err := os.Stat(path)
	if err != nil {
		return TokenStatus{Path: path}
	}
	return TokenStatus{Path: path, Exists: true, Size: info.Size()}
}
