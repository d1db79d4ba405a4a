package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service name groups the app's secrets in the OS keychain.
	KeyringService = "jobscout"

	scrapeServiceAccount = "scrape-service-token"
)

// GetServiceToken returns the bearer token for the scrape service, if one
// was stored. Callers treat a missing token as "unauthenticated", not an
// error worth failing a run over.
func GetServiceToken() (string, error) {
	tok, err := keyring.Get(KeyringService, scrapeServiceAccount)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(tok) == "" {
		return "", errors.New("scrape service token is empty")
	}
	return tok, nil
}

func SetServiceToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, scrapeServiceAccount, token)
}

func DeleteServiceToken() error {
	return keyring.Delete(KeyringService, scrapeServiceAccount)
}
