package clients

import (
	"net/http"
)

type AuthEngine interface {
	GetApiKey() string
	SetApiKey(request *http.Request)
}

type BearerAuth struct {
	apiKey string
}

func (b *BearerAuth) GetApiKey() string {
	return b.apiKey
}

func (b *BearerAuth) SetApiKey(request *http.Request) {
	request.Header.Set("Authorization", "Bearer "+b.apiKey)
}

func NewBearerAuth(apiKey string) *BearerAuth {
	if apiKey == "" {
		return nil
	}
	return &BearerAuth{apiKey: apiKey}
}

// TokenHeaderAuth sends the key in a custom header, BaseLinker uses X-BLToken.
type TokenHeaderAuth struct {
	header string
	apiKey string
}

func NewTokenHeaderAuth(header, apiKey string) *TokenHeaderAuth {
	if apiKey == "" {
		return nil
	}
	return &TokenHeaderAuth{header: header, apiKey: apiKey}
}

func (t *TokenHeaderAuth) GetApiKey() string {
	return t.apiKey
}

func (t *TokenHeaderAuth) SetApiKey(request *http.Request) {
	request.Header.Set(t.header, t.apiKey)
}
