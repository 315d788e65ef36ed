package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"
	"sellsheet_api/pkg/logger"
)

const (
	AllegroService      = "allegro"
	allegroPublicAccept = "application/vnd.allegro.public.v1+json"
)

type AllegroCategory struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Leaf   bool   `json:"leaf"`
	Parent *struct {
		ID string `json:"id"`
	} `json:"parent"`
}

func (c AllegroCategory) ParentID() string {
	if c.Parent == nil {
		return ""
	}
	return c.Parent.ID
}

type AllegroClient struct {
	*BaseClient
}

func NewAllegroClient(apiURL, accessToken string, log logger.Logger) *AllegroClient {
	var auth AuthEngine
	if a := NewBearerAuth(accessToken); a != nil {
		auth = a
	}
	return &AllegroClient{
		BaseClient: NewBaseClient(apiURL, AllegroService, auth, rate.NewLimiter(5, 5), log),
	}
}

func (c *AllegroClient) GetCategory(ctx context.Context, id string) (AllegroCategory, error) {
	var category AllegroCategory
	err := c.doRequest(ctx, request{
		method:   http.MethodGet,
		endpoint: "/sale/categories/" + url.PathEscape(id),
		label:    "/sale/categories",
		accept:   allegroPublicAccept,
	}, &category)
	if err != nil {
		return AllegroCategory{}, fmt.Errorf("allegro category %s: %w", id, err)
	}
	return category, nil
}
