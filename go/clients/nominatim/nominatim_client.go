package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mcdev12/pinmap/go/clients"
)

const (
	// DefaultBaseURL is the public OSM Nominatim instance.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	ReverseEndpoint = "/reverse"

	// Nominatim's usage policy requires an identifying User-Agent.
	UserAgentHeader = "User-Agent"
	UserAgent       = "pinmap/1.0"
)

type NominatimClient struct {
	*clients.BaseClient
}

func NewNominatimClient(baseURL string) *NominatimClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &NominatimClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}
	client.SetHeader(UserAgentHeader, UserAgent)
	return client
}

type ReverseResponse struct {
	Address struct {
		Country string `json:"country"`
	} `json:"address"`
}

// Reverse resolves a coordinate to a country name. Errors surface to the
// caller; ReverseCountry applies the Unknown fallback.
func (c *NominatimClient) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	endpoint := fmt.Sprintf("%s?lat=%s&lon=%s&format=json",
		ReverseEndpoint,
		url.QueryEscape(strconv.FormatFloat(lat, 'f', -1, 64)),
		url.QueryEscape(strconv.FormatFloat(lng, 'f', -1, 64)))

	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to reverse geocode: %w", err)
	}

	var response ReverseResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if response.Address.Country == "" {
		return "", fmt.Errorf("no country in reverse geocode response")
	}
	return response.Address.Country, nil
}

// ReverseCountry is the lookup the placement flow uses: any failure or
// missing country collapses to the literal "Unknown" and the flow continues.
func (c *NominatimClient) ReverseCountry(ctx context.Context, lat, lng float64) string {
	country, err := c.Reverse(ctx, lat, lng)
	if err != nil {
		return "Unknown"
	}
	return country
}
