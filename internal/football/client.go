package football

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ehudso7/StatTact/internal/config"
)

// Team is the subset of a football-data.org team record we decode.
type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
}

// TeamsResponse is the body of GET /teams.
type TeamsResponse struct {
	Count int    `json:"count"`
	Teams []Team `json:"teams"`
}

// Client is a client for the football-data.org API
type Client struct {
	cfg    config.FootballConfig
	client *http.Client
}

// NewClient creates a new Client
func NewClient(cfg config.FootballConfig) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// Enabled reports whether an API key is configured. Without one no request
// is ever made.
func (c *Client) Enabled() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

// TeamData fetches the team listing used to enrich lookups for teamName.
// It returns nil without a network call when the client is disabled or the
// name is blank.
func (c *Client) TeamData(ctx context.Context, teamName string) (*TeamsResponse, error) {
	if !c.Enabled() || strings.TrimSpace(teamName) == "" {
		return nil, nil
	}

	url := fmt.Sprintf("%s/teams", strings.TrimRight(c.cfg.BaseURL, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("X-Auth-Token", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var teams TeamsResponse
	if err := json.NewDecoder(resp.Body).Decode(&teams); err != nil {
		return nil, err
	}

	return &teams, nil
}
