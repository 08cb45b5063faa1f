package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// EntityState is one Home Assistant entity's current state.
type EntityState struct {
	EntityID string `json:"entity_id"`
	State    string `json:"state"`
}

// HassClient talks to the Home Assistant REST API.
type HassClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewHassClient(baseURL, token string) *HassClient {
	return &HassClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// States returns the state of every entity.
func (c *HassClient) States(ctx context.Context) ([]EntityState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/states", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("home assistant states: status %d", resp.StatusCode)
	}

	var states []EntityState
	if err := json.NewDecoder(resp.Body).Decode(&states); err != nil {
		return nil, err
	}
	return states, nil
}

func (c *HassClient) callService(ctx context.Context, domain, service string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/services/%s/%s", c.baseURL, domain, service)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("home assistant %s/%s: status %d", domain, service, resp.StatusCode)
	}
	return nil
}

// SetInputText sets an input_text helper's value.
func (c *HassClient) SetInputText(ctx context.Context, entityID, value string) error {
	return c.callService(ctx, "input_text", "set_value", map[string]string{
		"entity_id": entityID,
		"value":     value,
	})
}

// SelectOption sets an input_select helper's option.
func (c *HassClient) SelectOption(ctx context.Context, entityID, option string) error {
	return c.callService(ctx, "input_select", "select_option", map[string]string{
		"entity_id": entityID,
		"option":    option,
	})
}
