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

const notionVersion = "2022-06-28"

// Notion database property names. The database schema is fixed: one
// page per (Day, MealType, Person) slot of the current week.
const (
	propWeekStart = "WeekStart"
	propDay       = "Day"
	propMealType  = "MealType"
	propPerson    = "Person"
	propMeal      = "Meal"
	propPrepNotes = "PrepNotes"
	propCookNotes = "CookNotes"
	propWedShop   = "WedShop"
	propSunShop   = "SunShop"
)

// NotionPage is one meal-slot row of the planning database.
type NotionPage struct {
	ID        string
	Day       string
	MealType  string
	Person    string
	Meal      string
	PrepNotes string
	CookNotes string
	WedShop   string
	SunShop   string
}

// NotionClient talks to the Notion REST API.
type NotionClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	databaseID string
}

func NewNotionClient(token, databaseID string) *NotionClient {
	return &NotionClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.notion.com",
		token:      token,
		databaseID: databaseID,
	}
}

func (c *NotionClient) do(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notion %s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

type notionProperty struct {
	Select *struct {
		Name string `json:"name"`
	} `json:"select"`
	RichText []struct {
		PlainText string `json:"plain_text"`
	} `json:"rich_text"`
}

type notionQueryResponse struct {
	Results []struct {
		ID         string                    `json:"id"`
		Properties map[string]notionProperty `json:"properties"`
	} `json:"results"`
}

func selectValue(props map[string]notionProperty, name string) string {
	p, ok := props[name]
	if !ok || p.Select == nil {
		return ""
	}
	return p.Select.Name
}

func textValue(props map[string]notionProperty, name string) string {
	p, ok := props[name]
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, rt := range p.RichText {
		b.WriteString(rt.PlainText)
	}
	return strings.TrimSpace(b.String())
}

// QueryWeek returns every page whose WeekStart equals weekStart.
func (c *NotionClient) QueryWeek(ctx context.Context, weekStart time.Time) ([]NotionPage, error) {
	payload := map[string]interface{}{
		"page_size": 100,
		"filter": map[string]interface{}{
			"property": propWeekStart,
			"date":     map[string]string{"equals": weekStart.Format("2006-01-02")},
		},
	}

	var resp notionQueryResponse
	path := fmt.Sprintf("/v1/databases/%s/query", c.databaseID)
	if err := c.do(ctx, http.MethodPost, path, payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to query week: %w", err)
	}

	pages := make([]NotionPage, 0, len(resp.Results))
	for _, r := range resp.Results {
		pages = append(pages, NotionPage{
			ID:        r.ID,
			Day:       selectValue(r.Properties, propDay),
			MealType:  selectValue(r.Properties, propMealType),
			Person:    selectValue(r.Properties, propPerson),
			Meal:      selectValue(r.Properties, propMeal),
			PrepNotes: textValue(r.Properties, propPrepNotes),
			CookNotes: textValue(r.Properties, propCookNotes),
			WedShop:   textValue(r.Properties, propWedShop),
			SunShop:   textValue(r.Properties, propSunShop),
		})
	}
	return pages, nil
}

// SetSelect patches a select property on one page.
func (c *NotionClient) SetSelect(ctx context.Context, pageID, prop, value string) error {
	payload := map[string]interface{}{
		"properties": map[string]interface{}{
			prop: map[string]interface{}{
				"select": map[string]string{"name": value},
			},
		},
	}
	return c.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, payload, nil)
}

// SetText patches a rich_text property on one page.
func (c *NotionClient) SetText(ctx context.Context, pageID, prop, value string) error {
	payload := map[string]interface{}{
		"properties": map[string]interface{}{
			prop: map[string]interface{}{
				"rich_text": []map[string]interface{}{
					{"type": "text", "text": map[string]string{"content": value}},
				},
			},
		},
	}
	return c.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, payload, nil)
}
