package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotion struct {
	server  *httptest.Server
	pages   []NotionPage
	patches []string // "pageID:raw payload"
}

func newFakeNotion(t *testing.T) *fakeNotion {
	t.Helper()
	f := &fakeNotion{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.Contains(r.URL.Path, "/query"):
			results := make([]map[string]interface{}, 0, len(f.pages))
			for _, p := range f.pages {
				results = append(results, map[string]interface{}{
					"id": p.ID,
					"properties": map[string]interface{}{
						propDay:       selectProp(p.Day),
						propMealType:  selectProp(p.MealType),
						propPerson:    selectProp(p.Person),
						propMeal:      selectProp(p.Meal),
						propPrepNotes: textProp(p.PrepNotes),
						propCookNotes: textProp(p.CookNotes),
						propWedShop:   textProp(p.WedShop),
						propSunShop:   textProp(p.SunShop),
					},
				})
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"results": results})
		case r.Method == http.MethodPatch:
			body, _ := io.ReadAll(r.Body)
			pageID := strings.TrimPrefix(r.URL.Path, "/v1/pages/")
			f.patches = append(f.patches, fmt.Sprintf("%s:%s", pageID, body))
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("{}"))
		default:
			t.Errorf("unexpected notion request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

func selectProp(name string) map[string]interface{} {
	if name == "" {
		return map[string]interface{}{"select": nil}
	}
	return map[string]interface{}{"select": map[string]string{"name": name}}
}

func textProp(text string) map[string]interface{} {
	if text == "" {
		return map[string]interface{}{"rich_text": []interface{}{}}
	}
	return map[string]interface{}{
		"rich_text": []map[string]string{{"plain_text": text}},
	}
}

type fakeHass struct {
	server *httptest.Server
	states map[string]string
	calls  []string // "service entity=value"
}

func newFakeHass(t *testing.T) *fakeHass {
	t.Helper()
	f := &fakeHass{states: make(map[string]string)}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/states":
			var states []EntityState
			for id, state := range f.states {
				states = append(states, EntityState{EntityID: id, State: state})
			}
			json.NewEncoder(w).Encode(states)
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/api/services/"):
			var payload map[string]string
			json.NewDecoder(r.Body).Decode(&payload)
			service := strings.TrimPrefix(r.URL.Path, "/api/services/")
			value := payload["option"]
			if value == "" {
				value = payload["value"]
			}
			f.calls = append(f.calls, fmt.Sprintf("%s %s=%s", service, payload["entity_id"], value))
			w.Write([]byte("{}"))
		default:
			t.Errorf("unexpected hass request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

func newTestBridge(t *testing.T, notion *fakeNotion, hass *fakeHass) *Bridge {
	t.Helper()
	nc := NewNotionClient("test-token", "test-db")
	nc.baseURL = notion.server.URL
	hc := NewHassClient(hass.server.URL, "test-token")
	return NewBridge(nc, hc, []string{"Michael"}, time.Minute)
}

func TestReconcilePushesNotionToHass(t *testing.T) {
	notion := newFakeNotion(t)
	notion.pages = []NotionPage{
		{ID: "p1", Day: "Wed", MealType: "Dinner", Person: "Michael",
			Meal: "Chicken Curry", PrepNotes: "marinate", WedShop: "rice, chicken"},
	}
	hass := newFakeHass(t)
	hass.states["input_select.meal_dinner_wed_michael"] = blankOption
	hass.states["input_text.prep_notes_wed"] = ""
	hass.states["input_text.cook_notes_wed"] = ""
	hass.states["input_text.wed_food_shop_list"] = ""
	hass.states["input_text.sun_food_shop_list"] = ""

	bridge := newTestBridge(t, notion, hass)
	require.NoError(t, bridge.Reconcile(context.Background()))

	assert.Contains(t, hass.calls, "input_select/select_option input_select.meal_dinner_wed_michael=Chicken Curry")
	assert.Contains(t, hass.calls, "input_text/set_value input_text.prep_notes_wed=marinate")
	assert.Contains(t, hass.calls, "input_text/set_value input_text.wed_food_shop_list=rice, chicken")
	assert.Empty(t, notion.patches)
}

func TestReconcileIsIdempotent(t *testing.T) {
	notion := newFakeNotion(t)
	notion.pages = []NotionPage{
		{ID: "p1", Day: "Wed", MealType: "Dinner", Person: "Michael", Meal: "Chicken Curry"},
	}
	hass := newFakeHass(t)
	hass.states["input_select.meal_dinner_wed_michael"] = "Chicken Curry"

	bridge := newTestBridge(t, notion, hass)
	require.NoError(t, bridge.Reconcile(context.Background()))
	require.NoError(t, bridge.Reconcile(context.Background()))

	assert.Empty(t, hass.calls)
	assert.Empty(t, notion.patches)
}

func TestReconcilePushesHassChangeToNotion(t *testing.T) {
	notion := newFakeNotion(t)
	notion.pages = []NotionPage{
		{ID: "p1", Day: "Wed", MealType: "Dinner", Person: "Michael", Meal: "Chicken Curry"},
	}
	hass := newFakeHass(t)
	hass.states["input_select.meal_dinner_wed_michael"] = "Chicken Curry"

	bridge := newTestBridge(t, notion, hass)
	require.NoError(t, bridge.Reconcile(context.Background()))

	// A person picks a different meal on the dashboard.
	hass.states["input_select.meal_dinner_wed_michael"] = "Pasta"
	require.NoError(t, bridge.Reconcile(context.Background()))

	require.Len(t, notion.patches, 1)
	assert.Contains(t, notion.patches[0], "p1:")
	assert.Contains(t, notion.patches[0], "Pasta")
	assert.Empty(t, hass.calls)
}

func TestReconcileEchoWindowSuppressesReadback(t *testing.T) {
	notion := newFakeNotion(t)
	notion.pages = []NotionPage{
		{ID: "p1", Day: "Wed", MealType: "Dinner", Person: "Michael", Meal: "Chicken Curry"},
	}
	hass := newFakeHass(t)
	hass.states["input_select.meal_dinner_wed_michael"] = blankOption

	bridge := newTestBridge(t, notion, hass)
	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	bridge.now = func() time.Time { return now }

	require.NoError(t, bridge.Reconcile(context.Background()))
	require.Len(t, hass.calls, 1)

	// The entity still reports the stale value inside the echo window.
	now = now.Add(2 * time.Second)
	require.NoError(t, bridge.Reconcile(context.Background()))
	assert.Len(t, hass.calls, 1)
	assert.Empty(t, notion.patches)

	// Past the window a still-different value counts as a real user
	// change and flows back to Notion.
	now = now.Add(10 * time.Second)
	require.NoError(t, bridge.Reconcile(context.Background()))
	assert.Len(t, hass.calls, 1)
	assert.Len(t, notion.patches, 1)
}

func TestReconcileNotionWinsWhenBothChanged(t *testing.T) {
	notion := newFakeNotion(t)
	notion.pages = []NotionPage{
		{ID: "p1", Day: "Wed", MealType: "Dinner", Person: "Michael", Meal: "Chicken Curry"},
	}
	hass := newFakeHass(t)
	hass.states["input_select.meal_dinner_wed_michael"] = "Chicken Curry"

	bridge := newTestBridge(t, notion, hass)
	require.NoError(t, bridge.Reconcile(context.Background()))

	notion.pages[0].Meal = "Stew"
	hass.states["input_select.meal_dinner_wed_michael"] = "Pasta"
	require.NoError(t, bridge.Reconcile(context.Background()))

	assert.Contains(t, hass.calls, "input_select/select_option input_select.meal_dinner_wed_michael=Stew")
	assert.Empty(t, notion.patches)
}

func TestMondayOf(t *testing.T) {
	// 2024-01-03 is a Wednesday.
	wed := time.Date(2024, 1, 3, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), mondayOf(wed))

	mon := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, mon, mondayOf(mon))

	sun := time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, mon, mondayOf(sun))
}
