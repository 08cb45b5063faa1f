package sync

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// blankOption is the dropdown placeholder for an empty meal slot.
const blankOption = "—"

// echoWindow is how long a Home Assistant entity is ignored after the
// bridge writes to it, so our own writes are not mirrored back.
const echoWindow = 5 * time.Second

var dayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
var mealTypeLabels = []string{"Breakfast", "Lunch", "Dinner"}

const (
	wedShopEntity = "input_text.wed_food_shop_list"
	sunShopEntity = "input_text.sun_food_shop_list"
)

func mealEntity(mealType, day, person string) string {
	return fmt.Sprintf("input_select.meal_%s_%s_%s",
		strings.ToLower(mealType), strings.ToLower(day), strings.ToLower(person))
}

func prepNotesEntity(day string) string {
	return "input_text.prep_notes_" + strings.ToLower(day)
}

func cookNotesEntity(day string) string {
	return "input_text.cook_notes_" + strings.ToLower(day)
}

func orBlank(v string) string {
	if v == "" {
		return blankOption
	}
	return v
}

func orEmpty(v string) string {
	if v == blankOption {
		return ""
	}
	return v
}

// slot pairs one Home Assistant entity with its value on the Notion
// side and a way to push a changed value back.
type slot struct {
	entity    string
	notionVal string
	push      func(ctx context.Context, value string) error
}

// Bridge reconciles the Notion planning database with Home Assistant
// helper entities. Each cycle is idempotent: values already in
// agreement produce no writes. When both sides changed since the last
// cycle, Notion wins.
type Bridge struct {
	notion *NotionClient
	hass   *HassClient
	people []string
	poll   time.Duration

	lastHA     map[string]string
	lastNotion map[string]string
	echoUntil  map[string]time.Time
	now        func() time.Time
}

func NewBridge(notion *NotionClient, hass *HassClient, people []string, poll time.Duration) *Bridge {
	return &Bridge{
		notion:     notion,
		hass:       hass,
		people:     people,
		poll:       poll,
		lastHA:     make(map[string]string),
		lastNotion: make(map[string]string),
		echoUntil:  make(map[string]time.Time),
		now:        time.Now,
	}
}

// Run reconciles immediately and then on every poll tick until the
// context is cancelled. Cycle errors are logged and the loop keeps
// going.
func (b *Bridge) Run(ctx context.Context) {
	log.Printf("Sync bridge started, polling every %s", b.poll)

	if err := b.Reconcile(ctx); err != nil {
		log.Printf("Sync cycle failed: %v", err)
	}

	ticker := time.NewTicker(b.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Sync bridge stopped")
			return
		case <-ticker.C:
			if err := b.Reconcile(ctx); err != nil {
				log.Printf("Sync cycle failed: %v", err)
			}
		}
	}
}

// mondayOf returns the Monday of t's week at midnight.
func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := t.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}

// Reconcile runs one sync cycle for the current week.
func (b *Bridge) Reconcile(ctx context.Context) error {
	weekStart := mondayOf(b.now())
	pages, err := b.notion.QueryWeek(ctx, weekStart)
	if err != nil {
		return err
	}

	states, err := b.hass.States(ctx)
	if err != nil {
		return err
	}
	haVals := make(map[string]string, len(states))
	for _, s := range states {
		haVals[s.EntityID] = s.State
	}

	for _, sl := range b.buildSlots(pages) {
		haVal, tracked := haVals[sl.entity]
		if !tracked {
			continue
		}
		if err := b.reconcileSlot(ctx, sl, haVal); err != nil {
			log.Printf("Failed to reconcile %s: %v", sl.entity, err)
		}
	}
	return nil
}

type pageKey struct{ day, mealType, person string }

// buildSlots flattens the Notion pages into one slot per tracked
// Home Assistant entity.
func (b *Bridge) buildSlots(pages []NotionPage) []slot {
	byKey := make(map[pageKey]NotionPage, len(pages))
	pagesByDay := make(map[string][]string)
	allIDs := make([]string, 0, len(pages))
	wedShop, sunShop := "", ""

	for _, p := range pages {
		allIDs = append(allIDs, p.ID)
		if p.Day != "" {
			pagesByDay[p.Day] = append(pagesByDay[p.Day], p.ID)
		}
		if p.Day != "" && p.MealType != "" && p.Person != "" {
			byKey[pageKey{p.Day, p.MealType, p.Person}] = p
		}
		if wedShop == "" {
			wedShop = p.WedShop
		}
		if sunShop == "" {
			sunShop = p.SunShop
		}
	}

	var slots []slot

	// Meal dropdowns, one per (meal type, day, person).
	for _, day := range dayLabels {
		for _, mealType := range mealTypeLabels {
			for _, person := range b.people {
				p, ok := byKey[pageKey{day, mealType, person}]
				if !ok {
					continue
				}
				pageID := p.ID
				slots = append(slots, slot{
					entity:    mealEntity(mealType, day, person),
					notionVal: orBlank(p.Meal),
					push: func(ctx context.Context, value string) error {
						return b.notion.SetSelect(ctx, pageID, propMeal, orBlank(value))
					},
				})
			}
		}
	}

	// Day notes come from the day's dinner row for the first person,
	// falling back to any row for that day. Pushed-back notes land on
	// every page of the day.
	for _, day := range dayLabels {
		p, found := b.notesPage(byKey, day)
		if !found {
			continue
		}
		dayPages := pagesByDay[day]
		slots = append(slots,
			slot{
				entity:    prepNotesEntity(day),
				notionVal: p.PrepNotes,
				push:      b.textPusher(dayPages, propPrepNotes),
			},
			slot{
				entity:    cookNotesEntity(day),
				notionVal: p.CookNotes,
				push:      b.textPusher(dayPages, propCookNotes),
			},
		)
	}

	// Shopping lists are stored on every page, first nonempty wins.
	if len(allIDs) > 0 {
		slots = append(slots,
			slot{entity: wedShopEntity, notionVal: wedShop, push: b.textPusher(allIDs, propWedShop)},
			slot{entity: sunShopEntity, notionVal: sunShop, push: b.textPusher(allIDs, propSunShop)},
		)
	}

	return slots
}

func (b *Bridge) notesPage(byKey map[pageKey]NotionPage, day string) (NotionPage, bool) {
	if len(b.people) > 0 {
		if p, ok := byKey[pageKey{day, "Dinner", b.people[0]}]; ok {
			return p, true
		}
	}
	for _, mealType := range []string{"Dinner", "Lunch", "Breakfast"} {
		for _, person := range b.people {
			if p, ok := byKey[pageKey{day, mealType, person}]; ok {
				return p, true
			}
		}
	}
	return NotionPage{}, false
}

func (b *Bridge) textPusher(pageIDs []string, prop string) func(context.Context, string) error {
	return func(ctx context.Context, value string) error {
		for _, id := range pageIDs {
			if err := b.notion.SetText(ctx, id, prop, value); err != nil {
				return err
			}
		}
		return nil
	}
}

// reconcileSlot applies at most one write for a slot. The side that
// changed since the last cycle wins; Notion wins when both did or on
// the first cycle.
func (b *Bridge) reconcileSlot(ctx context.Context, sl slot, haVal string) error {
	if haVal == sl.notionVal {
		b.lastHA[sl.entity] = haVal
		b.lastNotion[sl.entity] = sl.notionVal
		return nil
	}

	if until, ok := b.echoUntil[sl.entity]; ok && b.now().Before(until) {
		return nil
	}

	prevHA, seen := b.lastHA[sl.entity]
	haChanged := seen && haVal != prevHA
	notionChanged := sl.notionVal != b.lastNotion[sl.entity]

	if haChanged && !notionChanged {
		if err := sl.push(ctx, haVal); err != nil {
			return err
		}
		b.lastHA[sl.entity] = haVal
		b.lastNotion[sl.entity] = haVal
		return nil
	}

	if err := b.writeToHA(ctx, sl.entity, sl.notionVal); err != nil {
		return err
	}
	b.lastHA[sl.entity] = sl.notionVal
	b.lastNotion[sl.entity] = sl.notionVal
	b.echoUntil[sl.entity] = b.now().Add(echoWindow)
	return nil
}

func (b *Bridge) writeToHA(ctx context.Context, entity, value string) error {
	if strings.HasPrefix(entity, "input_select.") {
		return b.hass.SelectOption(ctx, entity, orBlank(value))
	}
	return b.hass.SetInputText(ctx, entity, orEmpty(value))
}
