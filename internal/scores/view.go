package scores

import (
	"context"
	"log"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/thesrcielos/ArcadeArchive/internal/events"
	"github.com/thesrcielos/ArcadeArchive/internal/scoreapi"
)

type SortKey string

const (
	SortByDate  SortKey = "date"
	SortByScore SortKey = "score"
)

const DefaultPreview = 5

var playedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type Row struct {
	Score    int    `json:"score"`
	PlayedAt string `json:"playedAt"`
}

type Toggle struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

type Snapshot struct {
	Sort   SortKey `json:"sort"`
	Rows   []Row   `json:"rows"`
	Total  int     `json:"total"`
	Toggle Toggle  `json:"toggle"`
}

// View lists the visitor's own scores for one game. The record set is only
// fetched on Load; sorting and expanding work on the held copy.
type View struct {
	api      scoreapi.API
	status   scoreapi.StatusSource
	game     string
	preview  int
	onChange func()

	mu      sync.Mutex
	records []scoreapi.PersonalScoreRecord
	sortKey SortKey
	showAll bool
}

func NewView(api scoreapi.API, status scoreapi.StatusSource, game string, preview int, onChange func()) *View {
	if preview <= 0 {
		preview = DefaultPreview
	}
	return &View{
		api:      api,
		status:   status,
		game:     game,
		preview:  preview,
		onChange: onChange,
		sortKey:  SortByDate,
	}
}

// Enabled is false when no game was given; every operation is then a no-op.
func (v *View) Enabled() bool {
	return v.game != ""
}

func (v *View) Game() string {
	return v.game
}

// Subscribe refreshes the view in the background whenever a score for the
// same game is submitted on this page.
func (v *View) Subscribe(ctx context.Context, bus *events.Bus) {
	if !v.Enabled() {
		return
	}
	bus.Subscribe(func(ev events.ScoreSubmitted) {
		if ev.Game != v.game {
			return
		}
		log.Printf("Score submitted for %s, refreshing personal scores", ev.Game)
		go v.Load(ctx)
	})
}

func (v *View) Load(ctx context.Context) {
	if !v.Enabled() {
		return
	}
	loggedIn := v.status.LoggedIn(ctx)
	records, err := v.api.PersonalScores(ctx, v.game, loggedIn)
	if err != nil {
		log.Println("Failed to refresh personal scores:", err)
		return
	}

	v.mu.Lock()
	v.records = records
	v.mu.Unlock()
	v.changed()
}

func (v *View) SetSort(key SortKey) {
	if !v.Enabled() {
		return
	}
	if key != SortByScore && key != SortByDate {
		log.Printf("Unknown sort key %q", key)
		return
	}
	v.mu.Lock()
	v.sortKey = key
	v.mu.Unlock()
	v.changed()
}

func (v *View) ToggleShowAll() {
	if !v.Enabled() {
		return
	}
	v.mu.Lock()
	v.showAll = !v.showAll
	v.mu.Unlock()
	v.changed()
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	sorted := SortRecords(v.records, v.sortKey)
	if !v.showAll && len(sorted) > v.preview {
		sorted = sorted[:v.preview]
	}
	rows := make([]Row, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, Row{Score: r.Score, PlayedAt: formatPlayedAt(r.PlayedAt)})
	}

	label := "Show All"
	if v.showAll {
		label = "Show Less"
	}
	return Snapshot{
		Sort:  v.sortKey,
		Rows:  rows,
		Total: len(v.records),
		Toggle: Toggle{
			Label:    label,
			Disabled: len(v.records) <= v.preview,
		},
	}
}

// SortRecords returns a sorted copy, highest score or most recent first.
// Ties keep their fetch order.
func SortRecords(records []scoreapi.PersonalScoreRecord, key SortKey) []scoreapi.PersonalScoreRecord {
	sorted := append([]scoreapi.PersonalScoreRecord(nil), records...)
	if key == SortByScore {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Score > sorted[j].Score
		})
		return sorted
	}

	times := make(map[string]time.Time, len(sorted))
	for _, r := range sorted {
		if _, ok := times[r.PlayedAt]; !ok {
			times[r.PlayedAt], _ = parsePlayedAt(r.PlayedAt)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return times[sorted[i].PlayedAt].After(times[sorted[j].PlayedAt])
	})
	return sorted
}

func parsePlayedAt(s string) (time.Time, bool) {
	for _, layout := range playedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), true
	}
	return time.Time{}, false
}

func formatPlayedAt(s string) string {
	t, ok := parsePlayedAt(s)
	if !ok {
		return s
	}
	return t.Format("1/2/2006")
}

func (v *View) changed() {
	if v.onChange != nil {
		v.onChange()
	}
}
