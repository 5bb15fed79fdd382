package leaderboard

import (
	"context"
	"log"
	"sync"

	"github.com/thesrcielos/ArcadeArchive/internal/scoreapi"
)

const EmptyMessage = "No scores yet!"

type Row struct {
	Username    string `json:"username,omitempty"`
	BestScore   int    `json:"bestScore"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

type Tab struct {
	Game     string `json:"game"`
	Selected bool   `json:"selected"`
}

type Panel struct {
	Game   string `json:"game"`
	Hidden bool   `json:"hidden"`
	Rows   []Row  `json:"rows"`
}

type Snapshot struct {
	Tabs   []Tab   `json:"tabs"`
	Panels []Panel `json:"panels"`
}

// View shows one ranking panel per game behind mutually exclusive tabs.
// Successful fetches are cached for the life of the view and never
// refreshed; failures are not cached.
type View struct {
	api      scoreapi.API
	onChange func()

	mu       sync.Mutex
	games    []string
	selected string
	cache    map[string][]scoreapi.LeaderboardEntry
	loading  map[string]bool
	panels   map[string]*Panel
}

func NewView(api scoreapi.API, games []string, onChange func()) *View {
	v := &View{
		api:      api,
		onChange: onChange,
		games:    append([]string(nil), games...),
		cache:    make(map[string][]scoreapi.LeaderboardEntry),
		loading:  make(map[string]bool),
		panels:   make(map[string]*Panel, len(games)),
	}
	for _, g := range games {
		v.panels[g] = &Panel{Game: g, Hidden: true}
	}
	return v
}

// Init activates the first declared tab.
func (v *View) Init(ctx context.Context) {
	if len(v.games) == 0 {
		return
	}
	v.Activate(ctx, v.games[0])
}

// Activate selects game and, on a cache miss, fetches its ranking before
// returning.
func (v *View) Activate(ctx context.Context, game string) {
	if v.Select(game) {
		v.Load(ctx, game)
	}
}

// Select makes game the only selected tab and hides every other panel. A
// cached ranking is shown at once. It returns true when the caller must
// Load the ranking; a fetch already in flight for game is not repeated.
func (v *View) Select(game string) bool {
	v.mu.Lock()
	panel, ok := v.panels[game]
	if !ok {
		v.mu.Unlock()
		log.Printf("No leaderboard panel for game %q", game)
		return false
	}
	v.selected = game
	for _, p := range v.panels {
		p.Hidden = true
	}

	fetch := false
	if entries, cached := v.cache[game]; cached {
		panel.Rows = renderRows(entries)
		panel.Hidden = false
	} else if !v.loading[game] {
		v.loading[game] = true
		fetch = true
	}
	v.mu.Unlock()
	v.changed()
	return fetch
}

// Load fetches the ranking for game. The panel is only shown if its tab is
// still selected when the response lands.
func (v *View) Load(ctx context.Context, game string) {
	entries, err := v.api.Leaderboard(ctx, game)

	v.mu.Lock()
	delete(v.loading, game)
	panel, ok := v.panels[game]
	if !ok {
		v.mu.Unlock()
		return
	}
	if err != nil {
		log.Printf("Failed to fetch leaderboard for %s: %v", game, err)
		panel.Rows = renderRows(nil)
	} else {
		v.cache[game] = entries
		panel.Rows = renderRows(entries)
	}
	panel.Hidden = v.selected != game
	v.mu.Unlock()
	v.changed()
}

func (v *View) Selected() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := Snapshot{
		Tabs:   make([]Tab, 0, len(v.games)),
		Panels: make([]Panel, 0, len(v.games)),
	}
	for _, g := range v.games {
		snap.Tabs = append(snap.Tabs, Tab{Game: g, Selected: g == v.selected})
		p := v.panels[g]
		snap.Panels = append(snap.Panels, Panel{
			Game:   p.Game,
			Hidden: p.Hidden,
			Rows:   append([]Row(nil), p.Rows...),
		})
	}
	return snap
}

func (v *View) changed() {
	if v.onChange != nil {
		v.onChange()
	}
}

func renderRows(entries []scoreapi.LeaderboardEntry) []Row {
	if len(entries) == 0 {
		return []Row{{Placeholder: true}}
	}
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{Username: e.Username, BestScore: e.BestScore})
	}
	return rows
}
