package page

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thesrcielos/ArcadeArchive/internal/apperrors"
	"github.com/thesrcielos/ArcadeArchive/internal/auth"
	"github.com/thesrcielos/ArcadeArchive/internal/events"
	"github.com/thesrcielos/ArcadeArchive/internal/game"
	"github.com/thesrcielos/ArcadeArchive/internal/leaderboard"
	"github.com/thesrcielos/ArcadeArchive/internal/scoreapi"
	"github.com/thesrcielos/ArcadeArchive/internal/scores"
	"golang.org/x/sync/errgroup"
)

type Kind string

const (
	KindHome        Kind = "home"
	KindGame        Kind = "game"
	KindLeaderboard Kind = "leaderboard"
	KindAbout       Kind = "about"
	KindAuth        Kind = "auth"
)

const (
	RegionNav         = "nav"
	RegionLeaderboard = "leaderboard"
	RegionGame        = "game"
	RegionScores      = "scores"
	RegionAuthForms   = "auth-forms"
)

// anchors lists which views a kind of page carries. The navigation control
// is on every page.
type anchors struct {
	leaderboard bool
	game        bool
	scores      bool
	authForms   bool
}

var layouts = map[Kind]anchors{
	KindHome:        {},
	KindAbout:       {},
	KindLeaderboard: {leaderboard: true},
	KindGame:        {game: true, scores: true},
	KindAuth:        {authForms: true},
}

// Sender delivers a message to the browser showing the page.
type Sender interface {
	SendJSON(v interface{}) error
}

type OutgoingMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type RenderPayload struct {
	Region string `json:"region"`
	HTML   string `json:"html"`
}

type Options struct {
	Games         []string
	PlayDuration  time.Duration
	ScoresPreview int
	Roll          func() int
	NewAPI        func(cookies []*http.Cookie) (scoreapi.API, error)
}

// Page is one page session: the views of a single loaded page and the state
// they own. It lives until the browser disconnects or it expires.
type Page struct {
	ID        string
	Kind      Kind
	GameID    string
	CreatedAt time.Time

	API         scoreapi.API
	Bus         *events.Bus
	Nav         *auth.StatusView
	Leaderboard *leaderboard.View
	Game        *game.Session
	Scores      *scores.View
	Forms       *auth.FormsView

	games    []string
	renderer *Renderer
	ctx      context.Context
	cancel   context.CancelFunc

	mu       sync.Mutex
	sender   Sender
	lastSeen time.Time

	// pushMu keeps renders of the page going out in the order they were taken.
	pushMu sync.Mutex
}

func New(kind Kind, gameID string, cookies []*http.Cookie, opts Options, renderer *Renderer) (*Page, error) {
	layout, ok := layouts[kind]
	if !ok {
		layout = anchors{}
	}
	api, err := opts.NewAPI(cookies)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Page{
		ID:        uuid.NewString(),
		Kind:      kind,
		GameID:    gameID,
		CreatedAt: time.Now(),
		API:       api,
		Bus:       events.NewBus(),
		games:     opts.Games,
		renderer:  renderer,
		ctx:       ctx,
		cancel:    cancel,
		lastSeen:  time.Now(),
	}
	status := scoreapi.NewStatusCache(api)

	p.Nav = auth.NewStatusView(api, status, p.notify(RegionNav))
	if layout.leaderboard {
		p.Leaderboard = leaderboard.NewView(api, opts.Games, p.notify(RegionLeaderboard))
	}
	if layout.game {
		p.Game = game.NewSession(api, status, p.Bus, game.Config{
			Game:     gameID,
			Duration: opts.PlayDuration,
			Roll:     opts.Roll,
			OnChange: p.notify(RegionGame),
		})
	}
	if layout.scores && gameID != "" {
		p.Scores = scores.NewView(api, status, gameID, opts.ScoresPreview, p.notify(RegionScores))
		p.Scores.Subscribe(ctx, p.Bus)
	}
	if layout.authForms {
		p.Forms = auth.NewFormsView(api, p.notify(RegionAuthForms))
	}
	return p, nil
}

// Init loads every view present on the page concurrently and waits for all.
func (p *Page) Init(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p.Nav.Init(gctx)
		return nil
	})
	if p.Leaderboard != nil {
		g.Go(func() error {
			p.Leaderboard.Init(gctx)
			return nil
		})
	}
	if p.Game != nil {
		g.Go(func() error {
			p.Game.Setup(gctx)
			return nil
		})
	}
	if p.Scores != nil {
		g.Go(func() error {
			p.Scores.Load(gctx)
			return nil
		})
	}
	return g.Wait()
}

// Context is cancelled when the page is closed.
func (p *Page) Context() context.Context {
	return p.ctx
}

// Cookies returns the API cookies to relay to the browser, if the client
// keeps any.
func (p *Page) Cookies() []*http.Cookie {
	if c, ok := p.API.(interface{ Cookies() []*http.Cookie }); ok {
		return c.Cookies()
	}
	return nil
}

// Attach makes s the page's only connection. A page already shown through
// another connection is refused.
func (p *Page) Attach(s Sender) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sender != nil {
		return apperrors.NewAppError(409, "Page already connected", nil)
	}
	p.sender = s
	p.lastSeen = time.Now()
	return nil
}

func (p *Page) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sender = nil
	p.lastSeen = time.Now()
}

func (p *Page) idleSince() (time.Time, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastSeen, p.sender == nil
}

func (p *Page) Close() {
	p.cancel()
	p.Detach()
}

func (p *Page) notify(region string) func() {
	return func() {
		p.push(region)
	}
}

func (p *Page) push(region string) {
	p.mu.Lock()
	sender := p.sender
	p.mu.Unlock()
	if sender == nil || p.renderer == nil {
		return
	}

	p.pushMu.Lock()
	defer p.pushMu.Unlock()
	html, err := p.renderer.Region(p, region)
	if err != nil {
		log.Printf("Error rendering %s for page %s: %v", region, p.ID, err)
		return
	}
	msg := OutgoingMessage{
		Type:    "RENDER",
		Payload: RenderPayload{Region: region, HTML: html},
	}
	if err := sender.SendJSON(msg); err != nil {
		log.Println("Error sending msg to page", p.ID, ":", err)
	}
}

// Notify sends a message that is not a region render, such as an action error.
func (p *Page) Notify(msg OutgoingMessage) {
	p.mu.Lock()
	sender := p.sender
	p.mu.Unlock()
	if sender == nil {
		return
	}
	if err := sender.SendJSON(msg); err != nil {
		log.Println("Error sending msg to page", p.ID, ":", err)
	}
}
