package game

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/thesrcielos/ArcadeArchive/internal/apperrors"
	"github.com/thesrcielos/ArcadeArchive/internal/events"
	"github.com/thesrcielos/ArcadeArchive/internal/scoreapi"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Phase string

const (
	PhaseIdle        Phase = "IDLE"
	PhasePlaying     Phase = "PLAYING"
	PhaseSubmitting  Phase = "SUBMITTING"
	PhaseResultShown Phase = "RESULT_SHOWN"
	PhaseUnknownGame Phase = "UNKNOWN_GAME"
)

type Dialog string

const (
	DialogNone  Dialog = ""
	DialogGuest Dialog = "guest-score-dialog"
	DialogUser  Dialog = "user-score-dialog"
)

const (
	UnknownGameTitle = "Unknown Game"
	SiteName         = "ArcadeArchive"
	DefaultDuration  = 2 * time.Second
	MaxScore         = 10000
)

type Snapshot struct {
	Game          string `json:"game"`
	Title         string `json:"title"`
	DocumentTitle string `json:"documentTitle"`
	Phase         Phase  `json:"phase"`
	PlayHidden    bool   `json:"playHidden"`
	MessageShown  bool   `json:"messageShown"`
	Dialog        Dialog `json:"dialog"`
	Score         int    `json:"score"`
}

type Config struct {
	Game     string
	Duration time.Duration
	// Roll produces the placeholder outcome of a play. Defaults to a uniform
	// integer in [0, MaxScore).
	Roll     func() int
	OnChange func()
}

// Session drives one game page: play, wait, submit, show the result.
type Session struct {
	api    scoreapi.API
	status scoreapi.StatusSource
	bus    *events.Bus
	cfg    Config

	mu       sync.Mutex
	loggedIn bool
	snap     Snapshot
	done     chan struct{}
}

func NewSession(api scoreapi.API, status scoreapi.StatusSource, bus *events.Bus, cfg Config) *Session {
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultDuration
	}
	if cfg.Roll == nil {
		cfg.Roll = func() int { return rand.Intn(MaxScore) }
	}
	s := &Session{
		api:    api,
		status: status,
		bus:    bus,
		cfg:    cfg,
	}
	s.snap = Snapshot{
		Game:          cfg.Game,
		Title:         UnknownGameTitle,
		DocumentTitle: SiteName,
		Phase:         PhaseUnknownGame,
		PlayHidden:    true,
	}
	if cfg.Game != "" {
		title := FormatTitle(cfg.Game)
		s.snap.Title = title
		s.snap.DocumentTitle = SiteName + " - " + title
		s.snap.Phase = PhaseIdle
		s.snap.PlayHidden = false
	}
	return s
}

// FormatTitle uppercases the first letter of a game id, so "pong" becomes
// "Pong". The rest of the id is kept as is.
func FormatTitle(game string) string {
	r, size := utf8.DecodeRuneInString(game)
	if size == 0 {
		return game
	}
	return cases.Upper(language.English).String(string(r)) + game[size:]
}

// Setup resolves the login status that picks the submit endpoint and the
// result dialog for the rest of the page's life.
func (s *Session) Setup(ctx context.Context) {
	if s.cfg.Game == "" {
		return
	}
	loggedIn := s.status.LoggedIn(ctx)
	s.mu.Lock()
	s.loggedIn = loggedIn
	s.mu.Unlock()
}

// Play starts a round. It returns an error when no game is known or a round
// is already running. The round itself completes in the background.
func (s *Session) Play(ctx context.Context) error {
	s.mu.Lock()
	switch s.snap.Phase {
	case PhaseUnknownGame:
		s.mu.Unlock()
		return apperrors.NewAppError(400, "Cannot play: unknown game", nil)
	case PhaseIdle:
	default:
		s.mu.Unlock()
		return apperrors.NewAppError(409, "Cannot play: a round is already running", nil)
	}
	s.snap.Phase = PhasePlaying
	s.snap.PlayHidden = true
	s.snap.MessageShown = true
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()
	s.changed()

	go s.runRound(ctx, done)
	return nil
}

// Done returns a channel closed when the current or last round finished.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return s.done
}

func (s *Session) runRound(ctx context.Context, done chan struct{}) {
	defer close(done)

	<-time.After(s.cfg.Duration)

	score := s.cfg.Roll()
	s.mu.Lock()
	s.snap.MessageShown = false
	s.snap.Phase = PhaseSubmitting
	loggedIn := s.loggedIn
	s.mu.Unlock()
	s.changed()

	err := s.api.SubmitScore(ctx, scoreapi.ScoreSubmission{GameName: s.cfg.Game, Score: score}, loggedIn)
	if err != nil {
		log.Println("Failed to submit score:", err)
	} else {
		s.bus.Publish(events.ScoreSubmitted{Game: s.cfg.Game})
	}

	dialog := DialogGuest
	if loggedIn {
		dialog = DialogUser
	}
	s.mu.Lock()
	s.snap.Phase = PhaseResultShown
	s.snap.Dialog = dialog
	s.snap.Score = score
	s.mu.Unlock()
	s.changed()

	s.mu.Lock()
	s.snap.PlayHidden = false
	s.snap.Phase = PhaseIdle
	s.mu.Unlock()
	s.changed()
}

func (s *Session) CloseDialog() {
	s.mu.Lock()
	if s.snap.Dialog == DialogNone {
		s.mu.Unlock()
		return
	}
	s.snap.Dialog = DialogNone
	s.mu.Unlock()
	s.changed()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *Session) changed() {
	if s.cfg.OnChange != nil {
		s.cfg.OnChange()
	}
}
