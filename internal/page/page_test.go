package page

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/ArcadeArchive/internal/apperrors"
	"github.com/thesrcielos/ArcadeArchive/internal/game"
	"github.com/thesrcielos/ArcadeArchive/internal/leaderboard"
	"github.com/thesrcielos/ArcadeArchive/internal/scoreapi"
)

type fakeSender struct {
	mu   sync.Mutex
	msgs []OutgoingMessage
}

func (f *fakeSender) SendJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, v.(OutgoingMessage))
	return nil
}

func (f *fakeSender) regions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []string{}
	for _, m := range f.msgs {
		if r, ok := m.Payload.(RenderPayload); ok {
			out = append(out, r.Region)
		}
	}
	return out
}

func (f *fakeSender) last(region string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.msgs) - 1; i >= 0; i-- {
		if r, ok := f.msgs[i].Payload.(RenderPayload); ok && r.Region == region {
			return r.HTML
		}
	}
	return ""
}

func newTestPage(t *testing.T, kind Kind, gameID string, api *scoreapi.APIMock) *Page {
	renderer, err := NewRenderer()
	require.NoError(t, err)
	p, err := New(kind, gameID, nil, Options{
		Games:         []string{"pong", "snake"},
		PlayDuration:  5 * time.Millisecond,
		ScoresPreview: 5,
		Roll:          func() int { return 777 },
		NewAPI: func([]*http.Cookie) (scoreapi.API, error) {
			return api, nil
		},
	}, renderer)
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p
}

func renderPage(t *testing.T, p *Page) string {
	var buf bytes.Buffer
	require.NoError(t, p.renderer.Page(&buf, p, "tok"))
	return buf.String()
}

func TestPage_LayoutSelectsViews(t *testing.T) {
	api := &scoreapi.APIMock{}

	home := newTestPage(t, KindHome, "", api)
	assert.NotNil(t, home.Nav)
	assert.Nil(t, home.Leaderboard)
	assert.Nil(t, home.Game)
	assert.Nil(t, home.Scores)
	assert.Nil(t, home.Forms)

	board := newTestPage(t, KindLeaderboard, "", api)
	assert.NotNil(t, board.Leaderboard)

	g := newTestPage(t, KindGame, "pong", api)
	assert.NotNil(t, g.Game)
	assert.NotNil(t, g.Scores)

	unknown := newTestPage(t, KindGame, "", api)
	assert.NotNil(t, unknown.Game)
	assert.Nil(t, unknown.Scores)

	authPage := newTestPage(t, KindAuth, "", api)
	assert.NotNil(t, authPage.Forms)
}

func TestPage_LeaderboardInitAndRender(t *testing.T) {
	api := &scoreapi.APIMock{}
	api.On("Status", mock.Anything).Return(scoreapi.LoginStatus{LoggedIn: false}, nil).Once()
	api.On("Leaderboard", mock.Anything, "pong").
		Return([]scoreapi.LeaderboardEntry{{Username: "ada", BestScore: 10}}, nil).Once()
	p := newTestPage(t, KindLeaderboard, "", api)

	require.NoError(t, p.Init(context.Background()))
	html := renderPage(t, p)

	assert.Contains(t, html, `<span class="name">ada</span> <span class="score">10</span>`)
	assert.Contains(t, html, `id="snake-leaderboard" class="leaderboard-table hidden"`)
	assert.Contains(t, html, `<title>ArcadeArchive - Leaderboard</title>`)
	assert.Contains(t, html, `data-page-token="tok"`)
	api.AssertExpectations(t)
}

func TestPage_EmptyLeaderboardShowsPlaceholder(t *testing.T) {
	api := &scoreapi.APIMock{}
	api.On("Status", mock.Anything).Return(scoreapi.LoginStatus{}, nil).Once()
	api.On("Leaderboard", mock.Anything, "pong").Return([]scoreapi.LeaderboardEntry{}, nil).Once()
	p := newTestPage(t, KindLeaderboard, "", api)

	require.NoError(t, p.Init(context.Background()))

	assert.Contains(t, renderPage(t, p), "<li>"+leaderboard.EmptyMessage+"</li>")
}

func TestPage_StatusFetchedOncePerPage(t *testing.T) {
	api := &scoreapi.APIMock{}
	api.On("Status", mock.Anything).Return(scoreapi.LoginStatus{LoggedIn: true}, nil).Once()
	api.On("PersonalScores", mock.Anything, "pong", true).Return([]scoreapi.PersonalScoreRecord{}, nil).Once()
	p := newTestPage(t, KindGame, "pong", api)

	require.NoError(t, p.Init(context.Background()))

	assert.True(t, p.Nav.Snapshot().LoggedIn)
	api.AssertNumberOfCalls(t, "Status", 1)
	api.AssertExpectations(t)
}

func TestPage_UnknownGameRender(t *testing.T) {
	api := &scoreapi.APIMock{}
	api.On("Status", mock.Anything).Return(scoreapi.LoginStatus{}, nil).Once()
	p := newTestPage(t, KindGame, "", api)

	require.NoError(t, p.Init(context.Background()))
	html := renderPage(t, p)

	assert.Contains(t, html, `<h1 id="game-title">Unknown Game</h1>`)
	assert.NotContains(t, html, `id="play-button"`)
	assert.NotContains(t, html, `personal-scores-container`)
}

func TestPage_PlayRefreshesScores(t *testing.T) {
	api := &scoreapi.APIMock{}
	api.On("Status", mock.Anything).Return(scoreapi.LoginStatus{LoggedIn: false}, nil).Once()
	api.On("PersonalScores", mock.Anything, "pong", false).Return([]scoreapi.PersonalScoreRecord{}, nil).Once()
	api.On("SubmitScore", mock.Anything, scoreapi.ScoreSubmission{GameName: "pong", Score: 777}, false).Return(nil).Once()
	api.On("PersonalScores", mock.Anything, "pong", false).
		Return([]scoreapi.PersonalScoreRecord{{Score: 777, PlayedAt: "2025-01-03"}}, nil).Once()
	p := newTestPage(t, KindGame, "pong", api)
	require.NoError(t, p.Init(context.Background()))
	sender := &fakeSender{}
	require.NoError(t, p.Attach(sender))

	require.NoError(t, p.Game.Play(p.Context()))
	<-p.Game.Done()

	assert.Eventually(t, func() bool {
		return strings.Contains(sender.last(RegionScores), "<td>777</td>")
	}, time.Second, 10*time.Millisecond)
	assert.Contains(t, sender.last(RegionGame), `<dialog id="guest-score-dialog" open>`)
	assert.Contains(t, sender.last(RegionGame), `<span class="modal-score">777</span>`)
	assert.Equal(t, game.PhaseIdle, p.Game.Snapshot().Phase)
	api.AssertExpectations(t)
}

func TestPage_NoPushWithoutSender(t *testing.T) {
	api := &scoreapi.APIMock{}
	p := newTestPage(t, KindAuth, "", api)
	sender := &fakeSender{}

	p.Forms.ShowRegister()
	require.NoError(t, p.Attach(sender))
	p.Forms.ShowLogin()
	p.Detach()
	p.Forms.ShowRegister()

	assert.Equal(t, []string{RegionAuthForms}, sender.regions())
	assert.Contains(t, sender.last(RegionAuthForms), `<div id="register-form-container" class="hidden">`)
}

func TestPage_NotifyError(t *testing.T) {
	p := newTestPage(t, KindHome, "", &scoreapi.APIMock{})
	sender := &fakeSender{}
	require.NoError(t, p.Attach(sender))

	p.Notify(OutgoingMessage{Type: "ERROR", Payload: map[string]string{"message": "nope"}})

	require.Len(t, sender.msgs, 1)
	assert.Equal(t, "ERROR", sender.msgs[0].Type)
}

func TestPage_SecondConnectionRefused(t *testing.T) {
	p := newTestPage(t, KindHome, "", &scoreapi.APIMock{})
	require.NoError(t, p.Attach(&fakeSender{}))

	err := p.Attach(&fakeSender{})

	assert.Equal(t, 409, apperrors.CodeOf(err))
	p.Detach()
	assert.NoError(t, p.Attach(&fakeSender{}))
}

func TestPage_CloseCancelsContext(t *testing.T) {
	p := newTestPage(t, KindHome, "", &scoreapi.APIMock{})
	p.Close()
	assert.Error(t, p.Context().Err())
}
