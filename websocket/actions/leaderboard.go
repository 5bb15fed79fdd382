package actions

import (
	"encoding/json"

	"github.com/thesrcielos/ArcadeArchive/internal/apperrors"
	"github.com/thesrcielos/ArcadeArchive/internal/page"
	"github.com/thesrcielos/ArcadeArchive/websocket/message"
)

// HandleTab selects a leaderboard tab in message order. Only a cache-miss
// fetch runs off the read loop, so a slow API does not hold up the page's
// other actions.
func HandleTab(p *page.Page, msg message.Message) error {
	if p.Leaderboard == nil {
		return notOnPage("leaderboard")
	}
	var payload message.TabPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return apperrors.NewAppError(400, "Invalid tab payload", err)
	}
	if payload.Game == "" {
		return apperrors.NewAppError(400, "Game is required", nil)
	}

	if p.Leaderboard.Select(payload.Game) {
		go p.Leaderboard.Load(p.Context(), payload.Game)
	}
	return nil
}

func notOnPage(view string) error {
	return apperrors.NewAppError(400, "No "+view+" on this page", nil)
}
