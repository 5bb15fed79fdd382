package actions

import (
	"encoding/json"

	"github.com/thesrcielos/ArcadeArchive/internal/apperrors"
	"github.com/thesrcielos/ArcadeArchive/internal/page"
	"github.com/thesrcielos/ArcadeArchive/internal/scores"
	"github.com/thesrcielos/ArcadeArchive/websocket/message"
)

func HandleSort(p *page.Page, msg message.Message) error {
	if p.Scores == nil {
		return notOnPage("score list")
	}
	var payload message.SortPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return apperrors.NewAppError(400, "Invalid sort payload", err)
	}
	key := scores.SortKey(payload.Key)
	if key != scores.SortByDate && key != scores.SortByScore {
		return apperrors.NewAppError(400, "Unknown sort key "+payload.Key, nil)
	}
	p.Scores.SetSort(key)
	return nil
}

func HandleToggleAll(p *page.Page, msg message.Message) error {
	if p.Scores == nil {
		return notOnPage("score list")
	}
	p.Scores.ToggleShowAll()
	return nil
}
