package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/thesrcielos/ArcadeArchive/internal/auth"
	"github.com/thesrcielos/ArcadeArchive/internal/game"
	"github.com/thesrcielos/ArcadeArchive/internal/leaderboard"
	"github.com/thesrcielos/ArcadeArchive/internal/scores"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS serves the client script and stylesheet.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var pageTitles = map[Kind]string{
	KindHome:        "Home",
	KindLeaderboard: "Leaderboard",
	KindAbout:       "About",
	KindAuth:        "Login",
}

type viewData struct {
	Kind             Kind
	Token            string
	DocumentTitle    string
	Games            []string
	Nav              auth.NavSnapshot
	Leaderboard      *leaderboard.Snapshot
	LeaderboardEmpty string
	Game             *game.Snapshot
	Scores           *scores.Snapshot
	Forms            *auth.FormsSnapshot
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page writes the full document for p. The token is embedded so the client
// can open the page's websocket.
func (r *Renderer) Page(w io.Writer, p *Page, token string) error {
	return r.tmpl.ExecuteTemplate(w, "page", dataFor(p, token))
}

// Region renders one replaceable part of the page.
func (r *Renderer) Region(p *Page, region string) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "region-"+region, dataFor(p, "")); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func dataFor(p *Page, token string) viewData {
	data := viewData{
		Kind:          p.Kind,
		Token:         token,
		DocumentTitle: game.SiteName + " - " + pageTitles[p.Kind],
		Games:         p.games,
		Nav:           p.Nav.Snapshot(),
	}
	if p.Leaderboard != nil {
		snap := p.Leaderboard.Snapshot()
		data.Leaderboard = &snap
		data.LeaderboardEmpty = leaderboard.EmptyMessage
	}
	if p.Game != nil {
		snap := p.Game.Snapshot()
		data.Game = &snap
		data.DocumentTitle = snap.DocumentTitle
	}
	if p.Scores != nil {
		snap := p.Scores.Snapshot()
		data.Scores = &snap
	}
	if p.Forms != nil {
		snap := p.Forms.Snapshot()
		data.Forms = &snap
	}
	return data
}
