package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	api_middleware "github.com/thesrcielos/ArcadeArchive/api/middleware"
	"github.com/thesrcielos/ArcadeArchive/api/web"
	"github.com/thesrcielos/ArcadeArchive/internal/page"
	"github.com/thesrcielos/ArcadeArchive/internal/scoreapi"
	"github.com/thesrcielos/ArcadeArchive/pkg/config"
	"github.com/thesrcielos/ArcadeArchive/websocket"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️File .env not found, using system values")
	}
	cfg := config.Init()

	renderer, err := page.NewRenderer()
	if err != nil {
		log.Fatal(err)
	}
	pages := page.NewRegistry()
	go sweepPages(pages, cfg.PageTTL)

	h := &web.PageHandler{
		Pages:    pages,
		Renderer: renderer,
		Secret:   cfg.PageSecret,
		TokenTTL: cfg.PageTTL,
		Options: page.Options{
			Games:         cfg.Games,
			PlayDuration:  cfg.PlayDuration,
			ScoresPreview: cfg.ScoresPreview,
			NewAPI: func(cookies []*http.Cookie) (scoreapi.API, error) {
				return scoreapi.NewClient(cfg.APIBaseURL, cfg.APITimeout, cookies)
			},
		},
	}

	e := echo.New()
	e.HTTPErrorHandler = web.HTTPErrorHandler

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	web.RegisterPageRoutes(e, h)

	g := e.Group("/page")
	g.Use(api_middleware.SetupJWTMiddleware(cfg.PageSecret))
	web.RegisterActionRoutes(g, h)

	e.GET("/ws", websocket.NewHandler(pages, cfg.PageSecret))

	log.Printf("Score API at %s, games %v", cfg.APIBaseURL, cfg.Games)
	e.Logger.Fatal(e.Start(cfg.Addr))
}

const minSweepInterval = time.Second

// sweepPages drops pages whose browser never connected or went away.
func sweepPages(pages *page.Registry, ttl time.Duration) {
	ticker := time.NewTicker(sweepInterval(ttl))
	defer ticker.Stop()
	for range ticker.C {
		if n := pages.Sweep(ttl); n > 0 {
			log.Printf("Swept %d idle pages, %d open", n, pages.Len())
		}
	}
}

func sweepInterval(ttl time.Duration) time.Duration {
	return max(ttl/2, minSweepInterval)
}
