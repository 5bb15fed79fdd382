package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	Addr          string
	APIBaseURL    string
	APITimeout    time.Duration
	PageSecret    []byte
	PageTTL       time.Duration
	PlayDuration  time.Duration
	Games         []string
	ScoresPreview int
}

// Init reads the process environment. Call godotenv.Load first if a .env file is used.
func Init() *Config {
	return &Config{
		Addr:          listenAddr(),
		APIBaseURL:    strings.TrimRight(getEnv("SCORE_API_URL", "http://127.0.0.1:8000"), "/"),
		APITimeout:    getDuration("SCORE_API_TIMEOUT", 10*time.Second),
		PageSecret:    pageSecret(),
		PageTTL:       getDuration("PAGE_TTL", 30*time.Minute),
		PlayDuration:  getDuration("PLAY_DURATION", 2*time.Second),
		Games:         splitList(getEnv("ARCADE_GAMES", "pong,snake,tetris")),
		ScoresPreview: 5,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		log.Printf("invalid %s %q, using %s", key, val, fallback)
		return fallback
	}
	return d
}

func listenAddr() string {
	if addr := os.Getenv("ARCADE_ADDR"); addr != "" {
		return addr
	}
	if os.Getenv("DOCKER_CONTAINER") == "true" {
		log.Println("Running in Docker mode (0.0.0.0)")
		return "0.0.0.0:5000"
	}
	log.Println("Running in Local mode (127.0.0.1)")
	return "127.0.0.1:5000"
}

func pageSecret() []byte {
	if secret := os.Getenv("PAGE_SECRET"); secret != "" {
		return []byte(secret)
	}
	log.Println("PAGE_SECRET not set, page tokens will not survive a restart")
	return []byte(uuid.NewString())
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
