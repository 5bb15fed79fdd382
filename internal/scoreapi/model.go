package scoreapi

type LoginStatus struct {
	LoggedIn bool `json:"logged_in"`
}

type LeaderboardEntry struct {
	Username  string `json:"username"`
	BestScore int    `json:"best_score"`
}

type PersonalScoreRecord struct {
	Score    int    `json:"score"`
	PlayedAt string `json:"played_at"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ScoreSubmission struct {
	GameName string `json:"game_name"`
	Score    int    `json:"score"`
}
