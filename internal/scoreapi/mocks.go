package scoreapi

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type APIMock struct {
	mock.Mock
}

func (m *APIMock) Status(ctx context.Context) (LoginStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(LoginStatus), args.Error(1)
}

func (m *APIMock) Login(ctx context.Context, creds Credentials) error {
	args := m.Called(ctx, creds)
	return args.Error(0)
}

func (m *APIMock) Register(ctx context.Context, creds Credentials) error {
	args := m.Called(ctx, creds)
	return args.Error(0)
}

func (m *APIMock) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *APIMock) Leaderboard(ctx context.Context, game string) ([]LeaderboardEntry, error) {
	args := m.Called(ctx, game)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]LeaderboardEntry), args.Error(1)
}

func (m *APIMock) PersonalScores(ctx context.Context, game string, loggedIn bool) ([]PersonalScoreRecord, error) {
	args := m.Called(ctx, game, loggedIn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PersonalScoreRecord), args.Error(1)
}

func (m *APIMock) SubmitScore(ctx context.Context, submission ScoreSubmission, loggedIn bool) error {
	args := m.Called(ctx, submission, loggedIn)
	return args.Error(0)
}
