package page

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestToken_RoundTrip(t *testing.T) {
	token, err := IssueToken(testSecret, "page-1", time.Minute)
	require.NoError(t, err)

	id, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "page-1", id)
}

func TestToken_Rejected(t *testing.T) {
	expired, err := IssueToken(testSecret, "page-1", -time.Minute)
	require.NoError(t, err)
	foreign, err := IssueToken([]byte("other"), "page-1", time.Minute)
	require.NoError(t, err)
	noPage, err := IssueToken(testSecret, "", time.Minute)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"empty":   "",
		"garbage": "not.a.token",
		"expired": expired,
		"foreign": foreign,
		"no page": noPage,
	} {
		_, err := ParseToken(testSecret, tok)
		assert.Error(t, err, name)
	}
}
