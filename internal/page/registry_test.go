package page

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/ArcadeArchive/internal/scoreapi"
)

func TestRegistry_RegisterGetUnregister(t *testing.T) {
	r := NewRegistry()
	p := newTestPage(t, KindHome, "", &scoreapi.APIMock{})

	r.Register(p)
	assert.Same(t, p, r.Get(p.ID))
	assert.Equal(t, 1, r.Len())

	r.Unregister(p.ID)
	assert.Nil(t, r.Get(p.ID))
	assert.Error(t, p.Context().Err())
	assert.NotPanics(t, func() { r.Unregister(p.ID) })
}

func TestRegistry_SweepKeepsConnectedPages(t *testing.T) {
	r := NewRegistry()
	idle := newTestPage(t, KindHome, "", &scoreapi.APIMock{})
	connected := newTestPage(t, KindHome, "", &scoreapi.APIMock{})
	require.NoError(t, connected.Attach(&fakeSender{}))
	r.Register(idle)
	r.Register(connected)

	time.Sleep(5 * time.Millisecond)
	removed := r.Sweep(time.Millisecond)

	require.Equal(t, 1, removed)
	assert.Nil(t, r.Get(idle.ID))
	assert.NotNil(t, r.Get(connected.ID))
}

func TestRegistry_SweepKeepsFreshPages(t *testing.T) {
	r := NewRegistry()
	p := newTestPage(t, KindHome, "", &scoreapi.APIMock{})
	r.Register(p)

	assert.Equal(t, 0, r.Sweep(time.Hour))
	assert.Equal(t, 1, r.Len())
}
