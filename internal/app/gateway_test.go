package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Dicecells/internal/app"
	"github.com/dkeye/Dicecells/internal/core"
	"github.com/dkeye/Dicecells/internal/domain"
)

type stubConn struct{ closed bool }

func (c *stubConn) TrySend(core.Frame) error { return nil }
func (c *stubConn) Close()                   { c.closed = true }

func TestGateway_BindAttachUnbind(t *testing.T) {
	g := app.NewGateway()
	conn := &stubConn{}
	g.Bind("c1", conn, nil)
	require.Equal(t, 1, g.Len())

	got, ok := g.Conn("c1")
	require.True(t, ok)
	assert.Same(t, conn, got)

	assert.True(t, g.Attach("c1", "200000"))
	assert.True(t, g.Attach("c1", "100000"))
	assert.False(t, g.Attach("nobody", "100000"))
	assert.True(t, g.InRoom("c1", "100000"))
	assert.True(t, g.InRoom("c1", "200000"))
	assert.True(t, g.Attach("c1", "300000"))

	g.Detach("c1", "200000")
	assert.False(t, g.InRoom("c1", "200000"))

	assert.Equal(t, []domain.RoomID{"100000", "300000"}, g.Unbind("c1"))
	assert.Nil(t, g.Unbind("c1"))
	assert.Zero(t, g.Len())
	_, ok = g.Conn("c1")
	assert.False(t, ok)
}

func TestGateway_TargetsSkipsMissing(t *testing.T) {
	g := app.NewGateway()
	a, b := &stubConn{}, &stubConn{}
	g.Bind("a", a, nil)
	g.Bind("b", b, nil)

	targets := g.Targets([]domain.PlayerID{"b", "gone", "a"})
	require.Len(t, targets, 2)
	assert.Equal(t, core.ConnID("b"), targets[0].ID)
	assert.Same(t, b, targets[0].Conn)
	assert.Equal(t, core.ConnID("a"), targets[1].ID)
}

func TestGateway_Cancel(t *testing.T) {
	g := app.NewGateway()
	canceled := 0
	g.Bind("c1", &stubConn{}, func() { canceled++ })

	assert.True(t, g.Cancel("c1"))
	assert.Equal(t, 1, canceled)
	assert.False(t, g.Cancel("c2"))
}

func TestPlayerIdentity(t *testing.T) {
	assert.Equal(t, domain.PlayerID("xyz"), app.PlayerOf("xyz"))
	assert.Equal(t, core.ConnID("xyz"), app.ConnOf("xyz"))
}

func TestSimplePolicy(t *testing.T) {
	var p app.Policy = app.SimplePolicy{}
	assert.Equal(t, app.KickMember, p.OnBackPressure("100000", "c1"))
}
