package layers

import (
	"testing"

	"engine2d/internal/doc"
	"engine2d/internal/engine"
	"engine2d/internal/input"
	"engine2d/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = float32(1.0 / 60.0)

func newScene(t *testing.T) *engine.Scene {
	t.Helper()
	f := engine.NewFactory()
	Register(f)
	rt := engine.NewRuntime(nil, engine.NewEventManager(nil), f, engine.PhysicsSettings{})
	return engine.NewScene("scene", engine.SceneType, rt)
}

// ticker counts updates.
type ticker struct {
	engine.BaseLayer
	ticks int
}

func (tk *ticker) Update(deltaTime float32) { tk.ticks++ }

func newTicker(id engine.ID) *ticker {
	return &ticker{BaseLayer: engine.NewBaseLayer(id, engine.Tag("test.Ticker"))}
}

func newGrid(t *testing.T) *TilemapLayer {
	t.Helper()
	tm := NewTilemapLayer("tiles")
	tm.Tileset = "tiles.png"
	tm.TileWidth, tm.TileHeight = 10, 10
	require.NoError(t, tm.SetGrid(4, 3, []uint32{
		0, 0, 0, 0,
		0, 5, 0, 0,
		1, 1, 1, 0,
	}))
	return tm
}

func TestTilemapSolidsMergesRuns(t *testing.T) {
	tm := newGrid(t)

	assert.Equal(t, []rl.Rectangle{
		{X: 10, Y: 10, Width: 10, Height: 10},
		{X: 0, Y: 20, Width: 30, Height: 10},
	}, tm.Solids())

	assert.Equal(t, uint32(5), tm.At(1, 1))
	assert.Zero(t, tm.At(9, 9))
	assert.False(t, tm.Set(-1, 0, 3))
	assert.Error(t, tm.SetGrid(2, 2, []uint32{1}))
}

func TestTilemapRendersVisibleTiles(t *testing.T) {
	tm := newGrid(t)
	rec := render.NewRecorder(100, 100)
	cam := rec.Camera()
	cam.Offset = rl.Vector2{}
	rec.SetCamera(cam)

	tm.Render(rec)
	assert.Equal(t, 4, rec.Count(render.OpTile))
	assert.Equal(t, render.OpBeginWorld, rec.Calls[0].Op)
	assert.Equal(t, "tiles.png", rec.Calls[1].Tileset)

	rec.Reset()
	cam.Target = rl.Vector2{X: 1000, Y: 1000}
	rec.SetCamera(cam)
	tm.Render(rec)
	assert.Zero(t, rec.Count(render.OpTile))
}

func TestTilemapRoundTrip(t *testing.T) {
	tm := newGrid(t)
	tm.Origin = rl.Vector2{X: -5, Y: 7}
	el := doc.New("layer")
	require.True(t, tm.Serialize(el))
	assert.Equal(t, "0,0,0,0\n0,5,0,0\n1,1,1,0\n", el.Text)

	back := NewTilemapLayer("tiles")
	require.True(t, back.Deserialize(el))
	assert.Equal(t, tm.Solids(), back.Solids())
	assert.Equal(t, tm.Origin, back.Origin)
	assert.Equal(t, "tiles.png", back.Tileset)

	el.Text = "1,2\n3"
	assert.False(t, NewTilemapLayer("bad").Deserialize(el))
}

func TestPauseBlocksLowerLayersAndSwallowsPresses(t *testing.T) {
	s := newScene(t)
	below := newTicker("below")
	require.NoError(t, s.PushLayer(below))

	assert.True(t, TogglePause(s))
	assert.True(t, Paused(s))
	s.Update(frame)
	assert.Zero(t, below.ticks)

	assert.True(t, s.HandleEvent(input.KeyEvent{Action: input.ActionJump, Pressed: true}))
	assert.False(t, s.HandleEvent(input.KeyEvent{Action: input.ActionJump, Pressed: false}))
	assert.False(t, s.HandleEvent(input.KeyEvent{Action: input.ActionPause, Pressed: true}))
	assert.False(t, s.HandleEvent(input.KeyEvent{Action: input.ActionQuit, Pressed: true}))

	rec := render.NewRecorder(320, 240)
	s.Render(rec)
	assert.Equal(t, 1, rec.Count(render.OpPanel))

	assert.False(t, TogglePause(s))
	assert.False(t, Paused(s))
	s.Update(frame)
	assert.Equal(t, 1, below.ticks)
}

func TestSplashFadesAndDismissesItself(t *testing.T) {
	s := newScene(t)
	below := newTicker("below")
	require.NoError(t, s.PushLayer(below))
	splash := NewSplashLayer("splash", "Engine", 1)
	splash.Fade = 0.25
	splash.reset()
	require.NoError(t, s.PushLayer(splash))

	s.Update(0.25)
	assert.InDelta(t, 1, splash.Alpha(), 1e-3, "fully faded in")
	assert.Zero(t, below.ticks)

	s.Update(0.5)
	s.Update(0.2)
	assert.Less(t, splash.Alpha(), float32(1), "fading out")

	s.Update(0.1)
	assert.Nil(t, s.Layer("splash"))
	assert.False(t, splash.Alive())

	s.Update(frame)
	assert.Equal(t, 1, below.ticks)
}

func TestSplashDismissedByKey(t *testing.T) {
	s := newScene(t)
	splash := NewSplashLayer("splash", "Engine", 10)
	require.NoError(t, s.PushLayer(splash))

	assert.False(t, s.HandleEvent(input.KeyEvent{Action: input.ActionJump, Pressed: false}))
	assert.True(t, s.HandleEvent(input.KeyEvent{Action: input.ActionJump, Pressed: true}))
	assert.Nil(t, s.Layer("splash"))
}

func TestLayersThroughFactory(t *testing.T) {
	s := newScene(t)
	require.NoError(t, s.PushLayer(newGrid(t)))
	splash := NewSplashLayer("splash", "Hello", 3)
	splash.Subtitle = "press any key"
	require.NoError(t, s.PushLayer(splash))
	require.NoError(t, s.PushLayer(NewPauseLayer("")))

	el := doc.New("scene")
	require.True(t, s.Serialize(el))

	back := engine.NewScene("", engine.SceneType, s.Runtime())
	require.True(t, back.Deserialize(el))
	require.Len(t, back.Layers(), 3)
	assert.IsType(t, &TilemapLayer{}, back.Layers()[0])
	got := back.Layer("splash").(*SplashLayer)
	assert.Equal(t, "press any key", got.Subtitle)
	assert.InDelta(t, 3, got.Duration, 1e-6)
	assert.True(t, Paused(back))
}
