package platformer

import (
	"fmt"
	"testing"

	"engine2d/internal/components"
	"engine2d/internal/doc"
	"engine2d/internal/engine"
	"engine2d/internal/input"
	"engine2d/internal/layers"
	"engine2d/internal/physics"
	"engine2d/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const frame = float32(1.0 / 60.0)

func newRuntime(log *zap.Logger) *engine.Runtime {
	f := engine.NewFactory()
	components.Register(f)
	physics.Register(f)
	layers.Register(f)
	Register(f)
	return engine.NewRuntime(log, engine.NewEventManager(log), f, engine.PhysicsSettings{
		BulletResolution: 32,
		Gravity:          1800,
	})
}

// newLevel returns a scene with an entity layer under a collision layer.
func newLevel(rt *engine.Runtime, id engine.ID) (*engine.Scene, *engine.EntityLayer) {
	s := engine.NewScene(id, engine.SceneType, rt)
	entities := engine.NewEntityLayer("entities")
	_ = s.PushLayer(entities)
	_ = s.PushLayer(physics.NewCollisionLayer(""))
	return s, entities
}

type player struct {
	entity   *engine.Entity
	position *components.Position
	movement *components.Movement
	collider *PlayerCollider
	control  *PlayerController
}

func spawnPlayer(t *testing.T, entities *engine.EntityLayer, x, y, vy float32) player {
	t.Helper()
	e := NewPlayer("player", x, y)
	require.NoError(t, entities.PushEntity(e))
	p := player{
		entity:   e,
		position: engine.GetComponent[*components.Position](e),
		movement: engine.GetComponent[*components.Movement](e),
		collider: engine.GetComponent[*PlayerCollider](e),
		control:  engine.GetComponent[*PlayerController](e),
	}
	p.movement.Velocity.Y = vy
	return p
}

func TestLandingSnapsFlushAndStops(t *testing.T) {
	s, entities := newLevel(newRuntime(nil), "level")
	require.NoError(t, entities.PushEntity(NewPlatform("floor", rl.Rectangle{X: 0, Y: 100, Width: 200, Height: 20})))
	p := spawnPlayer(t, entities, 50, 60, 300)

	for i := 0; i < 10 && !p.collider.OnPlatform(); i++ {
		s.Update(frame)
	}

	require.True(t, p.collider.OnPlatform())
	assert.Equal(t, float32(68), p.position.Point.Y)
	assert.Zero(t, p.movement.Velocity.Y)

	// Resting keeps the flag raised frame after frame.
	s.Update(frame)
	assert.True(t, p.collider.OnPlatform())
	assert.Equal(t, float32(68), p.position.Point.Y)

	// Once clear of the platform the flag drops on the next frame.
	p.position.Point.Y = 0
	p.movement.Velocity.Y = 0
	s.Update(frame)
	assert.False(t, p.collider.OnPlatform())
}

func TestWalkingOnPlatformKeepsHorizontalMotion(t *testing.T) {
	s, entities := newLevel(newRuntime(nil), "level")
	require.NoError(t, entities.PushEntity(NewPlatform("floor", rl.Rectangle{X: 0, Y: 100, Width: 400, Height: 20})))
	p := spawnPlayer(t, entities, 50, 68, 0)

	s.Update(frame)
	p.control.HandleEvent(input.KeyEvent{Action: input.ActionRight, Pressed: true})
	for i := 0; i < 30; i++ {
		s.Update(frame)
	}

	assert.True(t, p.collider.OnPlatform())
	assert.Equal(t, float32(68), p.position.Point.Y)
	assert.InDelta(t, 50+30*240*frame, p.position.Point.X, 0.5)
}

func TestBulletPlayerDoesNotTunnelThroughThinPlatform(t *testing.T) {
	s, entities := newLevel(newRuntime(nil), "level")
	require.NoError(t, entities.PushEntity(NewPlatform("ledge", rl.Rectangle{X: 0, Y: 100, Width: 200, Height: 4})))
	p := spawnPlayer(t, entities, 50, 60, 3000)
	engine.GetComponent[*components.Rigidbody](p.entity).MaxFallSpeed = 0

	s.Update(frame)

	assert.True(t, p.collider.OnPlatform())
	assert.Equal(t, float32(68), p.position.Point.Y)
	assert.Zero(t, p.movement.Velocity.Y)
}

func TestDiscretePlayerTunnelsThroughThinPlatform(t *testing.T) {
	s, entities := newLevel(newRuntime(nil), "level")
	require.NoError(t, entities.PushEntity(NewPlatform("ledge", rl.Rectangle{X: 0, Y: 100, Width: 200, Height: 4})))
	p := spawnPlayer(t, entities, 50, 60, 3000)
	engine.GetComponent[*components.Rigidbody](p.entity).MaxFallSpeed = 0
	p.collider.Bullet = false

	s.Update(frame)

	assert.False(t, p.collider.OnPlatform())
	assert.Greater(t, p.position.Point.Y, float32(104))
}

func TestHeadBumpStopsUpwardMotion(t *testing.T) {
	s, entities := newLevel(newRuntime(nil), "level")
	require.NoError(t, entities.PushEntity(NewPlatform("ceiling", rl.Rectangle{X: 0, Y: 0, Width: 200, Height: 20})))
	p := spawnPlayer(t, entities, 50, 22, -300)

	s.Update(frame)

	assert.Equal(t, float32(20), p.position.Point.Y)
	assert.Zero(t, p.movement.Velocity.Y)
	assert.False(t, p.collider.OnPlatform())
}

func TestBouncerLaunchesPlayer(t *testing.T) {
	s, entities := newLevel(newRuntime(nil), "level")
	require.NoError(t, entities.PushEntity(NewBouncer("spring", rl.Rectangle{X: 0, Y: 100, Width: 200, Height: 20})))
	p := spawnPlayer(t, entities, 50, 70, 100)

	s.Update(frame)

	assert.Equal(t, -p.collider.BounceSpeed, p.movement.Velocity.Y)
}

func TestBounceOffSpringAboveLavaDoesNotKill(t *testing.T) {
	rt := newRuntime(nil)
	s, entities := newLevel(rt, "level")
	require.NoError(t, entities.PushEntity(NewBouncer("spring", rl.Rectangle{X: 0, Y: 100, Width: 200, Height: 10})))
	require.NoError(t, entities.PushEntity(NewDoom("lava", rl.Rectangle{X: 0, Y: 110, Width: 200, Height: 20})))
	p := spawnPlayer(t, entities, 50, 70, 100)

	s.Update(frame)

	assert.Equal(t, -p.collider.BounceSpeed, p.movement.Velocity.Y)
	assert.Less(t, p.position.Point.Y+32, float32(110), "the player never reached the lava")
	assert.Zero(t, rt.Events.Pending(), "no death for lava the player never touched")
}

func TestDoomQueuesOneDeath(t *testing.T) {
	rt := newRuntime(nil)
	s, entities := newLevel(rt, "level")
	require.NoError(t, entities.PushEntity(NewDoom("lava", rl.Rectangle{X: 0, Y: 100, Width: 200, Height: 20})))
	spawnPlayer(t, entities, 50, 80, 0)

	s.Update(frame)
	s.Update(frame)

	require.Equal(t, 1, rt.Events.Pending())
	var got []engine.Event
	rt.Events.Connect(&sink{events: &got}, DeathEventType)
	rt.Events.Dispatch()
	require.Len(t, got, 1)
	assert.Equal(t, engine.ID("player"), got[0].(DeathEvent).Entity)
}

func TestWarpWithoutDestinationGoesNowhere(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	rt := newRuntime(zap.New(core))
	s, entities := newLevel(rt, "level")
	require.NoError(t, entities.PushEntity(NewWarp("door", rl.Rectangle{X: 0, Y: 100, Width: 200, Height: 20}, "")))
	spawnPlayer(t, entities, 50, 80, 0)

	s.Update(frame)

	assert.Zero(t, rt.Events.Pending())
	assert.Equal(t, 1, logs.FilterMessage("collision going nowhere").Len())
}

func TestWarpQueuesDestination(t *testing.T) {
	rt := newRuntime(nil)
	s, entities := newLevel(rt, "level")
	require.NoError(t, entities.PushEntity(NewWarp("door", rl.Rectangle{X: 0, Y: 100, Width: 200, Height: 20}, "castle")))
	spawnPlayer(t, entities, 50, 80, 0)

	var got []engine.Event
	rt.Events.Connect(&sink{events: &got}, WarpEventType)
	s.Update(frame)
	s.Update(frame)
	rt.Events.Dispatch()

	require.Len(t, got, 1)
	assert.Equal(t, "castle", got[0].(WarpEvent).Level)
}

func TestControllerJumpsOnlyFromPlatform(t *testing.T) {
	rt := newRuntime(nil)
	s, entities := newLevel(rt, "level")
	require.NoError(t, entities.PushEntity(NewPlatform("floor", rl.Rectangle{X: 0, Y: 100, Width: 200, Height: 20})))
	p := spawnPlayer(t, entities, 50, 0, 0)

	s.Update(frame)
	require.Equal(t, 1, rt.Events.ListenerCount(input.KeyEventType))

	// Mid-air: the press is dropped.
	rt.Events.Trigger(input.KeyEvent{Action: input.ActionJump, Pressed: true})
	s.Update(frame)
	assert.Greater(t, p.movement.Velocity.Y, float32(0))

	for i := 0; i < 60 && !p.collider.OnPlatform(); i++ {
		s.Update(frame)
	}
	require.True(t, p.collider.OnPlatform())

	rt.Events.Trigger(input.KeyEvent{Action: input.ActionJump, Pressed: true})
	s.Update(frame)
	assert.Less(t, p.movement.Velocity.Y, float32(0))
}

func TestControllerDisconnectsWhenDestroyed(t *testing.T) {
	rt := newRuntime(nil)
	s, entities := newLevel(rt, "level")
	p := spawnPlayer(t, entities, 0, 0, 0)

	s.Update(frame)
	require.Equal(t, 1, rt.Events.ListenerCount(input.KeyEventType))

	p.entity.Kill()
	s.Update(frame)
	assert.Zero(t, rt.Events.ListenerCount(input.KeyEventType))
	assert.Zero(t, entities.Len())
}

func TestCameraFollowCentresOnEntity(t *testing.T) {
	s, entities := newLevel(newRuntime(nil), "level")
	p := spawnPlayer(t, entities, 100, 50, 0)
	engine.GetComponent[*components.Rigidbody](p.entity).UseGravity = false
	cam := engine.GetComponent[*CameraFollow](p.entity)

	s.Update(frame)
	assert.Equal(t, rl.Vector2{X: 112, Y: 66}, cam.Target())

	rec := render.NewRecorder(320, 240)
	s.Render(rec)
	assert.Equal(t, rl.Vector2{X: 112, Y: 66}, rec.Camera().Target)

	p.position.Point.X = 300
	s.Update(frame)
	assert.Greater(t, cam.Target().X, float32(112))
	assert.Less(t, cam.Target().X, float32(312))
}

func TestCameraClampsToBounds(t *testing.T) {
	c := NewCameraFollow("camera")
	c.Bounds = rl.Rectangle{Width: 1000, Height: 240}
	rec := render.NewRecorder(320, 240)

	got := c.clamp(rl.Vector2{X: 10, Y: 500}, rec)
	assert.Equal(t, rl.Vector2{X: 160, Y: 120}, got)
}

func TestSpawnSolidsFromTilemap(t *testing.T) {
	rt := newRuntime(nil)
	s := engine.NewScene("level", engine.SceneType, rt)
	tm := layers.NewTilemapLayer("tiles")
	tm.TileWidth, tm.TileHeight = 16, 16
	require.NoError(t, tm.SetGrid(3, 2, []uint32{
		0, 0, 0,
		1, 1, 1,
	}))
	require.NoError(t, s.PushLayer(tm))
	require.NoError(t, s.PushLayer(engine.NewEntityLayer("entities")))
	require.NoError(t, s.PushLayer(physics.NewCollisionLayer("")))

	n, err := SpawnSolids(s)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	ids := make([]engine.ID, 0)
	for _, l := range s.Layers() {
		ids = append(ids, l.ID())
	}
	assert.Equal(t, []engine.ID{"tiles", "entities", SolidsLayerID, physics.DefaultLayerID}, ids)

	again, err := SpawnSolids(s)
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestPlayerColliderRoundTrip(t *testing.T) {
	rt := newRuntime(nil)
	_, entities := newLevel(rt, "level")
	p := spawnPlayer(t, entities, 0, 0, 0)
	p.collider.BounceSpeed = 450

	el := doc.New("entity")
	require.True(t, p.entity.Serialize(el))

	_, restoredLayer := newLevel(rt, "restored")
	restored, err := rt.Factory.CreateEntity(engine.EntityType, p.entity.ID())
	require.NoError(t, err)
	require.NoError(t, restoredLayer.PushEntity(restored))
	require.True(t, restored.Deserialize(el))

	got := engine.GetComponent[*PlayerCollider](restored)
	require.NotNil(t, got)
	assert.Equal(t, float32(450), got.BounceSpeed)
	assert.True(t, got.Bullet)
	assert.Equal(t, TagPlayer, got.Tag)
	assert.Len(t, restored.Components(), len(p.entity.Components()))
}

type sink struct {
	events *[]engine.Event
}

func (s *sink) HandleEvent(ev engine.Event) bool {
	*s.events = append(*s.events, ev)
	return false
}

// fakeLevels builds levels from in-memory layouts.
type fakeLevels struct {
	rt      *engine.Runtime
	layouts map[string]func(*engine.EntityLayer)
	builds  map[string]int
}

func newFakeLevels(rt *engine.Runtime) *fakeLevels {
	return &fakeLevels{
		rt:      rt,
		layouts: make(map[string]func(*engine.EntityLayer)),
		builds:  make(map[string]int),
	}
}

func (f *fakeLevels) Build(name string) (*engine.Scene, error) {
	layout, ok := f.layouts[name]
	if !ok {
		return nil, fmt.Errorf("unknown level %q", name)
	}
	f.builds[name]++
	s, entities := newLevel(f.rt, engine.ID(name))
	layout(entities)
	return s, nil
}
