// Stress test of the collision layer's pairwise pass.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"engine2d/internal/components"
	"engine2d/internal/config"
	"engine2d/internal/engine"
	"engine2d/internal/injector"
	"engine2d/internal/physics"
)

const frame = float32(1.0 / 60.0)

func main() {
	cfg := config.Defaults()
	cfg.Logging.Level = "warn"

	rt, cleanup, err := injector.InitializeRuntime(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer cleanup()

	fmt.Printf("bullet resolution %d\n\n", rt.Physics.BulletResolution)

	for _, count := range []int{100, 250, 500, 1000, 2000} {
		for _, bulletShare := range []float32{0, 0.1} {
			stress(rt, count, bulletShare)
		}
	}
}

func stress(rt *engine.Runtime, count int, bulletShare float32) {
	rng := rand.New(rand.NewSource(42)) // same layout every run

	scene := engine.NewScene("stress", engine.SceneType, rt)
	defer scene.Release()
	entities := engine.NewEntityLayer("entities")
	collisions := physics.NewCollisionLayer("")
	_ = scene.PushLayer(entities)
	_ = scene.PushLayer(collisions)

	// Area grows with count to keep density comparable.
	area := float32(400) + float32(count)*2
	for i := 0; i < count; i++ {
		e := engine.NewEntity(engine.ID(fmt.Sprintf("box-%d", i)), engine.EntityType)
		_ = entities.PushEntity(e)
		e.PushComponent(components.NewPosition("position", rng.Float32()*area, rng.Float32()*area))
		e.PushComponent(components.NewSize("size", 4+rng.Float32()*12, 4+rng.Float32()*12))
		e.PushComponent(components.NewMovement("movement", rng.Float32()*400-200, rng.Float32()*400-200))
		c := physics.NewCollider("collider", "")
		c.Bullet = rng.Float32() < bulletShare
		e.PushComponent(c)
	}

	// Warm up: the first update registers every collider.
	scene.Update(frame)

	const iterations = 10
	start := time.Now()
	var stats physics.Stats
	for i := 0; i < iterations; i++ {
		collisions.Update(frame)
		stats = collisions.Stats()
	}
	elapsed := time.Since(start) / iterations

	fmt.Printf("%5d colliders, %3.0f%% bullets: %10v per pass | %8d pairs | %5d hits\n",
		count, bulletShare*100, elapsed.Round(time.Microsecond), stats.Tested, stats.Hits)
}
