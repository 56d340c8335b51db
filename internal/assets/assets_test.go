package assets

import (
	"path/filepath"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestLookupColor(t *testing.T) {
	assert.Equal(t, rl.Red, LookupColor("Red"))
	assert.Equal(t, rl.White, LookupColor("NoSuchColor"))
}

func TestColorNameRoundTrip(t *testing.T) {
	for name := range colorByName {
		got, ok := ColorName(LookupColor(name))
		assert.True(t, ok, name)
		assert.Equal(t, LookupColor(name), LookupColor(got))
	}

	_, ok := ColorName(rl.NewColor(1, 2, 3, 4))
	assert.False(t, ok)
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("assets", "tiles.png"), ResolvePath("assets", "tiles.png"))
	assert.Equal(t, "tiles.png", ResolvePath("", "tiles.png"))

	abs, _ := filepath.Abs("tiles.png")
	assert.Equal(t, abs, ResolvePath("assets", abs))
}
