package assets

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Manager caches textures by path. It needs an open raylib window, so
// only the platform backend creates one.
type Manager struct {
	root     string
	textures map[string]rl.Texture2D
	log      *zap.Logger
}

// NewManager returns an empty texture cache that resolves paths against root.
func NewManager(root string, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		root:     root,
		textures: make(map[string]rl.Texture2D),
		log:      log,
	}
}

// Resolve joins path onto the asset root unless it is already rooted.
func (m *Manager) Resolve(path string) string {
	return ResolvePath(m.root, path)
}

// Texture loads path on first use. A texture that fails to load is cached
// too, as a zero texture, so the failure is logged once.
func (m *Manager) Texture(path string) (rl.Texture2D, bool) {
	if texture, exists := m.textures[path]; exists {
		return texture, texture.ID != 0
	}

	texture := rl.LoadTexture(m.Resolve(path))
	if texture.ID == 0 {
		m.log.Warn("texture failed to load", zap.String("path", path))
	}
	m.textures[path] = texture
	return texture, texture.ID != 0
}

// Loaded returns the number of cached textures.
func (m *Manager) Loaded() int { return len(m.textures) }

// Unload frees every cached texture.
func (m *Manager) Unload() {
	for _, texture := range m.textures {
		if texture.ID != 0 {
			rl.UnloadTexture(texture)
		}
	}
	m.textures = make(map[string]rl.Texture2D)
}
