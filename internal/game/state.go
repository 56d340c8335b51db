package game

import (
	"errors"
	"fmt"

	"engine2d/internal/doc"

	"go.uber.org/zap"
)

// ErrBadState is returned for save files that do not describe a game.
var ErrBadState = errors.New("save state rejected")

// SaveState writes the scene stack and the current level name to path.
func (g *Game) SaveState(path string) error {
	root := doc.New("state")
	if g.flow != nil {
		root.Set("level", g.flow.Current())
	}
	if !g.scenes.Serialize(root) {
		return fmt.Errorf("%w: serialize", ErrBadState)
	}
	if err := doc.Save(path, root); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	g.log.Info("state saved", zap.String("path", path), zap.Int("scenes", g.scenes.Len()))
	return nil
}

// LoadState replaces the scene stack with the one saved at path. On any
// error the running stack is left untouched.
func (g *Game) LoadState(path string) error {
	root, err := doc.Load(path)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if len(root.ChildrenNamed("scene")) == 0 {
		return fmt.Errorf("%w: %s has no scenes", ErrBadState, path)
	}
	if !g.scenes.Deserialize(root) {
		return fmt.Errorf("%w: %s", ErrBadState, path)
	}
	if g.flow != nil {
		g.flow.Resume(root.String("level", g.flow.Current()))
	}
	g.log.Info("state loaded", zap.String("path", path), zap.Int("scenes", g.scenes.Len()))
	return nil
}
