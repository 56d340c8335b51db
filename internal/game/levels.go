package game

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"engine2d/internal/doc"
	"engine2d/internal/engine"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnknownLevel = errors.New("unknown level")
	ErrBadLevel     = errors.New("level rejected")
)

// preloadWorkers bounds concurrent document reads.
const preloadWorkers = 4

// LevelCatalog holds level documents by name (file name without
// extension) and builds fresh scenes from them.
type LevelCatalog struct {
	dir string
	rt  *engine.Runtime
	log *zap.Logger

	mu   sync.RWMutex
	docs map[string]*doc.Element
}

// NewLevelCatalog returns an empty catalog over dir.
func NewLevelCatalog(dir string, rt *engine.Runtime) *LevelCatalog {
	return &LevelCatalog{
		dir:  dir,
		rt:   rt,
		log:  rt.Logger().Named("levels"),
		docs: make(map[string]*doc.Element),
	}
}

// Preload reads every .yaml, .yml and .json document in the catalog
// directory concurrently. It fails on the first unreadable document and
// keeps none of them.
func (c *LevelCatalog) Preload(ctx context.Context) error {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml", "*.json"} {
		found, err := filepath.Glob(filepath.Join(c.dir, pattern))
		if err != nil {
			return fmt.Errorf("list levels: %w", err)
		}
		paths = append(paths, found...)
	}
	sort.Strings(paths)

	loaded := make([]*doc.Element, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadWorkers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			root, err := doc.Load(path)
			if err != nil {
				return fmt.Errorf("level %s: %w", path, err)
			}
			loaded[i] = root
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, path := range paths {
		c.Add(levelName(path), loaded[i])
	}
	c.log.Info("levels loaded", zap.String("dir", c.dir), zap.Int("count", len(paths)))
	return nil
}

func levelName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Add stores root under name, replacing any earlier document.
func (c *LevelCatalog) Add(name string, root *doc.Element) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[name] = root
}

// Document returns the raw document for name.
func (c *LevelCatalog) Document(name string) (*doc.Element, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	root, ok := c.docs[name]
	return root, ok
}

// Names returns the known level names in order.
func (c *LevelCatalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.docs))
	for name := range c.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build deserializes a new scene from the named document. The scene id
// is the level name.
func (c *LevelCatalog) Build(name string) (*engine.Scene, error) {
	root, ok := c.Document(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}

	tag := engine.Tag(root.String("type", engine.SceneType.String()))
	scene, err := c.rt.Factory.CreateScene(tag, engine.ID(name), c.rt)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", name, err)
	}
	if !scene.Deserialize(root) {
		scene.Release()
		return nil, fmt.Errorf("%w: %q", ErrBadLevel, name)
	}
	return scene, nil
}
