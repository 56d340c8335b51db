// Package platform is the raylib desktop backend: it opens the window,
// draws scenes and reads the keyboard.
package platform

import (
	"engine2d/internal/assets"
	"engine2d/internal/config"
	"engine2d/internal/render"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

var (
	colorBackground = rl.NewColor(20, 20, 30, 255)
	colorPanel      = rl.NewColor(18, 18, 24, 245)
	colorAccent     = rl.NewColor(108, 99, 255, 255)
	colorText       = rl.NewColor(200, 200, 208, 255)
	colorMissing    = rl.NewColor(255, 0, 255, 255)
)

// Window implements render.Surface and input.Keyboard on top of raylib.
type Window struct {
	cfg    config.WindowConfig
	assets *assets.Manager
	camera rl.Camera2D
	log    *zap.Logger
}

var _ render.Surface = (*Window)(nil)

// Open creates the raylib window. Escape is not an exit key here; the
// quit action decides.
func Open(cfg config.WindowConfig, textures *assets.Manager, log *zap.Logger) *Window {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagVsyncHint)
	rl.InitWindow(cfg.Width, cfg.Height, cfg.Title)
	rl.SetExitKey(rl.KeyNull)
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(cfg.TargetFPS)
	}
	initGuiStyle()

	log.Info("window opened",
		zap.Int32("width", cfg.Width),
		zap.Int32("height", cfg.Height),
		zap.Int32("target_fps", cfg.TargetFPS))

	return &Window{
		cfg:    cfg,
		assets: textures,
		camera: render.DefaultCamera(cfg.Width, cfg.Height),
		log:    log,
	}
}

func initGuiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorPanel))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 18)
}

// Close unloads cached textures and closes the window.
func (w *Window) Close() {
	w.assets.Unload()
	rl.CloseWindow()
	w.log.Info("window closed")
}

func (w *Window) ShouldClose() bool { return rl.WindowShouldClose() }

// Paced reports whether raylib waits for the target frame rate.
func (w *Window) Paced() bool { return w.cfg.TargetFPS > 0 }

// BeginFrame starts drawing and clears to the background colour.
func (w *Window) BeginFrame() {
	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)
}

func (w *Window) EndFrame() {
	rl.EndDrawing()
}

func (w *Window) Size() (int32, int32) {
	return int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
}

func (w *Window) Camera() rl.Camera2D       { return w.camera }
func (w *Window) SetCamera(cam rl.Camera2D) { w.camera = cam }

func (w *Window) BeginWorld() { rl.BeginMode2D(w.camera) }
func (w *Window) EndWorld()   { rl.EndMode2D() }

// DrawRect fills rect.
func (w *Window) DrawRect(rect rl.Rectangle, color rl.Color) {
	rl.DrawRectangleRec(rect, color)
}

func (w *Window) DrawRectLines(rect rl.Rectangle, thickness float32, color rl.Color) {
	rl.DrawRectangleLinesEx(rect, thickness, color)
}

// DrawTile draws a cell of a tileset laid out left to right, top to
// bottom. A missing tileset draws magenta.
func (w *Window) DrawTile(tileset string, tileWidth, tileHeight int32, gid uint32, dst rl.Rectangle) {
	if gid == 0 || tileWidth <= 0 || tileHeight <= 0 {
		return
	}
	texture, ok := w.assets.Texture(tileset)
	if !ok {
		rl.DrawRectangleRec(dst, colorMissing)
		return
	}
	cols := texture.Width / tileWidth
	if cols <= 0 {
		cols = 1
	}
	index := int32(gid - 1)
	src := rl.Rectangle{
		X:      float32(index%cols*tileWidth),
		Y:      float32(index/cols*tileHeight),
		Width:  float32(tileWidth),
		Height: float32(tileHeight),
	}
	rl.DrawTexturePro(texture, src, dst, rl.Vector2{}, 0, rl.White)
}

func (w *Window) DrawText(text string, x, y, size int32, color rl.Color) {
	rl.DrawText(text, x, y, size, color)
}

func (w *Window) DrawPanel(bounds rl.Rectangle, title string) {
	gui.Panel(bounds, title)
}

func (w *Window) IsKeyPressed(key int32) bool  { return rl.IsKeyPressed(key) }
func (w *Window) IsKeyReleased(key int32) bool { return rl.IsKeyReleased(key) }
