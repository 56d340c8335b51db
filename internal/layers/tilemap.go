package layers

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"engine2d/internal/doc"
	"engine2d/internal/engine"
	"engine2d/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

var TilemapLayerType = engine.Tag("TilemapLayer")

// TilemapLayer draws a grid of tiles from one tileset. GIDs are row-major
// and 1-based; 0 is an empty cell.
type TilemapLayer struct {
	engine.BaseLayer
	Tileset    string
	TileWidth  int32
	TileHeight int32
	Origin     rl.Vector2 // world position of the top-left cell

	cols, rows int
	gids       []uint32
}

// NewTilemapLayer returns an empty map with 16 by 16 tiles.
func NewTilemapLayer(id engine.ID) *TilemapLayer {
	return &TilemapLayer{
		BaseLayer:  engine.NewBaseLayer(id, TilemapLayerType),
		TileWidth:  16,
		TileHeight: 16,
	}
}

// SetGrid replaces the tile data. len(gids) must be cols*rows.
func (t *TilemapLayer) SetGrid(cols, rows int, gids []uint32) error {
	if cols < 0 || rows < 0 || len(gids) != cols*rows {
		return fmt.Errorf("tilemap %q: %d gids for a %dx%d grid", t.ID(), len(gids), cols, rows)
	}
	t.cols, t.rows = cols, rows
	t.gids = append([]uint32(nil), gids...)
	return nil
}

func (t *TilemapLayer) Dimensions() (cols, rows int) { return t.cols, t.rows }

// At returns the gid at (col, row), 0 outside the grid.
func (t *TilemapLayer) At(col, row int) uint32 {
	if col < 0 || row < 0 || col >= t.cols || row >= t.rows {
		return 0
	}
	return t.gids[row*t.cols+col]
}

// Set stores gid at (col, row). It reports false outside the grid.
func (t *TilemapLayer) Set(col, row int, gid uint32) bool {
	if col < 0 || row < 0 || col >= t.cols || row >= t.rows {
		return false
	}
	t.gids[row*t.cols+col] = gid
	return true
}

// CellRect is the world rectangle of cell (col, row).
func (t *TilemapLayer) CellRect(col, row int) rl.Rectangle {
	tw, th := float32(t.TileWidth), float32(t.TileHeight)
	return rl.Rectangle{
		X:      t.Origin.X + float32(col)*tw,
		Y:      t.Origin.Y + float32(row)*th,
		Width:  tw,
		Height: th,
	}
}

// Solids returns one rectangle per horizontal run of non-empty cells, so
// a row of floor tiles becomes a single platform.
func (t *TilemapLayer) Solids() []rl.Rectangle {
	var out []rl.Rectangle
	for row := 0; row < t.rows; row++ {
		start := -1
		for col := 0; col <= t.cols; col++ {
			filled := col < t.cols && t.At(col, row) != 0
			switch {
			case filled && start < 0:
				start = col
			case !filled && start >= 0:
				r := t.CellRect(start, row)
				r.Width = float32(col-start) * float32(t.TileWidth)
				out = append(out, r)
				start = -1
			}
		}
	}
	return out
}

// Render draws the cells that intersect the camera view.
func (t *TilemapLayer) Render(s render.Surface) {
	if t.cols == 0 || t.rows == 0 || t.TileWidth <= 0 || t.TileHeight <= 0 {
		return
	}
	view := render.VisibleWorld(s)
	tw, th := float32(t.TileWidth), float32(t.TileHeight)

	firstCol := max(0, int((view.X-t.Origin.X)/tw))
	firstRow := max(0, int((view.Y-t.Origin.Y)/th))
	lastCol := min(t.cols-1, int((view.X+view.Width-t.Origin.X)/tw))
	lastRow := min(t.rows-1, int((view.Y+view.Height-t.Origin.Y)/th))

	s.BeginWorld()
	for row := firstRow; row <= lastRow; row++ {
		for col := firstCol; col <= lastCol; col++ {
			if gid := t.At(col, row); gid != 0 {
				s.DrawTile(t.Tileset, t.TileWidth, t.TileHeight, gid, t.CellRect(col, row))
			}
		}
	}
	s.EndWorld()
}

// Serialize writes the grid as CSV text, one line per row.
func (t *TilemapLayer) Serialize(el *doc.Element) bool {
	t.BaseLayer.Serialize(el)
	el.Set("tileset", t.Tileset)
	el.SetInt("tileWidth", int(t.TileWidth))
	el.SetInt("tileHeight", int(t.TileHeight))
	el.SetFloat("x", t.Origin.X)
	el.SetFloat("y", t.Origin.Y)
	el.SetInt("cols", t.cols)
	el.SetInt("rows", t.rows)

	var b strings.Builder
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			if col > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatUint(uint64(t.At(col, row)), 10))
		}
		b.WriteByte('\n')
	}
	el.Text = b.String()
	return true
}

func (t *TilemapLayer) Deserialize(el *doc.Element) bool {
	log := t.Logger()
	t.Tileset = el.String("tileset", "")
	if w, ok := el.Int("tileWidth"); ok {
		t.TileWidth = int32(w)
	}
	if h, ok := el.Int("tileHeight"); ok {
		t.TileHeight = int32(h)
	}
	t.Origin.X, _ = el.Float("x")
	t.Origin.Y, _ = el.Float("y")

	cols, okC := el.Int("cols")
	rows, okR := el.Int("rows")
	if !okC || !okR {
		log.Warn("tilemap without dimensions", zap.String("layer", t.ID().String()))
		return false
	}
	gids, err := parseGrid(el.Text, cols, rows)
	if err == nil {
		err = t.SetGrid(cols, rows, gids)
	}
	if err != nil {
		log.Warn("bad tilemap grid", zap.String("layer", t.ID().String()), zap.Error(err))
		return false
	}
	return true
}

func parseGrid(text string, cols, rows int) ([]uint32, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	r.FieldsPerRecord = cols
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse grid: %w", err)
	}
	if len(records) != rows {
		return nil, fmt.Errorf("parse grid: %d rows, want %d", len(records), rows)
	}

	gids := make([]uint32, 0, cols*rows)
	for _, record := range records {
		for _, field := range record {
			gid, err := strconv.ParseUint(strings.TrimSpace(field), 10, 32)
			if err != nil {
				return nil, fmt.Errorf("parse grid: %w", err)
			}
			gids = append(gids, uint32(gid))
		}
	}
	return gids, nil
}
