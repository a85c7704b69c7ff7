package render

import (
	"strings"

	"fractal-perlin/internal/texture"
)

// HUDRows is the number of terminal rows reserved for status text.
const HUDRows = 2

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch            rune
	FgR, FgG, FgB uint8
	BgR, BgG, BgB uint8
}

// sentinel never matches a drawn cell, forcing a full first frame.
var sentinel = Cell{Ch: '\x00', FgR: 255, BgB: 255}

var hudBG = texture.Color{R: 18, G: 18, B: 24}

// pixelCell packs two vertically adjacent pixels into one half-block cell.
func pixelCell(top, bottom texture.Color) Cell {
	return Cell{
		Ch:  HalfBlock,
		FgR: top.R, FgG: top.G, FgB: top.B,
		BgR: bottom.R, BgG: bottom.G, BgB: bottom.B,
	}
}

// CanvasSize returns the texture size in pixels that fills a terminal of
// termW x termH, leaving room for the HUD.
func CanvasSize(termW, termH int) (int, int) {
	rows := termH - HUDRows
	if rows < 0 {
		rows = 0
	}
	if termW < 0 {
		termW = 0
	}
	return termW, rows * 2
}

// Engine is a per-session double-buffer diff renderer.
type Engine struct {
	width, height int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(width, height int) *Engine {
	e := &Engine{
		width:      width,
		height:     height,
		firstFrame: true,
	}
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	return e
}

// Resize adjusts the renderer for a new terminal size.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// Render produces the ANSI output for one frame: the texture in half-blocks
// above hud lines. Only cells that changed since the last frame are emitted.
func (e *Engine) Render(tex *texture.Texture, hud []string, termW, termH int) string {
	if termW != e.width || termH != e.height {
		e.Resize(termW, termH)
	}

	canvasRows := e.height - HUDRows
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			if y < canvasRows {
				e.next[y][x] = pixelCell(tex.At(x, 2*y), tex.At(x, 2*y+1))
			} else {
				e.next[y][x] = Cell{Ch: ' ', BgR: hudBG.R, BgG: hudBG.G, BgB: hudBG.B}
			}
		}
	}

	for i, line := range hud {
		e.writeHUDTextLine(canvasRows+i, line, 220, 220, 230)
	}

	// Diff current vs next, emit only changed cells
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}

func (e *Engine) writeHUDTextLine(row int, text string, fgR, fgG, fgB uint8) {
	if row < 0 || row >= e.height {
		return
	}
	runes := []rune(text)
	for x := 0; x < e.width && x < len(runes); x++ {
		e.next[row][x] = Cell{Ch: runes[x], FgR: fgR, FgG: fgG, FgB: fgB, BgR: hudBG.R, BgG: hudBG.G, BgB: hudBG.B}
	}
}

// Frame renders the whole texture as plain lines for a non-interactive
// terminal. Each line ends with a reset and a newline.
func Frame(tex *texture.Texture) string {
	var sb strings.Builder
	rows := (tex.Height + 1) / 2
	sb.Grow(rows * (tex.Width*40 + 8))
	for y := 0; y < rows; y++ {
		for x := 0; x < tex.Width; x++ {
			WriteCellSGR(&sb, pixelCell(tex.At(x, 2*y), tex.At(x, 2*y+1)))
		}
		sb.WriteString(Reset)
		sb.WriteByte('\n')
	}
	return sb.String()
}
