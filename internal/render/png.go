package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/pgnkit/internal/board"
)

// Render at 3x and scale down for smooth edges.
const renderScale = 3

// MinSize is the smallest board edge PNG accepts, in pixels.
const MinSize = 64

var (
	LightSquare = color.RGBA{240, 217, 181, 255}
	DarkSquare  = color.RGBA{181, 136, 99, 255}

	whiteFill = "#fafafa"
	whiteInk  = color.RGBA{34, 34, 34, 255}
	blackFill = "#262626"
	blackInk  = color.RGBA{240, 240, 240, 255}
)

var (
	boldOnce sync.Once
	boldFont *sfnt.Font
	boldErr  error
)

func loadBold() (*sfnt.Font, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = opentype.Parse(gobold.TTF)
	})
	return boldFont, boldErr
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// boardSVG draws the squares and one disc per piece on a 800x800 canvas.
func boardSVG(s board.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="800" height="800" viewBox="0 0 800 800">`)
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			fill := LightSquare
			if (r+f)%2 == 0 {
				fill = DarkSquare
			}
			x, y := f*100, (7-r)*100
			fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="100" height="100" fill="%s"/>`, x, y, hex(fill))

			p := s.PieceAt(board.NewSquare(board.Rank(r), board.File(f)))
			if p == board.NoPiece {
				continue
			}
			disc, edge := whiteFill, hex(whiteInk)
			if p.Color() == board.Black {
				disc, edge = blackFill, hex(blackInk)
			}
			fmt.Fprintf(&sb, `<circle cx="%d" cy="%d" r="40" fill="%s" stroke="%s" stroke-width="4"/>`,
				x+50, y+50, disc, edge)
		}
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}

// Image renders s as a size x size board. size is rounded down to a
// multiple of 8.
func Image(s board.Snapshot, size int) (*image.RGBA, error) {
	if size < MinSize {
		return nil, fmt.Errorf("board size %d is below %d", size, MinSize)
	}
	size -= size % 8
	renderSize := size * renderScale

	icon, err := oksvg.ReadIconStream(strings.NewReader(boardSVG(s)))
	if err != nil {
		return nil, fmt.Errorf("parse board svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

	rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
	scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(renderSize, renderSize, scanner)
	icon.Draw(raster, 1.0)

	if err := drawLetters(rgba, s, renderSize/8); err != nil {
		return nil, err
	}

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(out, out.Bounds(), rgba, rgba.Bounds(), draw.Src, nil)
	return out, nil
}

// drawLetters writes the piece letter in the middle of each disc.
func drawLetters(dst *image.RGBA, s board.Snapshot, square int) error {
	f, err := loadBold()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(square) * 0.45,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return err
	}
	defer face.Close()

	capHeight := face.Metrics().CapHeight
	d := &font.Drawer{Dst: dst, Face: face}
	white, black := image.NewUniform(whiteInk), image.NewUniform(blackInk)

	for sq := board.A1; sq <= board.H8; sq++ {
		p := s.PieceAt(sq)
		if p == board.NoPiece {
			continue
		}
		letter := string(p.Type().Letter())
		d.Src = white
		if p.Color() == board.Black {
			d.Src = black
		}

		cx := sq.File().Index()*square + square/2
		cy := (7-sq.Rank().Index())*square + square/2
		w := d.MeasureString(letter)
		d.Dot = fixed.Point26_6{
			X: fixed.I(cx) - w/2,
			Y: fixed.I(cy) + capHeight/2,
		}
		d.DrawString(letter)
	}
	return nil
}

// PNG encodes s as a size x size PNG image.
func PNG(w io.Writer, s board.Snapshot, size int) error {
	img, err := Image(s, size)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
