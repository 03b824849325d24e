package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"uicanvas/editor"
)

// ErrEmpty is returned when there is nothing to draw.
var ErrEmpty = errors.New("nothing to export")

// ImageOptions controls raster output.
type ImageOptions struct {
	Scale    float64 // pixels per canvas unit
	Padding  float64 // canvas units around the content
	FontSize float64
}

// DefaultImageOptions renders one pixel per unit.
var DefaultImageOptions = ImageOptions{Scale: 1, Padding: 20, FontSize: 12}

// Bounds returns the box enclosing every node in canvas coordinates.
func Bounds(doc editor.Document) (editor.Rect, bool) {
	if len(doc) == 0 {
		return editor.Rect{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range doc {
		r := doc.AbsoluteRect(n.ID)
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.X+r.Width)
		maxY = math.Max(maxY, r.Y+r.Height)
	}
	return editor.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// Image rasterizes doc in paint order.
func Image(doc editor.Document, opts ImageOptions) (image.Image, error) {
	bounds, ok := Bounds(doc)
	if !ok {
		return nil, ErrEmpty
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultImageOptions.FontSize
	}
	minX, minY := bounds.X-opts.Padding, bounds.Y-opts.Padding
	imageWidth := int(math.Ceil((bounds.Width + 2*opts.Padding) * opts.Scale))
	imageHeight := int(math.Ceil((bounds.Height + 2*opts.Padding) * opts.Scale))

	dc := gg.NewContext(max(imageWidth, 1), max(imageHeight, 1))
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    opts.FontSize * opts.Scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	for _, n := range doc.PaintOrder() {
		r := doc.AbsoluteRect(n.ID)
		x := (r.X - minX) * opts.Scale
		y := (r.Y - minY) * opts.Scale
		drawNodePNG(dc, n, x, y, r.Width*opts.Scale, r.Height*opts.Scale)
	}
	return dc.Image(), nil
}

func drawNodePNG(dc *gg.Context, n editor.Node, x, y, width, height float64) {
	if bg, ok := hexColor(n.Style["backgroundColor"]); ok && n.Kind != editor.KindGroup {
		dc.SetHexColor(bg)
		dc.DrawRectangle(x, y, width, height)
		dc.Fill()
	}

	dc.SetLineWidth(1.0)
	dc.SetColor(color.Black)
	if n.Kind == editor.KindGroup {
		dc.SetDash(4, 2)
	}
	dc.DrawRectangle(x, y, width, height)
	dc.Stroke()
	dc.SetDash()

	if n.Kind == editor.KindGroup {
		return
	}
	if fg, ok := hexColor(n.Style["color"]); ok {
		dc.SetHexColor(fg)
	}
	dc.DrawStringAnchored(Label(n), x+4, y+height/2, 0, 0.35)
}

func hexColor(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, "#") {
		return "", false
	}
	switch len(s) {
	case 4, 7, 9:
		return s, true
	}
	return "", false
}

// ExportPNG writes doc as a PNG file.
func ExportPNG(doc editor.Document, filename string, opts ImageOptions) error {
	img, err := Image(doc, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(filename, img)
}

// ExportThumbnail writes a version of doc scaled to fit within width x
// height. The format follows the file extension.
func ExportThumbnail(doc editor.Document, filename string, width, height int) error {
	img, err := Image(doc, DefaultImageOptions)
	if err != nil {
		return err
	}
	thumb := imaging.Fit(img, width, height, imaging.Lanczos)
	return imaging.Save(thumb, filename)
}
