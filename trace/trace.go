// Package trace converts raster icons into scalable SVG documents.
//
// The image is down-scaled, every opaque pixel is quantized to a small
// palette, and horizontal runs of equal color become rectangles in one
// <path> per color.
package trace

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"github.com/beevik/etree"
	"github.com/timarques/eucatalog"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Default tracing parameters.
const (
	DefaultMaxSize        = 64
	DefaultLevels         = 8
	DefaultAlphaThreshold = 128
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Ensure Tracer implements eucatalog.RasterTracer at compile time.
var _ eucatalog.RasterTracer = (*Tracer)(nil)

// Tracer converts PNG, JPEG, GIF, WebP and BMP images into SVG.
type Tracer struct {
	// MaxSize bounds the longest side of the traced grid in pixels.
	MaxSize int

	// Levels is the number of quantization steps per color channel.
	Levels int

	// AlphaThreshold is the minimum alpha of a pixel to be painted.
	AlphaThreshold uint8
}

// NewTracer returns a Tracer with default parameters.
func NewTracer() *Tracer {
	return &Tracer{
		MaxSize:        DefaultMaxSize,
		Levels:         DefaultLevels,
		AlphaThreshold: DefaultAlphaThreshold,
	}
}

// Trace decodes data and returns an equivalent SVG document.
func (t *Tracer) Trace(data []byte) ([]byte, error) {
	if t.MaxSize < 1 {
		return nil, eucatalog.Errorf(eucatalog.EINVALID, "max size must be positive, got %d", t.MaxSize)
	}
	if t.Levels < 2 || t.Levels > 256 {
		return nil, eucatalog.Errorf(eucatalog.EINVALID, "levels must be between 2 and 256, got %d", t.Levels)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, eucatalog.Errorf(eucatalog.ECONVERSION, "decode image: %v", err)
	}
	if src.Bounds().Empty() {
		return nil, eucatalog.Errorf(eucatalog.ECONVERSION, "empty %s image", format)
	}

	img := t.fit(src)
	layers := t.layers(img)

	out, err := render(img.Bounds().Dx(), img.Bounds().Dy(), layers)
	if err != nil {
		return nil, eucatalog.Errorf(eucatalog.ECONVERSION, "render traced %s image: %v", format, err)
	}
	return out, nil
}

// fit returns src as NRGBA, scaled down so its longest side is at most
// MaxSize.
func (t *Tracer) fit(src image.Image) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if longest := max(w, h); longest > t.MaxSize {
		w = max(1, w*t.MaxSize/longest)
		h = max(1, h*t.MaxSize/longest)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// layer is the path data of one quantized color.
type layer struct {
	fill string
	d    strings.Builder
}

// layers groups horizontal pixel runs by quantized color. Layers are
// ordered by the first pixel of each color in row-major order.
func (t *Tracer) layers(img *image.NRGBA) []*layer {
	var ordered []*layer
	byFill := make(map[string]*layer)

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		x := b.Min.X
		for x < b.Max.X {
			fill, ok := t.quantize(img.NRGBAAt(x, y))
			if !ok {
				x++
				continue
			}
			start := x
			for x++; x < b.Max.X; x++ {
				next, ok := t.quantize(img.NRGBAAt(x, y))
				if !ok || next != fill {
					break
				}
			}

			l, seen := byFill[fill]
			if !seen {
				l = &layer{fill: fill}
				byFill[fill] = l
				ordered = append(ordered, l)
			}
			fmt.Fprintf(&l.d, "M%d %dh%dv1h-%dz", start, y, x-start, x-start)
		}
	}
	return ordered
}

// quantize maps c to its palette color. Pixels below the alpha threshold
// are not painted.
func (t *Tracer) quantize(c color.NRGBA) (string, bool) {
	if c.A < t.AlphaThreshold {
		return "", false
	}
	return fmt.Sprintf("#%02x%02x%02x", t.step(c.R), t.step(c.G), t.step(c.B)), true
}

func (t *Tracer) step(v uint8) uint8 {
	n := float64(t.Levels - 1)
	return uint8(math.Round(math.Round(float64(v)*n/255) * 255 / n))
}

func render(w, h int, layers []*layer) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", svgNamespace)
	svg.CreateAttr("width", fmt.Sprint(w))
	svg.CreateAttr("height", fmt.Sprint(h))
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", w, h))
	svg.CreateAttr("shape-rendering", "crispEdges")

	for _, l := range layers {
		path := svg.CreateElement("path")
		path.CreateAttr("fill", l.fill)
		path.CreateAttr("d", l.d.String())
	}

	return doc.WriteToBytes()
}
