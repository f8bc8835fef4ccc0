package trace_test

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timarques/eucatalog"
	"github.com/timarques/eucatalog/trace"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	none = color.NRGBA{}
)

// grid builds an image from rows of pixels.
func grid(rows ...[]color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, c := range row {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func parseSVG(t *testing.T, data []byte) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	root := doc.Root()
	require.NotNil(t, root)
	require.Equal(t, "svg", root.Tag)
	return root
}

func TestTracer_Trace(t *testing.T) {
	t.Parallel()

	t.Run("groups runs by color in first-seen order", func(t *testing.T) {
		t.Parallel()

		img := grid(
			[]color.NRGBA{red, red, blue},
			[]color.NRGBA{blue, none, red},
		)

		out, err := trace.NewTracer().Trace(encodePNG(t, img))
		require.NoError(t, err)

		root := parseSVG(t, out)
		assert.Equal(t, "0 0 3 2", root.SelectAttrValue("viewBox", ""))
		assert.Equal(t, "http://www.w3.org/2000/svg", root.SelectAttrValue("xmlns", ""))

		paths := root.SelectElements("path")
		require.Len(t, paths, 2)
		assert.Equal(t, "#ff0000", paths[0].SelectAttrValue("fill", ""))
		assert.Equal(t, "M0 0h2v1h-2zM2 1h1v1h-1z", paths[0].SelectAttrValue("d", ""))
		assert.Equal(t, "#0000ff", paths[1].SelectAttrValue("fill", ""))
		assert.Equal(t, "M2 0h1v1h-1zM0 1h1v1h-1z", paths[1].SelectAttrValue("d", ""))
	})

	t.Run("quantizes near colors together", func(t *testing.T) {
		t.Parallel()

		img := grid([]color.NRGBA{red, {R: 250, G: 3, A: 255}})

		out, err := trace.NewTracer().Trace(encodePNG(t, img))
		require.NoError(t, err)

		paths := parseSVG(t, out).SelectElements("path")
		require.Len(t, paths, 1)
		assert.Equal(t, "M0 0h2v1h-2z", paths[0].SelectAttrValue("d", ""))
	})

	t.Run("scales down large images", func(t *testing.T) {
		t.Parallel()

		img := image.NewNRGBA(image.Rect(0, 0, 256, 64))
		for y := range 64 {
			for x := range 256 {
				img.SetNRGBA(x, y, blue)
			}
		}

		out, err := trace.NewTracer().Trace(encodePNG(t, img))
		require.NoError(t, err)

		root := parseSVG(t, out)
		assert.Equal(t, "0 0 64 16", root.SelectAttrValue("viewBox", ""))
		paths := root.SelectElements("path")
		require.Len(t, paths, 1)
		assert.Equal(t, "#0000ff", paths[0].SelectAttrValue("fill", ""))
	})

	t.Run("fully transparent image has no paths", func(t *testing.T) {
		t.Parallel()

		out, err := trace.NewTracer().Trace(encodePNG(t, grid([]color.NRGBA{none, none})))
		require.NoError(t, err)
		assert.Empty(t, parseSVG(t, out).SelectElements("path"))
	})

	t.Run("decodes jpeg and gif", func(t *testing.T) {
		t.Parallel()

		img := grid([]color.NRGBA{blue, blue}, []color.NRGBA{blue, blue})

		var jpg bytes.Buffer
		require.NoError(t, jpeg.Encode(&jpg, img, &jpeg.Options{Quality: 100}))
		_, err := trace.NewTracer().Trace(jpg.Bytes())
		require.NoError(t, err)

		var g bytes.Buffer
		require.NoError(t, gif.Encode(&g, img, nil))
		_, err = trace.NewTracer().Trace(g.Bytes())
		require.NoError(t, err)
	})

	t.Run("undecodable data is a conversion error", func(t *testing.T) {
		t.Parallel()

		_, err := trace.NewTracer().Trace([]byte("not an image"))
		require.Error(t, err)
		assert.Equal(t, eucatalog.ECONVERSION, eucatalog.ErrorCode(err))
	})

	t.Run("invalid parameters", func(t *testing.T) {
		t.Parallel()

		tr := trace.NewTracer()
		tr.Levels = 1
		_, err := tr.Trace(encodePNG(t, grid([]color.NRGBA{red})))
		assert.Equal(t, eucatalog.EINVALID, eucatalog.ErrorCode(err))

		tr = trace.NewTracer()
		tr.MaxSize = 0
		_, err = tr.Trace(encodePNG(t, grid([]color.NRGBA{red})))
		assert.Equal(t, eucatalog.EINVALID, eucatalog.ErrorCode(err))
	})

	t.Run("output is deterministic", func(t *testing.T) {
		t.Parallel()

		data := encodePNG(t, grid([]color.NRGBA{red, blue, red}))
		a, err := trace.NewTracer().Trace(data)
		require.NoError(t, err)
		b, err := trace.NewTracer().Trace(data)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}
