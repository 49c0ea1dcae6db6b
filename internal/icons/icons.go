// Package icons renders the tray icons.
package icons

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
)

// Kind selects which tray icon to show.
type Kind int

// Icon kinds, from no device to full volume.
const (
	NoDevice Kind = iota
	Muted
	ZeroBars
	OneBar
	TwoBars
	ThreeBars
)

// Size is the edge length of rendered icons in pixels.
const Size = 32

var kindNames = map[Kind]string{
	NoDevice:  "no-device",
	Muted:     "muted",
	ZeroBars:  "zero-bars",
	OneBar:    "one-bar",
	TwoBars:   "two-bars",
	ThreeBars: "three-bars",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// KindFor picks the icon for a default device state. volume is a percentage.
func KindFor(present, muted bool, volume int) Kind {
	switch {
	case !present:
		return NoDevice
	case muted:
		return Muted
	case volume <= 0:
		return ZeroBars
	case volume < 33:
		return OneBar
	case volume < 66:
		return TwoBars
	default:
		return ThreeBars
	}
}

var (
	cacheMu sync.Mutex
	cache   = map[Kind][]byte{}
)

// PNG returns the encoded icon for kind. Results are cached; callers must
// not modify the returned slice.
func PNG(kind Kind) []byte {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if data, ok := cache[kind]; ok {
		return data
	}

	var buf bytes.Buffer
	// Encoding an in-memory RGBA image cannot fail.
	_ = png.Encode(&buf, Render(kind))
	cache[kind] = buf.Bytes()
	return cache[kind]
}

var (
	foreground = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dimmed     = color.NRGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
)

// Render draws the icon for kind.
func Render(kind Kind) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, Size, Size))

	fg := foreground
	if kind == NoDevice {
		fg = dimmed
	}
	drawSpeaker(img, fg)

	switch kind {
	case Muted:
		drawCross(img, fg)
	case NoDevice:
		drawLine(img, 3, 28, 28, 3, fg)
	default:
		bars := int(kind - ZeroBars)
		for i := 0; i < bars; i++ {
			drawBar(img, i, fg)
		}
	}
	return img
}

func drawSpeaker(img *image.NRGBA, c color.NRGBA) {
	// Magnet.
	fillRect(img, 3, 12, 9, 20, c)
	// Cone widens from the magnet to the front of the speaker.
	for x := 9; x < 16; x++ {
		spread := x - 9
		fillRect(img, x, 12-spread, x+1, 20+spread, c)
	}
}

func drawBar(img *image.NRGBA, i int, c color.NRGBA) {
	x := 18 + i*4
	half := 4 + i*3
	fillRect(img, x, 16-half, x+2, 16+half, c)
}

func drawCross(img *image.NRGBA, c color.NRGBA) {
	drawLine(img, 19, 11, 29, 21, c)
	drawLine(img, 19, 21, 29, 11, c)
}

func fillRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// drawLine draws a two pixel wide line between (x0,y0) and (x1,y1).
func drawLine(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	steps := max(dx, dy)
	for i := 0; i <= steps; i++ {
		x := x0 + (x1-x0)*i/steps
		y := y0 + (y1-y0)*i/steps
		img.SetNRGBA(x, y, c)
		img.SetNRGBA(x+1, y, c)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
