package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
)

const iconSize = 64

// renderIcon draws text centered in white on a transparent square, the
// monochrome style menu bars expect.
func renderIcon(text string, size int) ([]byte, error) {
	f, err := freetype.ParseFont(theme.DefaultTextBoldFont().Content())
	if err != nil {
		return nil, err
	}

	fontSize := float64(size) * 0.8
	dpi := float64(72)

	opts := truetype.Options{Size: fontSize, DPI: dpi}
	face := truetype.NewFace(f, &opts)
	defer face.Close()

	textWidth := 0
	for _, r := range text {
		if adv, ok := face.GlyphAdvance(r); ok {
			textWidth += adv.Round()
		}
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	textHeight := ascent + metrics.Descent.Ceil()

	img := image.NewRGBA(image.Rect(0, 0, size, size))

	c := freetype.NewContext()
	c.SetFont(f)
	c.SetFontSize(fontSize)
	c.SetDPI(dpi)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(color.White))

	pt := freetype.Pt((size-textWidth)/2, (size-textHeight)/2+ascent)
	if _, err := c.DrawString(text, pt); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// icon returns the tray icon, falling back to a theme icon
func icon() fyne.Resource {
	data, err := renderIcon("M", iconSize)
	if err != nil {
		return theme.MediaMusicIcon()
	}
	return fyne.NewStaticResource("icon.png", data)
}
