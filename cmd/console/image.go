package main

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color/palette"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/BourgeoisBear/rasterm"
	"github.com/mattn/go-isatty"
)

const base64Marker = ";base64,"

// sceneArt converts a data-URI scene image into a terminal graphics
// escape sequence (kitty, iTerm2 or sixel, whichever the terminal
// supports). It returns "" when the image cannot be displayed, in
// which case the UI simply shows text only.
func sceneArt(dataURI string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return ""
	}

	idx := strings.Index(dataURI, base64Marker)
	if idx < 0 {
		return ""
	}
	raw, err := base64.StdEncoding.DecodeString(dataURI[idx+len(base64Marker):])
	if err != nil {
		return ""
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return ""
	}

	var buf bytes.Buffer
	switch {
	case rasterm.IsKittyCapable():
		err = rasterm.KittyWriteImage(&buf, img, rasterm.KittyImgOpts{})
	case rasterm.IsItermCapable():
		err = rasterm.ItermWriteImage(&buf, img)
	default:
		ok, capErr := rasterm.IsSixelCapable()
		if capErr != nil || !ok {
			return ""
		}
		// Sixel needs a paletted image; dither down to Plan9.
		bounds := img.Bounds()
		paletted := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, bounds, img, bounds.Min)
		err = rasterm.SixelWriteImage(&buf, paletted)
	}
	if err != nil {
		return ""
	}
	return buf.String()
}
