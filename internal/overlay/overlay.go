// overlay.go - cartridge bezel overlay loading: decodes the PNG/GIF artwork
// that shipped as a screen overlay with each Vectrex cartridge and scales
// it to the host window.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package overlay

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Overlay is a decoded bezel image ready for compositing over the vector
// display.
type Overlay struct {
	Image image.Image
	Name  string
}

// Load reads and decodes an overlay image file. PNG and GIF are accepted;
// anything else fails with the decoder's format error.
func Load(path string) (*Overlay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("overlay: %w", err)
	}
	defer f.Close()
	return Decode(f, path)
}

// Decode decodes an overlay image from r; name is carried for display only.
func Decode(r io.Reader, name string) (*Overlay, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("overlay: decoding %s: %w", name, err)
	}
	return &Overlay{Image: img, Name: name}, nil
}

// Scaled returns the overlay resampled to width x height with a bilinear
// kernel, preserving nothing of the source aspect ratio; callers pass the
// host window's letterboxed dimensions.
func (o *Overlay) Scaled(width, height int) image.Image {
	bounds := o.Image.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return o.Image
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), o.Image, bounds, xdraw.Over, nil)
	return dst
}
