package display

import (
	"image"
	"image/png"
	"io"
	"os"

	"github.com/thelolagemann/lineboy/internal/ppu"
	"golang.org/x/image/draw"
)

// Image copies frame into a new image.
func Image(frame []byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	copy(img.Pix, frame)
	return img
}

// Scale scales img by factor, keeping the pixels sharp.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	bounds := img.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)
	return scaled
}

// EncodePNG writes frame to w as a PNG, scaled by factor.
func EncodePNG(w io.Writer, frame []byte, factor int) error {
	return png.Encode(w, Scale(Image(frame), factor))
}

// SavePNG writes frame to the file at path as a PNG, scaled by factor.
func SavePNG(path string, frame []byte, factor int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePNG(f, frame, factor); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
