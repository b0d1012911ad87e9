package ocr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// prepare produces the cleaned-up variant fed to Tesseract: grayscale,
// contrast boost, sharpen, upscale small photos, then a global threshold.
func prepare(img image.Image) *image.NRGBA {
	gray := imaging.Grayscale(img)
	gray = imaging.AdjustContrast(gray, 20)
	gray = imaging.Sharpen(gray, 0.6)
	if gray.Bounds().Dy() < 1000 {
		gray = imaging.Resize(gray, 0, 1400, imaging.Lanczos)
	}
	return binarize(gray, 200)
}

// binarize applies a global threshold on a grayscale image; receipt paper is
// near-white so a fixed cutoff works well enough before OCR.
func binarize(img image.Image, threshold uint8) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			gray := uint8((r + g + bb) / 3 >> 8)
			var v uint8 = 255
			if gray <= threshold {
				v = 0
			}
			out.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}
