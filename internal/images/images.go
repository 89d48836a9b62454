// Package images decodes entry images and produces downscaled variants for
// responsive srcset markup.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

// Variant widths offered to browsers, descending.
var variantWidths = []int{1536, 768}

const jpegQuality = 90

// ErrUnsupportedFormat indicates an image format without an encoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Variant is one downscaled rendition worth keeping.
type Variant struct {
	Width int
	Name  string
	Data  []byte
}

// Image is a decoded entry image together with the variants that turned out
// smaller than the original encoding.
type Image struct {
	Width    int
	Variants []Variant
}

// Process decodes data and produces the downscaled variants. A variant is
// produced only when the source is wider than the target and the re-encoded
// result is smaller than the original file; upscaling or growing an image
// serves nobody. GIFs pass through untouched since resizing would drop
// animation frames.
func Process(name string, data []byte) (Image, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("decoding %s: %w", name, err)
	}

	img := Image{Width: src.Bounds().Dx()}
	if format == "gif" {
		return img, nil
	}

	for _, width := range variantWidths {
		if img.Width <= width {
			continue
		}
		encoded, err := encode(resize(src, width), format)
		if err != nil {
			return Image{}, fmt.Errorf("encoding %s at width %d: %w", name, width, err)
		}
		if len(encoded) >= len(data) {
			continue
		}
		img.Variants = append(img.Variants, Variant{
			Width: width,
			Name:  variantName(name, width),
			Data:  encoded,
		})
	}
	return img, nil
}

// variantName derives the on-disk name of a downscaled rendition,
// e.g. cat.png at 768 becomes cat-768.png.
func variantName(name string, width int) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + "-" + strconv.Itoa(width) + ext
}

func resize(src image.Image, width int) image.Image {
	bounds := src.Bounds()
	height := bounds.Dy() * width / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

func encode(img image.Image, format string) ([]byte, error) {
	var b bytes.Buffer
	switch format {
	case "jpeg":
		if err := jpeg.Encode(&b, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, err
		}
	case "png":
		if err := png.Encode(&b, img); err != nil {
			return nil, err
		}
	case "gif":
		if err := gif.Encode(&b, img, nil); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return b.Bytes(), nil
}
