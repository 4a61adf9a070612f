// Package imaging validates and transforms uploaded item photos.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 85

// AllowedMIME lists the accepted input MIME types.
var AllowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Validate sniffs the actual MIME type from the bytes (not trusting client
// headers) and rejects formats the detection pipeline cannot consume.
func Validate(data []byte) error {
	detected := http.DetectContentType(data)
	if !AllowedMIME[detected] {
		return fmt.Errorf("unsupported image format: %s (only JPEG and PNG accepted)", detected)
	}
	return nil
}

// Thumbnail decodes the image, downscales it so neither dimension exceeds
// maxDim, and re-encodes as JPEG.
func Thumbnail(data []byte, maxDim int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = downscale(img, maxDim)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	if w > h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
