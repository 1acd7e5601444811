// Package testutil provides small image payloads for handler and service
// tests so they can exercise real decodable bytes instead of junk.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
)

// TinyPNG returns a decodable 1x1 PNG payload.
func TinyPNG() []byte {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 120, G: 80, B: 200, A: 255})
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// TinyJPEG returns a decodable 1x1 JPEG payload.
func TinyJPEG() []byte {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 40, G: 160, B: 90, A: 255})
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// TinyWebP returns a minimal 1x1 lossless WebP payload, enough for format
// sniffing to identify it as webp.
func TinyWebP() []byte {
	return []byte{
		'R', 'I', 'F', 'F', 18, 0, 0, 0, 'W', 'E', 'B', 'P',
		'V', 'P', '8', 'L', 5, 0, 0, 0,
		0x2f, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
}

// PadTo appends zero bytes until the payload reaches size. Image headers
// sit at the front, so padded payloads still sniff as their real format.
func PadTo(payload []byte, size int) []byte {
	if len(payload) >= size {
		return payload
	}
	padded := make([]byte, size)
	copy(padded, payload)
	return padded
}
