/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
)

// Image format signatures observed on downloaded payloads.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
)

// GenerateJPEG renders a solid-color JPEG entirely in memory.
func GenerateJPEG(width, height int) []byte {
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, solidImage(width, height), &jpeg.Options{Quality: 90}); err != nil {
		panic(fmt.Errorf("encoding test JPEG: %w", err))
	}

	return buf.Bytes()
}

// GeneratePNG renders a solid-color PNG entirely in memory.
func GeneratePNG(width, height int) []byte {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, solidImage(width, height)); err != nil {
		panic(fmt.Errorf("encoding test PNG: %w", err))
	}

	return buf.Bytes()
}

// GenerateOversizeJPEG produces a valid JPEG of at least minBytes. Noise
// compresses badly, so doubling the dimensions quickly crosses any
// reasonable upload ceiling.
func GenerateOversizeJPEG(minBytes int64) []byte {
	width, height := 1024, 1024

	for {
		buf := &bytes.Buffer{}
		if err := jpeg.Encode(buf, noiseImage(width, height), &jpeg.Options{Quality: 100}); err != nil {
			panic(fmt.Errorf("encoding oversize JPEG: %w", err))
		}

		if int64(buf.Len()) >= minBytes {
			return buf.Bytes()
		}

		width *= 2
		height *= 2
	}
}

// SniffImageFormat identifies a payload by its magic bytes. Returns an empty
// string for anything that is not a JPEG or PNG.
func SniffImageFormat(data []byte) string {
	switch {
	case len(data) >= 3 && bytes.Equal(data[:3], []byte{0xff, 0xd8, 0xff}):
		return FormatJPEG
	case len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}):
		return FormatPNG
	default:
		return ""
	}
}

// DecodeImage verifies a payload actually decodes as an image, not just that
// it starts with the right signature.
func DecodeImage(data []byte) (string, error) {
	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decoding downloaded image: %w", err)
	}

	return format, nil
}

func solidImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	blue := color.RGBA{B: 0xff, A: 0xff}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, blue)
		}
	}

	return img
}

func noiseImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// Deterministic seed keeps the payload size stable between runs.
	rng := rand.New(rand.NewSource(42)) //nolint:gosec // not cryptographic

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 0xff,
			})
		}
	}

	return img
}
