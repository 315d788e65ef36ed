package photos

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"sellsheet_api/config/values"
)

const (
	collageWidth  = 2048
	collageHeight = 1536
	jpegQuality   = 90
)

// Renderer encodes auction photos as BaseLinker "data:" payloads.
type Renderer struct {
	maxBytes     int
	fallbackSize int
}

func NewRenderer(v values.PhotoValues) *Renderer {
	maxMB := v.MaxSizeMB
	if maxMB == 0 {
		maxMB = 2
	}
	fallback := v.FallbackSize
	if fallback == 0 {
		fallback = 800
	}
	return &Renderer{maxBytes: maxMB * 1024 * 1024, fallbackSize: fallback}
}

func (r *Renderer) Encode(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("open photo %s: %w", path, err)
	}
	return r.encode(img)
}

// Collage merges 2 photos side by side or up to 4 into a 2x2 grid.
// A single photo is encoded unchanged.
func (r *Renderer) Collage(ctx context.Context, paths []string) (string, error) {
	switch len(paths) {
	case 0:
		return "", fmt.Errorf("empty collage")
	case 1:
		return r.Encode(ctx, paths[0])
	}

	imgs := make([]image.Image, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		img, err := imaging.Open(p, imaging.AutoOrientation(true))
		if err != nil {
			return "", fmt.Errorf("open photo %s: %w", p, err)
		}
		imgs = append(imgs, img)
	}

	if len(imgs) == 2 {
		return r.encode(strip(imgs))
	}
	return r.encode(grid(imgs))
}

func strip(imgs []image.Image) image.Image {
	h := collageHeight / 2
	w := collageWidth / 2
	canvas := imaging.New(collageWidth, h, color.White)
	for i, img := range imgs[:2] {
		canvas = imaging.Paste(canvas, imaging.Resize(img, w, h, imaging.Lanczos), image.Pt(i*w, 0))
	}
	return canvas
}

// grid fills columns first: top-left, bottom-left, top-right, bottom-right.
func grid(imgs []image.Image) image.Image {
	w, h := collageWidth/2, collageHeight/2
	canvas := imaging.New(collageWidth, collageHeight, color.White)
	for i, img := range imgs {
		if i >= 4 {
			break
		}
		pos := image.Pt((i/2)*w, (i%2)*h)
		canvas = imaging.Paste(canvas, imaging.Resize(img, w, h, imaging.Lanczos), pos)
	}
	return canvas
}

func (r *Renderer) encode(img image.Image) (string, error) {
	data, err := jpegBytes(img)
	if err != nil {
		return "", err
	}
	if len(data) > r.maxBytes {
		data, err = jpegBytes(imaging.Fit(img, r.fallbackSize, r.fallbackSize, imaging.Lanczos))
		if err != nil {
			return "", err
		}
	}
	return "data:" + base64.StdEncoding.EncodeToString(data), nil
}

func jpegBytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
