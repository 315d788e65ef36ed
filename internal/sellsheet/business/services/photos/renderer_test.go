package photos

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	_ "image/jpeg"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sellsheet_api/config/values"
)

func writePhoto(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	require.NoError(t, imaging.Save(img, path))
	return path
}

func decode(t *testing.T, payload string) image.Config {
	t.Helper()
	require.True(t, strings.HasPrefix(payload, "data:"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(payload, "data:"))
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	return cfg
}

func TestRenderer_Encode(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(values.PhotoValues{})

	cfg := decode(t, mustString(t)(r.Encode(context.Background(), writePhoto(t, dir, "a.jpg", 640, 480))))
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
}

func TestRenderer_EncodeFallsBackWhenTooLarge(t *testing.T) {
	dir := t.TempDir()
	r := &Renderer{maxBytes: 1, fallbackSize: 800}

	cfg := decode(t, mustString(t)(r.Encode(context.Background(), writePhoto(t, dir, "big.jpg", 2000, 1000))))
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 400, cfg.Height)
}

func TestRenderer_Collage(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(values.PhotoValues{})
	var paths []string
	for _, n := range []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg"} {
		paths = append(paths, writePhoto(t, dir, n, 400, 300))
	}

	cfg := decode(t, mustString(t)(r.Collage(context.Background(), paths[:2])))
	assert.Equal(t, 2048, cfg.Width)
	assert.Equal(t, 768, cfg.Height)

	cfg = decode(t, mustString(t)(r.Collage(context.Background(), paths[:3])))
	assert.Equal(t, 2048, cfg.Width)
	assert.Equal(t, 1536, cfg.Height)

	cfg = decode(t, mustString(t)(r.Collage(context.Background(), paths[:1])))
	assert.Equal(t, 400, cfg.Width)

	_, err := r.Collage(context.Background(), nil)
	assert.Error(t, err)
}

func TestRenderer_MissingFile(t *testing.T) {
	_, err := NewRenderer(values.PhotoValues{}).Encode(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"))
	assert.Error(t, err)
}

func mustString(t *testing.T) func(string, error) string {
	return func(s string, err error) string {
		t.Helper()
		require.NoError(t, err)
		return s
	}
}
