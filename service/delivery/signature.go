package delivery

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	signatureWidth  = 600
	signatureHeight = 200
	signatureDir    = "signatures"
)

var whiteBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// SignatureStore writes signature images under the media directory.
type SignatureStore struct {
	dir     string
	baseURL string
}

func NewSignatureStore(mediaDir, mediaURL string) *SignatureStore {
	if !strings.HasSuffix(mediaURL, "/") {
		mediaURL += "/"
	}
	return &SignatureStore{dir: mediaDir, baseURL: mediaURL}
}

// Save decodes an image, fits it into 600x200 on a white background and
// stores it as lossless webp. It returns the public URL.
func (s *SignatureStore) Save(r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode signature: %w", err)
	}
	img = imaging.Fit(img, signatureWidth, signatureHeight, imaging.Lanczos)
	canvas := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), whiteBackground)
	canvas = imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)

	dir := filepath.Join(s.dir, signatureDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("signature dir: %w", err)
	}
	name := uuid.NewString() + ".webp"
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create signature file: %w", err)
	}
	defer f.Close()
	if err := webp.Encode(f, canvas, &webp.Options{Lossless: true}); err != nil {
		return "", fmt.Errorf("encode signature: %w", err)
	}
	return s.baseURL + path.Join(signatureDir, name), nil
}

// DecodeDataURL extracts the payload of a base64 "data:image/...;base64,"
// URL as produced by a browser canvas.
func DecodeDataURL(s string) (io.Reader, bool) {
	if !strings.HasPrefix(s, "data:image/") {
		return nil, false
	}
	i := strings.Index(s, ";base64,")
	if i < 0 {
		return nil, false
	}
	b, err := base64.StdEncoding.DecodeString(s[i+len(";base64,"):])
	if err != nil {
		return nil, false
	}
	return bytes.NewReader(b), true
}
