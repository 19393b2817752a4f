package qrcode

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// Generator renders booking payloads as PNG images under a base directory
// and returns the stored path, which ends up on the booking record.
type Generator struct {
	dir string
}

func NewGenerator(dir string) *Generator {
	return &Generator{dir: dir}
}

func (g *Generator) Generate(payload, bookingID string) (string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("create qr dir: %w", err)
	}
	path := filepath.Join(g.dir, bookingID+".png")
	if err := qrcode.WriteFile(payload, qrcode.Medium, 256, path); err != nil {
		return "", fmt.Errorf("render qr code: %w", err)
	}
	return path, nil
}
