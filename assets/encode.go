package assets

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pthm-cable/mitosis/components"
)

// WritePNG encodes img to path, creating parent directories.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// WritePlaceholders writes one generated texture per phase into dir, named
// the way the renderer looks them up. It returns the written paths.
func WritePlaceholders(dir string, size int) ([]string, error) {
	paths := make([]string, 0, components.PhaseCount)
	for _, p := range components.AllPhases {
		path := filepath.Join(dir, p.TextureFile())
		if err := WritePNG(path, Placeholder(p, size)); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
