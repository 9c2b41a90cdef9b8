package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/murasaqi/anime-studio-positioning-map/src/dataset"
	"github.com/murasaqi/anime-studio-positioning-map/src/positioning"
)

// runScreenshotsMode renders every view to a PNG in dir without opening a
// window, for docs and quick visual regression checks.
func runScreenshotsMode(store *dataset.Store, res *positioning.Result, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	coord := positioning.NewCoordinator(store, res, nil)
	for _, key := range positioning.ViewOrder {
		coord.SwitchView(key)
		cfg := coord.ActiveConfig()
		img, _ := renderMap(res, cfg, true, chartWidth, chartHeight)

		path := filepath.Join(dir, fmt.Sprintf("%s.png", key))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return fmt.Errorf("encode %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Printf("[viewer] wrote %s\n", path)
	}
	return nil
}
