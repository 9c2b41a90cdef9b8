package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/murasaqi/anime-studio-positioning-map/src/dataset"
	"github.com/murasaqi/anime-studio-positioning-map/src/export"
	"github.com/murasaqi/anime-studio-positioning-map/src/positioning"
)

func main() {
	var dataPath string
	var outPath string
	var logLevel string
	flag.StringVar(&dataPath, "data", "studios.yaml", "Path to the studio dataset (YAML)")
	flag.StringVar(&outPath, "out", "studio_map.html", "Output HTML path")
	flag.StringVar(&logLevel, "loglevel", "info", "Log level: debug, info, warn, error")
	flag.Parse()
	dataset.SetLogLevel(logLevel)

	store, err := dataset.Load(dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	res := positioning.Build(store)
	if err := export.WriteFile(outPath, store, res); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Studios: %d\n", store.Len())
	fmt.Printf("Traces: %d\n", len(res.Series))
	fmt.Printf("Views: %d\n", len(res.Views))
}
