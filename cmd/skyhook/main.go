package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/automoto/skyhook/assets"
	"github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/debugview"
	"github.com/automoto/skyhook/progress"
	"github.com/automoto/skyhook/shared/leveldata"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	tuning := flag.String("tuning", "", "YAML tuning file overriding the built-in one")
	levelsDir := flag.String("levels", "", "directory of .tmx levels to play instead of the embedded ones")
	flag.Parse()

	if err := config.LoadOverrides(assets.Tuning(), "tuning.yaml"); err != nil {
		log.Fatalf("Failed to load tuning: %v", err)
	}
	if *tuning != "" {
		if err := config.LoadOverrides(os.DirFS(filepath.Dir(*tuning)), filepath.Base(*tuning)); err != nil {
			log.Fatalf("Failed to load tuning: %v", err)
		}
	}

	scenes, names := assets.LoadLevels()
	if *levelsDir != "" {
		var err error
		scenes, names, err = leveldata.LoadAllLevels(os.DirFS(*levelsDir), ".")
		if err != nil {
			log.Fatalf("Failed to load levels: %v", err)
		}
	}

	store, err := progress.Open("skyhook", names...)
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		store = progress.New(nil, names...)
	}
	if err := store.Load(); err != nil {
		log.Printf("Warning: %v", err)
	}

	game, err := debugview.New(scenes, names, store)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("skyhook")
	ebiten.SetTPS(config.Ticker.TickRate)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
