// Package assets embeds the level maps and the default tuning file.
package assets

import (
	"embed"
	"io/fs"

	"github.com/automoto/skyhook/scene"
	"github.com/automoto/skyhook/shared/leveldata"
)

const LevelsDir = "levels"

var (
	//go:embed all:levels
	levelFS embed.FS

	//go:embed tuning.yaml
	tuningFS embed.FS
)

// Levels returns the embedded level files.
func Levels() fs.FS { return levelFS }

// Tuning returns the filesystem holding tuning.yaml.
func Tuning() fs.FS { return tuningFS }

// LoadLevels parses every embedded level. It panics on malformed maps,
// which are a build defect.
func LoadLevels() (map[string]*scene.Node, []string) {
	return leveldata.MustLoadLevels(levelFS, LevelsDir)
}
