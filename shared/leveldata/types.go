// Package leveldata turns Tiled TMX maps into scene trees for the level
// builder. It has no dependencies on ebitengine or donburi.
package leveldata

import "errors"

// Layer and group names with a meaning of their own.
const (
	// UserDataGroup objects carry level-wide properties such as the
	// background colour.
	UserDataGroup = "user-data"

	// SpawnGroup holds one point object marking the world origin. The
	// player spawns relative to it.
	SpawnGroup = "spawn"

	// MaterialProperty names the material of a tile layer's meshes.
	MaterialProperty = "material"

	// DefaultMaterial is used by tile layers without a material property.
	DefaultMaterial = "gradient material"
)

var (
	// ErrNoLevels is returned when a directory holds no .tmx files.
	ErrNoLevels = errors.New("no .tmx files found")
	// ErrEmptyMap is returned for maps without size or tile size.
	ErrEmptyMap = errors.New("map has no size")
)

// Grid maps Tiled pixel coordinates to world units. Tiled's y axis points
// down; world y points up with the map's bottom edge at zero.
type Grid struct {
	TileWidth  float64
	TileHeight float64
	Rows       int
}

// Point converts a pixel position to world units.
func (g Grid) Point(x, y float64) (float64, float64) {
	return x / g.TileWidth, float64(g.Rows) - y/g.TileHeight
}

// Size converts a pixel extent to world units.
func (g Grid) Size(w, h float64) (float64, float64) {
	return w / g.TileWidth, h / g.TileHeight
}
