package leveldata

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/automoto/skyhook/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lafriks/go-tiled"
)

// LoadScene parses a TMX file into a scene tree. It takes an fs.FS so callers
// can pass embed.FS or os.DirFS.
func LoadScene(fsys fs.FS, tmxPath string) (*scene.Node, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	root, err := BuildScene(levelMap)
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	root.Name = strings.TrimSuffix(path.Base(tmxPath), ".tmx")
	return root, nil
}

// BuildScene converts a parsed map. Each tile layer becomes a group of
// meshes, one per horizontal run of tiles, named after the layer. Each object
// group becomes a group of meshes named after the object, or after the group
// when the object is unnamed. Object properties become user data. The first
// object of the spawn group, if any, becomes the world origin.
func BuildScene(levelMap *tiled.Map) (*scene.Node, error) {
	if levelMap.Width <= 0 || levelMap.Height <= 0 || levelMap.TileWidth <= 0 || levelMap.TileHeight <= 0 {
		return nil, ErrEmptyMap
	}
	grid := Grid{
		TileWidth:  float64(levelMap.TileWidth),
		TileHeight: float64(levelMap.TileHeight),
		Rows:       levelMap.Height,
	}

	root := scene.NewNode("level")

	for _, layer := range levelMap.Layers {
		group := scene.NewNode(layer.Name)
		material := layer.Properties.GetString(MaterialProperty)
		if material == "" {
			material = DefaultMaterial
		}
		for i, run := range tileRuns(layer, levelMap.Width, levelMap.Height) {
			group.Add(runNode(fmt.Sprintf("%s-%d", layer.Name, i), run, grid, material))
		}
		root.Add(group)
	}

	for _, og := range levelMap.ObjectGroups {
		if og.Name == SpawnGroup {
			if len(og.Objects) > 0 {
				x, y := grid.Point(og.Objects[0].X, og.Objects[0].Y)
				root.Position = mgl64.Vec3{-x, -y, 0}
			}
			continue
		}
		group := scene.NewNode(og.Name)
		for i, o := range og.Objects {
			name := o.Name
			if name == "" {
				name = fmt.Sprintf("%s-%d", og.Name, i)
			}
			n := objectNode(name, o, grid)
			for _, p := range o.Properties {
				n.Set(p.Name, p.Value)
			}
			group.Add(n)
		}
		root.Add(group)
	}

	return root, nil
}

type run struct {
	x, y, length int
}

// tileRuns merges each row's adjacent tiles into runs.
func tileRuns(layer *tiled.Layer, width, height int) []run {
	var runs []run
	if len(layer.Tiles) < width*height {
		return nil
	}
	for y := 0; y < height; y++ {
		start := -1
		for x := 0; x <= width; x++ {
			filled := x < width && !layer.Tiles[y*width+x].IsNil()
			switch {
			case filled && start < 0:
				start = x
			case !filled && start >= 0:
				runs = append(runs, run{x: start, y: y, length: x - start})
				start = -1
			}
		}
	}
	return runs
}

func runNode(name string, r run, grid Grid, material string) *scene.Node {
	w, h := float64(r.length), 1.0
	cx, cy := grid.Point((float64(r.x)+w/2)*grid.TileWidth, (float64(r.y)+0.5)*grid.TileHeight)

	vertices, indices := scene.Rect(w, h, true)
	n := scene.NewMesh(name, vertices, indices)
	n.Mesh.Material = material
	n.Position = mgl64.Vec3{cx, cy, 0}
	return n
}

// objectNode builds a flat mesh for a rectangle or polygon object. Point
// objects get a unit square so they still carry bounds.
func objectNode(name string, o *tiled.Object, grid Grid) *scene.Node {
	if len(o.Polygons) > 0 && o.Polygons[0].Points != nil && len(*o.Polygons[0].Points) >= 3 {
		ox, oy := grid.Point(o.X, o.Y)
		var outline []mgl64.Vec3
		for _, p := range *o.Polygons[0].Points {
			w, h := grid.Size(p.X, p.Y)
			outline = append(outline, mgl64.Vec3{w, -h, 0})
		}
		n := scene.NewMesh(name, outline, scene.Fan(outline))
		n.Position = mgl64.Vec3{ox, oy, 0}
		n.Rotation = objectRotation(o)
		return n
	}

	w, h := grid.Size(o.Width, o.Height)
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	cx, cy := grid.Point(o.X, o.Y)
	cx += w / 2
	cy -= h / 2
	vertices, indices := scene.Rect(w, h, true)
	n := scene.NewMesh(name, vertices, indices)
	n.Position = mgl64.Vec3{cx, cy, 0}
	n.Rotation = objectRotation(o)
	return n
}

// objectRotation turns Tiled's clockwise degrees into a rotation about z.
func objectRotation(o *tiled.Object) mgl64.Quat {
	if o.Rotation == 0 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(-mgl64.DegToRad(o.Rotation), mgl64.Vec3{0, 0, 1})
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads each
// into a scene, and returns them keyed by stem name plus a sorted list of
// names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*scene.Node, []string, error) {
	pattern := path.Join(levelsDir, "*.tmx")
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", levelsDir, ErrNoLevels)
	}

	levels := make(map[string]*scene.Node, len(matches))
	names := make([]string, 0, len(matches))

	for _, match := range matches {
		root, err := LoadScene(fsys, match)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", match, err)
		}
		stem := strings.TrimSuffix(path.Base(match), ".tmx")
		levels[stem] = root
		names = append(names, stem)
	}

	sort.Strings(names)
	return levels, names, nil
}

// MustLoadLevels is LoadAllLevels for host startup; it panics on error.
func MustLoadLevels(fsys fs.FS, levelsDir string) (map[string]*scene.Node, []string) {
	levels, names, err := LoadAllLevels(fsys, levelsDir)
	if err != nil {
		panic(err)
	}
	return levels, names
}
