package leveldata

import (
	"errors"
	"math"
	"testing"
	"testing/fstest"

	"github.com/automoto/skyhook/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lafriks/go-tiled"
)

const testTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="4" height="3" tilewidth="16" tileheight="16" infinite="0">
 <tileset firstgid="1" name="blocks" tilewidth="16" tileheight="16" tilecount="1" columns="1">
  <image source="blocks.png" width="16" height="16"/>
 </tileset>
 <layer id="1" name="ground" width="4" height="3">
  <data encoding="csv">
0,0,0,0,
1,1,0,1,
1,1,1,1
</data>
 </layer>
 <layer id="2" name="deco" width="4" height="3">
  <properties>
   <property name="material" value="stone"/>
  </properties>
  <data encoding="csv">
1,0,0,0,
0,0,0,0,
0,0,0,0
</data>
 </layer>
 <objectgroup id="3" name="user-data">
  <object id="1" name="user-data" x="0" y="0" width="16" height="16">
   <properties>
    <property name="backgroundColour" value="#d8e6f0"/>
   </properties>
  </object>
 </objectgroup>
 <objectgroup id="4" name="goal_sensor">
  <object id="2" name="goal_sensor" x="32" y="0" width="16" height="32"/>
 </objectgroup>
 <objectgroup id="5" name="enemy">
  <object id="3" x="0" y="16" width="16" height="16" rotation="90"/>
 </objectgroup>
 <objectgroup id="6" name="danger">
  <object id="4" name="danger" x="0" y="48">
   <polygon points="0,0 16,0 16,16"/>
  </object>
 </objectgroup>
 <objectgroup id="7" name="spawn">
  <object id="5" name="spawn" x="16" y="48">
   <point/>
  </object>
 </objectgroup>
</map>
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"levels/level-two.tmx": {Data: []byte(testTMX)},
		"levels/level-one.tmx": {Data: []byte(testTMX)},
		"levels/readme.txt":    {Data: []byte("not a level")},
	}
}

func find(root *scene.Node, name string) *scene.Node {
	var found *scene.Node
	root.Walk(func(n *scene.Node) bool {
		if found == nil && n.Name == name {
			found = n
		}
		return found == nil
	})
	return found
}

func TestLoadScene(t *testing.T) {
	root, err := LoadScene(testFS(), "levels/level-one.tmx")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if root.Name != "level-one" {
		t.Errorf("expected the root named after the file, got %q", root.Name)
	}
	if root.Position != (mgl64.Vec3{-1, 0, 0}) {
		t.Errorf("expected the spawn point at the origin, root at %v", root.Position)
	}
	if find(root, SpawnGroup) != nil {
		t.Errorf("expected the spawn group to be consumed")
	}

	ground := find(root, "ground")
	if ground == nil || len(ground.Children) != 3 {
		t.Fatalf("expected 3 ground runs, got %v", ground)
	}

	tests := []struct {
		name     string
		node     string
		position mgl64.Vec3
		width    float64
		material string
	}{
		{"Row run", "ground-0", mgl64.Vec3{1, 1.5, 0}, 2, DefaultMaterial},
		{"Single tile", "ground-1", mgl64.Vec3{3.5, 1.5, 0}, 1, DefaultMaterial},
		{"Full row", "ground-2", mgl64.Vec3{2, 0.5, 0}, 4, DefaultMaterial},
		{"Layer material", "deco-0", mgl64.Vec3{0.5, 2.5, 0}, 1, "stone"},
		{"Rectangle object", "goal_sensor", mgl64.Vec3{2.5, 2, 0}, 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := find(root, tt.node)
			if n == nil || !n.IsMesh() {
				t.Fatalf("expected a mesh named %q", tt.node)
			}
			if !n.Position.ApproxEqual(tt.position) {
				t.Errorf("expected position %v, got %v", tt.position, n.Position)
			}
			if w := n.Mesh.Bounds.Max.X() - n.Mesh.Bounds.Min.X(); w != tt.width {
				t.Errorf("expected width %v, got %v", tt.width, w)
			}
			if n.Mesh.Material != tt.material {
				t.Errorf("expected material %q, got %q", tt.material, n.Mesh.Material)
			}
		})
	}
}

func TestLoadSceneObjects(t *testing.T) {
	root, err := LoadScene(testFS(), "levels/level-one.tmx")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}

	userData := find(root, "user-data")
	if userData == nil {
		t.Fatalf("missing user-data group")
	}
	var colour string
	userData.Walk(func(n *scene.Node) bool {
		if v, ok := n.Get("backgroundColour"); ok {
			colour = v
		}
		return true
	})
	if colour != "#d8e6f0" {
		t.Errorf("expected the background colour property, got %q", colour)
	}

	enemy := find(root, "enemy-0")
	if enemy == nil {
		t.Fatalf("expected an unnamed object to be named after its group")
	}
	x := enemy.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
	if math.Abs(x.Y()+1) > 1e-9 {
		t.Errorf("expected a clockwise quarter turn, x axis maps to %v", x)
	}

	danger := find(root, "danger")
	var polygon *scene.Node
	for _, c := range danger.Children {
		if c.IsMesh() {
			polygon = c
		}
	}
	if polygon == nil {
		t.Fatalf("expected a polygon mesh in the danger group")
	}
	if len(polygon.Mesh.Vertices) != 3 || len(polygon.Mesh.Indices) != 3 {
		t.Errorf("expected one triangle, got %d vertices and %d indices", len(polygon.Mesh.Vertices), len(polygon.Mesh.Indices))
	}
	if polygon.Mesh.Vertices[2] != (mgl64.Vec3{1, -1, 0}) {
		t.Errorf("expected y to point up, got %v", polygon.Mesh.Vertices[2])
	}
}

func TestBuildSceneEmptyMap(t *testing.T) {
	if _, err := BuildScene(&tiled.Map{}); !errors.Is(err, ErrEmptyMap) {
		t.Errorf("expected ErrEmptyMap, got %v", err)
	}
}

func TestLoadAllLevels(t *testing.T) {
	levels, names, err := LoadAllLevels(testFS(), "levels")
	if err != nil {
		t.Fatalf("LoadAllLevels: %v", err)
	}
	want := []string{"level-one", "level-two"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("expected %q at %d, got %q", name, i, names[i])
		}
		if levels[name] == nil {
			t.Errorf("missing scene for %q", name)
		}
	}
}

func TestLoadAllLevelsEmpty(t *testing.T) {
	fsys := fstest.MapFS{"levels/readme.txt": {Data: []byte("nothing")}}
	if _, _, err := LoadAllLevels(fsys, "levels"); !errors.Is(err, ErrNoLevels) {
		t.Errorf("expected ErrNoLevels, got %v", err)
	}
}

func TestGrid(t *testing.T) {
	g := Grid{TileWidth: 16, TileHeight: 8, Rows: 10}
	tests := []struct {
		name   string
		px, py float64
		wx, wy float64
	}{
		{"Top left", 0, 0, 0, 10},
		{"Bottom left", 0, 80, 0, 0},
		{"Inside", 32, 40, 2, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := g.Point(tt.px, tt.py)
			if x != tt.wx || y != tt.wy {
				t.Errorf("expected (%v,%v), got (%v,%v)", tt.wx, tt.wy, x, y)
			}
		})
	}
}
