package tilemap

import (
	"testing"

	"github.com/lafriks/go-tiled"

	"github.com/automoto/skelly/shared/geom"
	"github.com/automoto/skelly/shared/switchstate"
)

// The test tileset uses 8x8 pixel tiles, so one tile is 256 subpixels
// on a side. Local ids below map to gids with firstgid 1.
const (
	gidPlain      GlobalID = 1
	gidNonSolid   GlobalID = 2
	gidOneWayN    GlobalID = 3
	gidOneWayE    GlobalID = 4
	gidSlope      GlobalID = 5
	gidSwitchable GlobalID = 6
	gidInset      GlobalID = 7
	gidCondOnly   GlobalID = 8
	gidSpike      GlobalID = 9
)

func prop(name, typ, value string) *tiled.Property {
	return &tiled.Property{Name: name, Type: typ, Value: value}
}

func testTileset(t *testing.T) *TileSet {
	t.Helper()
	src := &tiled.Tileset{
		Name:       "terrain",
		FirstGID:   1,
		TileWidth:  8,
		TileHeight: 8,
		TileCount:  16,
		Columns:    4,
		Tiles: []*tiled.TilesetTile{
			{ID: 1, Properties: tiled.Properties{prop("solid", "bool", "false")}},
			{ID: 2, Properties: tiled.Properties{prop("oneway", "string", "N")}},
			{ID: 3, Properties: tiled.Properties{prop("oneway", "string", "E")}},
			{ID: 4, Properties: tiled.Properties{
				prop("slope", "bool", "true"),
				prop("left_y", "int", "0"),
				prop("right_y", "int", "8"),
			}},
			{ID: 5, Properties: tiled.Properties{
				prop("condition", "string", "red"),
				prop("alternate", "int", "8"),
			}},
			{ID: 6, Properties: tiled.Properties{prop("hitbox_top", "int", "4")}},
			{ID: 7, Properties: tiled.Properties{prop("condition", "string", "red")}},
			{ID: 8, Properties: tiled.Properties{prop("deadly", "bool", "true")}},
		},
	}
	ts, err := NewTileSet(src)
	if err != nil {
		t.Fatalf("NewTileSet: %v", err)
	}
	return ts
}

// buildTestMap places tiles on a single 8x8 layer keyed by (row, col).
func buildTestMap(t *testing.T, place map[[2]int]GlobalID) *TileMap {
	t.Helper()
	grid := make([]GlobalID, 64)
	for rc, gid := range place {
		grid[rc[0]*8+rc[1]] = gid
	}
	layer, err := NewTileLayer("main", 8, 8, grid, false)
	if err != nil {
		t.Fatalf("NewTileLayer: %v", err)
	}
	m, err := New(8, 8, 8, 8, []*TileLayer{layer}, []*TileSet{testTileset(t)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func actorAt(x, y geom.Subpixels) geom.Rect[geom.Subpixels] {
	return geom.Rect[geom.Subpixels]{X: x, Y: y, W: 256, H: 256}
}

func TestTryMoveToStopsAtSolidTile(t *testing.T) {
	m := buildTestMap(t, map[[2]int]GlobalID{{5, 3}: gidPlain})
	sw := switchstate.New()

	// Tile (5,3) spans x 768..1024, y 1280..1536 in subpixels.
	tests := []struct {
		name  string
		d     geom.Direction
		actor geom.Rect[geom.Subpixels]
		want  geom.Subpixels
	}{
		{"down", geom.DirDown, actorAt(768, 1080), -56},
		{"up", geom.DirUp, actorAt(768, 1480), 56},
		{"left", geom.DirLeft, actorAt(968, 1280), 56},
		{"right", geom.DirRight, actorAt(568, 1280), -56},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := m.TryMoveTo(tc.actor, tc.d, sw, false)
			if got.HardOffset != tc.want || got.SoftOffset != tc.want {
				t.Errorf("offsets = (%d, %d), want %d", got.HardOffset, got.SoftOffset, tc.want)
			}
			if !got.TileIDs.Contains(gidPlain) {
				t.Errorf("tile ids %v should contain %d", got.TileIDs.All(), gidPlain)
			}
		})
	}
}

func TestTryMoveToIgnoresTouchingTile(t *testing.T) {
	m := buildTestMap(t, map[[2]int]GlobalID{{5, 3}: gidPlain})
	sw := switchstate.New()

	// Resting exactly on top of the tile is not an overlap.
	got := m.TryMoveTo(actorAt(768, 1024), geom.DirDown, sw, false)
	if got.HardOffset != 0 || got.SoftOffset != 0 {
		t.Errorf("offsets = (%d, %d), want 0", got.HardOffset, got.SoftOffset)
	}
	if got.TileIDs.Len() != 0 {
		t.Errorf("tile ids = %v, want none", got.TileIDs.All())
	}
}

func TestTryMoveToMapEdges(t *testing.T) {
	m := buildTestMap(t, nil)
	sw := switchstate.New()

	// The map is 64x64 pixels, 2048 subpixels on a side.
	tests := []struct {
		name  string
		d     geom.Direction
		actor geom.Rect[geom.Subpixels]
		want  geom.Subpixels
	}{
		{"left", geom.DirLeft, actorAt(-160, 512), 160},
		{"up", geom.DirUp, actorAt(512, -64), 64},
		{"right", geom.DirRight, actorAt(1802, 512), -11},
		{"down", geom.DirDown, actorAt(512, 1800), -9},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := m.TryMoveTo(tc.actor, tc.d, sw, false)
			if got.HardOffset != tc.want || got.SoftOffset != tc.want {
				t.Errorf("offsets = (%d, %d), want %d", got.HardOffset, got.SoftOffset, tc.want)
			}
			if got.TileIDs.Len() != 0 {
				t.Errorf("edge clamp should not report tiles, got %v", got.TileIDs.All())
			}
		})
	}
}

func TestTryMoveToSolidDefault(t *testing.T) {
	sw := switchstate.New()

	// A tile with properties but no solid flag still blocks.
	m := buildTestMap(t, map[[2]int]GlobalID{{5, 3}: gidSpike})
	got := m.TryMoveTo(actorAt(768, 1080), geom.DirDown, sw, false)
	if got.HardOffset != -56 {
		t.Errorf("spike tile hard offset = %d, want -56", got.HardOffset)
	}

	m = buildTestMap(t, map[[2]int]GlobalID{{5, 3}: gidNonSolid})
	got = m.TryMoveTo(actorAt(768, 1080), geom.DirDown, sw, false)
	if got.HardOffset != 0 || got.SoftOffset != 0 {
		t.Errorf("non-solid tile offsets = (%d, %d), want 0", got.HardOffset, got.SoftOffset)
	}
}

func TestTryMoveToOneWay(t *testing.T) {
	sw := switchstate.New()

	m := buildTestMap(t, map[[2]int]GlobalID{{5, 3}: gidOneWayN})
	tests := []struct {
		name      string
		d         geom.Direction
		actor     geom.Rect[geom.Subpixels]
		backwards bool
		want      geom.Subpixels
	}{
		{"blocks landing", geom.DirDown, actorAt(768, 1080), false, -56},
		{"backwards passes", geom.DirDown, actorAt(768, 1080), true, 0},
		{"jump up through", geom.DirUp, actorAt(768, 1480), false, 0},
		{"walk through", geom.DirLeft, actorAt(968, 1280), false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := m.TryMoveTo(tc.actor, tc.d, sw, tc.backwards)
			if got.HardOffset != tc.want {
				t.Errorf("hard offset = %d, want %d", got.HardOffset, tc.want)
			}
		})
	}

	m = buildTestMap(t, map[[2]int]GlobalID{{5, 3}: gidOneWayE})
	if got := m.TryMoveTo(actorAt(968, 1280), geom.DirLeft, sw, false); got.HardOffset != 56 {
		t.Errorf("east wall should block leftward move, got %d", got.HardOffset)
	}
	if got := m.TryMoveTo(actorAt(768, 1080), geom.DirDown, sw, false); got.HardOffset != 0 {
		t.Errorf("east wall should not block landing, got %d", got.HardOffset)
	}
	if got := m.TryMoveTo(actorAt(568, 1280), geom.DirRight, sw, false); got.HardOffset != 0 {
		t.Errorf("east wall should not block rightward move, got %d", got.HardOffset)
	}
}

func TestTryMoveToConditionTiles(t *testing.T) {
	m := buildTestMap(t, map[[2]int]GlobalID{{5, 3}: gidSwitchable})
	actor := actorAt(768, 1080)

	// Condition unmet, so the alternate tile is used in its place.
	sw := switchstate.New()
	got := m.TryMoveTo(actor, geom.DirDown, sw, false)
	if got.HardOffset != -56 {
		t.Errorf("alternate tile hard offset = %d, want -56", got.HardOffset)
	}
	if !got.TileIDs.Contains(gidSpike) || got.TileIDs.Contains(gidSwitchable) {
		t.Errorf("tile ids = %v, want the alternate id %d", got.TileIDs.All(), gidSpike)
	}

	sw.ApplyCommand("red")
	got = m.TryMoveTo(actor, geom.DirDown, sw, false)
	if got.HardOffset != -56 {
		t.Errorf("original tile hard offset = %d, want -56", got.HardOffset)
	}
	if !got.TileIDs.Contains(gidSwitchable) {
		t.Errorf("tile ids = %v, want %d", got.TileIDs.All(), gidSwitchable)
	}

	// Without an alternate, an unmet condition removes the tile entirely.
	m = buildTestMap(t, map[[2]int]GlobalID{{5, 3}: gidCondOnly})
	sw = switchstate.New()
	if got := m.TryMoveTo(actor, geom.DirDown, sw, false); got.HardOffset != 0 {
		t.Errorf("unmet condition tile should not collide, got %d", got.HardOffset)
	}
	sw.ApplyCommand("red")
	if got := m.TryMoveTo(actor, geom.DirDown, sw, false); got.HardOffset != -56 {
		t.Errorf("met condition tile hard offset = %d, want -56", got.HardOffset)
	}
}

func TestTryMoveToSlopeSurface(t *testing.T) {
	m := buildTestMap(t, map[[2]int]GlobalID{{5, 3}: gidSlope})
	sw := switchstate.New()

	// The slope rises from 0 at its left edge to a full tile at its
	// right, so the surface height follows the actor's center.
	tests := []struct {
		name     string
		actor    geom.Rect[geom.Subpixels]
		wantHard geom.Subpixels
		wantSoft geom.Subpixels
	}{
		{"center interpolates", actorAt(768, 1194), -42, -170},
		{"standing exactly on surface", actorAt(768, 1152), 0, -128},
		{"center past left edge", actorAt(600, 1194), -170, -170},
		{"center past right edge", actorAt(912, 1260), 0, -236},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := m.TryMoveTo(tc.actor, geom.DirDown, sw, false)
			if got.HardOffset != tc.wantHard {
				t.Errorf("hard offset = %d, want %d", got.HardOffset, tc.wantHard)
			}
			if got.SoftOffset != tc.wantSoft {
				t.Errorf("soft offset = %d, want %d", got.SoftOffset, tc.wantSoft)
			}
			if !got.TileIDs.Contains(gidSlope) {
				t.Errorf("tile ids = %v, want %d", got.TileIDs.All(), gidSlope)
			}
		})
	}
}

func TestTryMoveToSlopeBesideBlock(t *testing.T) {
	// A solid block to the right of the slope. The block stops the
	// actor (hard) while the soft offset still reports the slope, so
	// the actor counts as standing on both.
	m := buildTestMap(t, map[[2]int]GlobalID{
		{5, 3}: gidSlope,
		{5, 4}: gidPlain,
	})
	sw := switchstate.New()

	got := m.TryMoveTo(actorAt(900, 1044), geom.DirDown, sw, false)
	if got.HardOffset != -20 {
		t.Errorf("hard offset = %d, want -20", got.HardOffset)
	}
	if got.SoftOffset != -20 {
		t.Errorf("soft offset = %d, want -20", got.SoftOffset)
	}
	ids := got.TileIDs.All()
	if len(ids) != 2 || ids[0] != gidSlope || ids[1] != gidPlain {
		t.Errorf("tile ids = %v, want [%d %d]", ids, gidSlope, gidPlain)
	}
}

func TestTryMoveToPlayerLayer(t *testing.T) {
	sw := switchstate.New()
	ts := testTileset(t)

	grid := make([]GlobalID, 64)
	grid[5*8+3] = gidPlain
	bg, err := NewTileLayer("bg", 8, 8, grid, false)
	if err != nil {
		t.Fatalf("NewTileLayer: %v", err)
	}
	main, err := NewTileLayer("main", 8, 8, make([]GlobalID, 64), true)
	if err != nil {
		t.Fatalf("NewTileLayer: %v", err)
	}

	// With a player layer present, other layers are decoration.
	m, err := New(8, 8, 8, 8, []*TileLayer{bg, main}, []*TileSet{ts})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.TryMoveTo(actorAt(768, 1080), geom.DirDown, sw, false); got.HardOffset != 0 {
		t.Errorf("background tile should not collide, got %d", got.HardOffset)
	}

	// Without one, every tile layer collides.
	m, err = New(8, 8, 8, 8, []*TileLayer{bg}, []*TileSet{ts})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.TryMoveTo(actorAt(768, 1080), geom.DirDown, sw, false); got.HardOffset != -56 {
		t.Errorf("hard offset = %d, want -56", got.HardOffset)
	}

	if _, err := New(8, 8, 8, 8, []*TileLayer{main, main}, []*TileSet{ts}); err == nil {
		t.Error("two player layers should fail")
	}
	if _, err := New(8, 8, 8, 8, []*TileLayer{main}, nil); err == nil {
		t.Error("a map without tilesets should fail")
	}
}

func TestTryMoveToHitboxInset(t *testing.T) {
	m := buildTestMap(t, map[[2]int]GlobalID{{5, 3}: gidInset})
	sw := switchstate.New()

	// hitbox_top=4 lowers the collision surface by half a tile.
	if got := m.TryMoveTo(actorAt(768, 1080), geom.DirDown, sw, false); got.HardOffset != 0 {
		t.Errorf("actor above the inset surface should not collide, got %d", got.HardOffset)
	}
	if got := m.TryMoveTo(actorAt(768, 1180), geom.DirDown, sw, false); got.HardOffset != -28 {
		t.Errorf("hard offset = %d, want -28", got.HardOffset)
	}
}

func pxPtr(v geom.Pixels) *geom.Pixels { return &v }

func TestGetPreferredView(t *testing.T) {
	m := buildTestMap(t, nil)
	m.Objects = []*MapObject{
		{ID: 1, Position: geom.Rect[geom.Pixels]{X: 0, Y: 0, W: 16, H: 16}, PreferredX: pxPtr(5)},
		{ID: 2, GID: 3, Position: geom.Rect[geom.Pixels]{X: 0, Y: 0, W: 16, H: 16}, PreferredX: pxPtr(9)},
		{ID: 3, Position: geom.Rect[geom.Pixels]{X: 8, Y: 0, W: 16, H: 16}, PreferredY: pxPtr(7)},
		{ID: 4, Position: geom.Rect[geom.Pixels]{X: 0, Y: 0, W: 16, H: 16}, PreferredX: pxPtr(2)},
	}

	player := geom.Rect[geom.Subpixels]{X: 300, Y: 100, W: 100, H: 100}
	px, py := m.GetPreferredView(player)
	if px == nil || *px != 64 {
		t.Errorf("preferred x = %v, want 64 from the last matching object", px)
	}
	if py == nil || *py != 224 {
		t.Errorf("preferred y = %v, want 224", py)
	}

	px, py = m.GetPreferredView(geom.Rect[geom.Subpixels]{X: 5000, Y: 5000, W: 100, H: 100})
	if px != nil || py != nil {
		t.Errorf("distant player should get no preferred view, got (%v, %v)", px, py)
	}
}

func TestParseMapObject(t *testing.T) {
	o, err := parseMapObject(&tiled.Object{ID: 4, X: 16, Y: 24, Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("parseMapObject: %v", err)
	}
	if o.Overflow != OverflowOscillate || o.Direction != geom.DirUp || o.ButtonType != ButtonToggle {
		t.Errorf("defaults = (%v, %v, %v), want oscillate, up, toggle", o.Overflow, o.Direction, o.ButtonType)
	}
	if o.Solid || o.Convey != geom.DirNone || o.Warp != nil || o.Speed != nil {
		t.Error("absent properties should stay unset")
	}
	if o.Position != (geom.Rect[geom.Pixels]{X: 16, Y: 24, W: 8, H: 8}) {
		t.Errorf("position = %+v", o.Position)
	}

	// Tile objects anchor at the bottom-left corner.
	o, err = parseMapObject(&tiled.Object{ID: 5, GID: 3, X: 16, Y: 24, Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("parseMapObject: %v", err)
	}
	if o.Position.Y != 16 {
		t.Errorf("tile object y = %d, want 16", o.Position.Y)
	}

	o, err = parseMapObject(&tiled.Object{ID: 6, Width: 8, Height: 8, Properties: tiled.Properties{
		prop("platform", "bool", "true"),
		prop("speed", "int", "2"),
		prop("distance", "int", "5"),
		prop("overflow", "string", "wrap"),
		prop("direction", "string", "E"),
		prop("convey", "string", "W"),
		prop("button_type", "string", "smart"),
		prop("warp", "string", "level2.tmx"),
		prop("preferred_x", "int", "12"),
	}})
	if err != nil {
		t.Fatalf("parseMapObject: %v", err)
	}
	if !o.Platform || o.Speed == nil || *o.Speed != 2 || o.Distance != 5 {
		t.Errorf("platform fields = %+v", o)
	}
	if o.Overflow != OverflowWrap || o.Direction != geom.DirRight || o.Convey != geom.DirLeft || o.ButtonType != ButtonSmart {
		t.Errorf("enum fields = (%v, %v, %v, %v)", o.Overflow, o.Direction, o.Convey, o.ButtonType)
	}
	if o.Warp == nil || *o.Warp != "level2.tmx" {
		t.Errorf("warp = %v, want level2.tmx", o.Warp)
	}
	if o.PreferredX == nil || *o.PreferredX != 12 {
		t.Errorf("preferred_x = %v, want 12", o.PreferredX)
	}

	bad := []tiled.Properties{
		{prop("overflow", "string", "sideways")},
		{prop("direction", "string", "Q")},
		{prop("convey", "string", "N")},
		{prop("button_type", "string", "mash")},
		{prop("speed", "int", "fast")},
	}
	for _, props := range bad {
		if _, err := parseMapObject(&tiled.Object{ID: 9, Properties: props}); err == nil {
			t.Errorf("property %s=%q should fail to parse", props[0].Name, props[0].Value)
		}
	}
}

func TestFrameAt(t *testing.T) {
	src := &tiled.Tileset{
		Name:       "anim",
		FirstGID:   1,
		TileWidth:  8,
		TileHeight: 8,
		TileCount:  4,
		Columns:    4,
		Tiles: []*tiled.TilesetTile{
			{ID: 0, Animation: []*tiled.AnimationFrame{
				{TileID: 0, Duration: 100},
				{TileID: 1, Duration: 100},
				{TileID: 2, Duration: 100},
			}},
		},
	}
	ts, err := NewTileSet(src)
	if err != nil {
		t.Fatalf("NewTileSet: %v", err)
	}

	// Ticks advance at 60 Hz against millisecond frame durations.
	tests := []struct {
		tick int
		want LocalID
	}{
		{0, 0},
		{5, 0},
		{6, 1},
		{12, 2},
		{18, 0},
	}
	for _, tc := range tests {
		if got := ts.FrameAt(0, tc.tick); got != tc.want {
			t.Errorf("FrameAt(0, %d) = %d, want %d", tc.tick, got, tc.want)
		}
	}
	if got := ts.FrameAt(3, 99); got != 3 {
		t.Errorf("unanimated tile should return itself, got %d", got)
	}
}

func TestIDSet(t *testing.T) {
	var s IDSet
	s.Insert(3)
	s.Insert(1)
	s.Insert(3)

	ids := s.All()
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 1 {
		t.Errorf("All() = %v, want unique ids in insertion order", ids)
	}
	if !s.Contains(1) || s.Contains(2) {
		t.Error("Contains is wrong")
	}
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d", s.Len())
	}
}
