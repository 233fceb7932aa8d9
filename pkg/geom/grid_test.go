package geom

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func testConfig(count, rows int) Config {
	return Config{
		Count:        count,
		Rows:         rows,
		CellSize:     Size{Width: 100, Height: 100},
		ViewportSize: Size{Width: 400, Height: 300},
	}
}

func TestPerRow_Bounds(t *testing.T) {
	for count := 1; count <= 20; count++ {
		for rows := 1; rows <= count; rows++ {
			cfg := testConfig(count, rows)
			per := cfg.PerRow()
			if per < 1 {
				t.Fatalf("count=%d rows=%d: perRow=%d, want >= 1", count, rows, per)
			}
			if per*rows > count {
				t.Errorf("count=%d rows=%d: perRow*rows = %d exceeds count", count, rows, per*rows)
			}
		}
	}
}

func TestPerRow_Floor(t *testing.T) {
	tests := []struct {
		count, rows, want int
	}{
		{10, 3, 3},
		{6, 2, 3},
		{7, 2, 3},
		{1, 1, 1},
		{2, 3, 0},
	}
	for _, tt := range tests {
		if got := testConfig(tt.count, tt.rows).PerRow(); got != tt.want {
			t.Errorf("PerRow(%d/%d) = %d, want %d", tt.count, tt.rows, got, tt.want)
		}
	}
}

func TestValidate_RejectsMoreRowsThanPanels(t *testing.T) {
	err := testConfig(2, 3).Validate()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if cfgErr.Field != "rows" {
		t.Errorf("Field = %q, want rows", cfgErr.Field)
	}
}

func TestValidate_Cases(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", testConfig(6, 2), false},
		{"zero count", testConfig(0, 1), true},
		{"zero rows", testConfig(6, 0), true},
		{"negative rows", testConfig(6, -1), true},
		{"empty cell", Config{Count: 6, Rows: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlacePanels_ScenarioB(t *testing.T) {
	cfg := testConfig(6, 2)
	rects, err := PlacePanels(cfg)
	if err != nil {
		t.Fatalf("PlacePanels: %v", err)
	}
	root := cfg.Root()
	if root != (Point{X: 300, Y: 100}) {
		t.Fatalf("root = %v, want (300,100)", root)
	}

	wantX := []float64{root.X, root.X + 100, root.X + 200, root.X - 50, root.X + 50, root.X + 150}
	rowY := root.Y + 100*RowStepFactor + RowGutter
	for i, r := range rects {
		if r.X != wantX[i] {
			t.Errorf("panel %d x = %g, want %g", i, r.X, wantX[i])
		}
		wantY := root.Y
		if i >= 3 {
			wantY = rowY
		}
		if r.Y != wantY {
			t.Errorf("panel %d y = %g, want %g", i, r.Y, wantY)
		}
		if r.Size() != cfg.CellSize {
			t.Errorf("panel %d size = %v, want %v", i, r.Size(), cfg.CellSize)
		}
	}
}

func TestPlacePanels_ScenarioA(t *testing.T) {
	cfg := testConfig(10, 3)
	if cfg.PerRow() != 3 {
		t.Fatalf("perRow = %d, want 3", cfg.PerRow())
	}
	rects, err := PlacePanels(cfg)
	if err != nil {
		t.Fatalf("PlacePanels: %v", err)
	}

	step := 100*RowStepFactor + RowGutter
	root := cfg.Root()
	last := rects[9]
	if want := root.Y + 3*step; last.Y != want {
		t.Errorf("panel 9 y = %g, want %g (fourth row)", last.Y, want)
	}
	for i := 0; i < 9; i++ {
		if rects[i].Y == last.Y {
			t.Errorf("panel %d shares the last row with panel 9", i)
		}
	}
	// Fourth row is an even 1-based row, so it is shifted left.
	if want := root.X - 50; last.X != want {
		t.Errorf("panel 9 x = %g, want %g", last.X, want)
	}
}

func TestPlacePanels_BrickOffsetAlternates(t *testing.T) {
	cfg := testConfig(12, 4)
	rects, err := PlacePanels(cfg)
	if err != nil {
		t.Fatalf("PlacePanels: %v", err)
	}
	root := cfg.Root()
	per := cfg.PerRow()
	for i, r := range rects {
		row := i / per
		start := rects[row*per].X
		want := root.X
		if row%2 == 1 {
			want = root.X - cfg.CellSize.Width/2
		}
		if start != want {
			t.Errorf("row %d starts at x=%g, want %g", row, start, want)
		}
		if col := i % per; r.X != start+float64(col)*cfg.CellSize.Width {
			t.Errorf("panel %d x = %g, not contiguous with row start", i, r.X)
		}
	}
}

func TestPlacePanels_Deterministic(t *testing.T) {
	cfg := testConfig(10, 3)
	a, _ := PlacePanels(cfg)
	b, _ := PlacePanels(cfg)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("placement differs between calls:\n%v\n%v", a, b)
	}
}

func TestPlacePanels_InvalidConfig(t *testing.T) {
	rects, err := PlacePanels(testConfig(2, 3))
	if err == nil {
		t.Fatal("expected error")
	}
	if rects != nil {
		t.Errorf("expected no rects, got %d", len(rects))
	}
}

func TestCursor_RowTracksPlacement(t *testing.T) {
	cur := NewCursor(testConfig(6, 2))
	for i := 0; i < 6; i++ {
		if want := i / 3; cur.Row() != want {
			t.Errorf("before panel %d Row() = %d, want %d", i, cur.Row(), want)
		}
		cur.Next()
	}
}

func TestContentSize(t *testing.T) {
	cfg := testConfig(10, 3)
	got := cfg.ContentSize()
	want := Size{Width: 3*100 + (400 - 100), Height: 3*100 + (300 - 100)}
	if got != want {
		t.Fatalf("ContentSize = %v, want %v", got, want)
	}
}

func TestCenterOffsetFor_RoundTrip(t *testing.T) {
	cfg := testConfig(10, 3)
	rects, _ := PlacePanels(cfg)
	vp := cfg.ViewportSize
	for i, r := range rects {
		off := CenterOffsetFor(r, vp)
		// Position of the rect center inside the viewport once scrolled.
		visible := r.Center().Sub(off)
		if math.Abs(visible.X-vp.Width/2) > 1e-9 || math.Abs(visible.Y-(vp.Height/2-CenterBias)) > 1e-9 {
			t.Errorf("panel %d: visible center %v, want (%g,%g)", i, visible, vp.Width/2, vp.Height/2-CenterBias)
		}
		if again := CenterOffsetFor(r, vp); again != off {
			t.Errorf("panel %d: CenterOffsetFor not pure: %v vs %v", i, off, again)
		}
	}
}

func TestCenterOffsetFor_Exact(t *testing.T) {
	got := CenterOffsetFor(Rect{X: 550, Y: 105, Width: 250, Height: 250}, Size{Width: 800, Height: 460})
	want := Point{X: 275, Y: 18}
	if got != want {
		t.Fatalf("CenterOffsetFor = %v, want %v", got, want)
	}
}
