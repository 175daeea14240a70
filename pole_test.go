package globe

import (
	"math"
	"testing"

	"github.com/gogpu/globe/rotation"
)

func TestPoleGuardProjection(t *testing.T) {
	const lat, roll = 1.0, 0.35
	v := NewView(400, 400, 150, rotation.Orientation(0.4, lat, roll))
	g := newPoleGuard(v, 8)

	wantX := 200 + int(math.Round(150*math.Cos(lat)*math.Sin(roll)))
	wantY := 200 - int(math.Round(150*math.Cos(lat)*math.Cos(roll)))
	if !g.visible {
		t.Fatal("pole should face the viewer")
	}
	if g.x != wantX || g.y != wantY {
		t.Errorf("pole at (%d, %d), want (%d, %d)", g.x, g.y, wantX, wantY)
	}
	if g.half != 4 {
		t.Errorf("half = %d, want 4", g.half)
	}
}

func TestPoleGuardHidden(t *testing.T) {
	v := NewView(400, 400, 150, rotation.LookAt(0, -1.0))
	g := newPoleGuard(v, 8)
	if g.visible {
		t.Fatal("pole behind the globe reported visible")
	}
	for y := 0; y < 400; y++ {
		if g.row(y) {
			t.Fatalf("row(%d) = true for a hidden pole", y)
		}
	}
}

func TestPoleGuardWindow(t *testing.T) {
	g := poleGuard{visible: true, x: 100, y: 50, half: 4}

	rows := []struct {
		y    int
		want bool
	}{
		{45, false},
		{46, true},
		{50, true},
		{54, true},
		{55, false},
	}
	for _, tt := range rows {
		if got := g.row(tt.y); got != tt.want {
			t.Errorf("row(%d) = %v, want %v", tt.y, got, tt.want)
		}
	}

	windows := []struct {
		x    int
		want bool
	}{
		{92, false},
		{93, true},
		{100, true},
		{101, false},
	}
	for _, tt := range windows {
		if got := g.covers(tt.x, 8); got != tt.want {
			t.Errorf("covers(%d, 8) = %v, want %v", tt.x, got, tt.want)
		}
	}
}
