package parallel

import "testing"

func TestBandRows(t *testing.T) {
	tests := []struct {
		band Band
		step int
		want int
	}{
		{Band{0, 10}, 1, 10},
		{Band{0, 10}, 2, 5},
		{Band{0, 11}, 2, 6},
		{Band{5, 5}, 1, 0},
		{Band{7, 3}, 1, 0},
		{Band{0, 10}, 0, 0},
	}
	for _, tt := range tests {
		if got := tt.band.Rows(tt.step); got != tt.want {
			t.Errorf("%v.Rows(%d) = %d, want %d", tt.band, tt.step, got, tt.want)
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		y0, y1 int
		step   int
		k      int
	}{
		{"single band", 10, 90, 1, 1},
		{"even split", 0, 100, 1, 4},
		{"uneven split", 3, 50, 1, 6},
		{"more bands than rows", 0, 3, 1, 8},
		{"interlaced", 5, 96, 2, 4},
		{"interlaced odd end", 0, 9, 2, 3},
		{"zero bands", 0, 10, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := Split(tt.y0, tt.y1, tt.step, tt.k)
			if len(bands) == 0 || len(bands) > max(tt.k, 1) {
				t.Fatalf("%d bands for k=%d", len(bands), tt.k)
			}

			next := tt.y0
			rows := 0
			for _, b := range bands {
				if b.Y0 != next {
					t.Fatalf("band %v does not start at %d", b, next)
				}
				if (b.Y0-tt.y0)%tt.step != 0 {
					t.Errorf("band %v not aligned to step %d", b, tt.step)
				}
				if b.Empty() {
					t.Errorf("empty band %v", b)
				}
				rows += b.Rows(tt.step)
				next = b.Y1
			}
			if next != tt.y1 {
				t.Errorf("bands end at %d, want %d", next, tt.y1)
			}
			if want := (Band{tt.y0, tt.y1}).Rows(tt.step); rows != want {
				t.Errorf("bands visit %d rows, want %d", rows, want)
			}
		})
	}
}

func TestSplitEmpty(t *testing.T) {
	bands := Split(20, 20, 1, 4)
	if len(bands) != 1 || !bands[0].Empty() {
		t.Errorf("Split of an empty range = %v, want one empty band", bands)
	}
}
