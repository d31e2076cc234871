package units

import "testing"

func TestBox3Union(t *testing.T) {
	a := NewBox3(0, 0, 0, 10, 10, 10)
	b := NewBox3(5, 5, 5, 20, 20, 20)
	u := a.Union(b)
	if u.X1 != 20 || u.X0 != 0 {
		t.Errorf("Union() = %+v, want X range [0,20]", u)
	}
}

func TestBox3Intersect(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Box3
		wantOK  bool
	}{
		{"overlap", NewBox3(0, 0, 0, 10, 10, 10), NewBox3(5, 5, 5, 15, 15, 15), true},
		{"disjoint", NewBox3(0, 0, 0, 1, 1, 1), NewBox3(5, 5, 5, 6, 6, 6), false},
		{"touching-empty", NewBox3(0, 0, 0, 1, 1, 1), NewBox3(1, 1, 1, 2, 2, 2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tt.a.Intersect(tt.b)
			if ok != tt.wantOK {
				t.Errorf("Intersect() ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestRoundTo3(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.23456, 1.235},
		{0.0001, 0.0},
		{2.0005, 2.001},
	}
	for _, tt := range tests {
		if got := RoundTo3(tt.in); got != tt.want {
			t.Errorf("RoundTo3(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConvert(t *testing.T) {
	// 10 child pixels at 0.01mm/px into a parent at 0.02mm/px -> 5 parent px equivalent in mm space.
	got := Convert(10, 0.01, 0.02)
	want := 5.0
	if got != want {
		t.Errorf("Convert() = %v, want %v", got, want)
	}
}

func TestPoint3Manhattan(t *testing.T) {
	a := Pt3(0, 0, 0)
	b := Pt3(3, 4, 5)
	if got := a.Manhattan(b); got != 12 {
		t.Errorf("Manhattan() = %d, want 12", got)
	}
}
