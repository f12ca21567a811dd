package geom

import "testing"

func TestRectIntersect(t *testing.T) {
	box := NewRect(1064, 16, 200, 100)
	cases := []struct {
		name  string
		other Rect
		want  Rect
		ok    bool
	}{
		{"overflowing left", NewRect(1008, 16, 400, 250), NewRect(1064, 16, 200, 100), true},
		{"inside", NewRect(1100, 20, 10, 10), NewRect(1100, 20, 10, 10), true},
		{"corner", NewRect(1200, 90, 100, 100), NewRect(1200, 90, 64, 26), true},
		{"touching edge", NewRect(1264, 16, 50, 50), Rect{}, false},
		{"apart", NewRect(0, 0, 10, 10), Rect{}, false},
	}
	for _, tc := range cases {
		got, ok := box.Intersect(tc.other)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("%s: expected %+v/%v, got %+v/%v", tc.name, tc.want, tc.ok, got, ok)
		}
	}
}

func TestRectMinAndContains(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	if r.Min() != (Point{X: 10, Y: 20}) {
		t.Fatalf("unexpected min %+v", r.Min())
	}
	if !r.Contains(Point{X: 40, Y: 60}) || r.Contains(Point{X: 41, Y: 60}) {
		t.Fatalf("expected contains to include the far edge only")
	}
}
