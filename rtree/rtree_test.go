package rtree

import (
	"sort"
	"testing"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/units"
)

func box(x0, y0, z0, x1, y1, z1 float64) units.Box3 {
	return units.NewBox3(x0, y0, z0, x1, y1, z1)
}

func sorted(ids []int64) []int64 {
	out := append([]int64(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestIntersectingFindsOverlaps(t *testing.T) {
	tr := New()
	tr.Insert(1, box(0, 0, 0, 10, 10, 10))
	tr.Insert(2, box(20, 20, 0, 30, 30, 10))
	tr.Insert(3, box(5, 5, 0, 15, 15, 10))

	got := sorted(tr.Intersecting(box(0, 0, 0, 6, 6, 10)))
	want := []int64{1, 3}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestIntersectingEmptyWhenNoOverlap(t *testing.T) {
	tr := New()
	tr.Insert(1, box(0, 0, 0, 10, 10, 10))

	got := tr.Intersecting(box(100, 100, 0, 110, 110, 10))
	if len(got) != 0 {
		t.Fatalf("expected no hits, got %v", got)
	}
}

func TestDeleteRemovesExactEntry(t *testing.T) {
	tr := New()
	b := box(0, 0, 0, 10, 10, 10)
	tr.Insert(1, b)

	if !tr.Delete(1, b) {
		t.Fatal("expected delete to report success")
	}
	if got := tr.Intersecting(b); len(got) != 0 {
		t.Fatalf("expected empty after delete, got %v", got)
	}
}

func TestDeleteMissingEntryReportsFalse(t *testing.T) {
	tr := New()
	tr.Insert(1, box(0, 0, 0, 10, 10, 10))

	if tr.Delete(2, box(0, 0, 0, 10, 10, 10)) {
		t.Fatal("expected delete of absent id to report false")
	}
}

func TestSameIDMultipleBoxesDeletesIndependently(t *testing.T) {
	tr := New()
	portBox := box(0, 0, 0, 1, 1, 1)
	shapeBox := box(50, 50, 0, 51, 51, 1)
	tr.Insert(7, portBox)
	tr.Insert(7, shapeBox)

	tr.Delete(7, portBox)

	if got := tr.Intersecting(portBox); len(got) != 0 {
		t.Fatalf("expected port box gone, got %v", got)
	}
	if got := tr.Intersecting(shapeBox); len(got) != 1 || got[0] != 7 {
		t.Fatalf("expected shape box to survive, got %v", got)
	}
}

func TestSplitsAcrossManyEntries(t *testing.T) {
	tr := New()
	for i := int64(0); i < 200; i++ {
		x := float64(i) * 2
		tr.Insert(i, box(x, 0, 0, x+1, 1, 1))
	}
	for i := int64(0); i < 200; i++ {
		x := float64(i) * 2
		got := tr.Intersecting(box(x, 0, 0, x+1, 1, 1))
		found := false
		for _, id := range got {
			if id == i {
				found = true
			}
		}
		if !found {
			t.Fatalf("id %d not found after bulk insert, got %v", i, got)
		}
	}
}

func TestDeleteCollapsesShallowAfterBulkRemoval(t *testing.T) {
	tr := New()
	for i := int64(0); i < 50; i++ {
		x := float64(i) * 2
		tr.Insert(i, box(x, 0, 0, x+1, 1, 1))
	}
	for i := int64(0); i < 49; i++ {
		x := float64(i) * 2
		tr.Delete(i, box(x, 0, 0, x+1, 1, 1))
	}
	x := float64(49) * 2
	got := tr.Intersecting(box(x, 0, 0, x+1, 1, 1))
	if len(got) != 1 || got[0] != 49 {
		t.Fatalf("expected only id 49 to remain, got %v", got)
	}
}
