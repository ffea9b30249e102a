package layout

import (
	"sync"
	"testing"
)

func buildItems(lengths []int, heights []float64) []BuildItem {
	out := make([]BuildItem, len(lengths))
	for i := range lengths {
		out[i] = BuildItem{Fragment: &Fragment{Height: heights[i]}, Length: lengths[i], Height: heights[i]}
	}
	return out
}

func TestCollectionLookup(t *testing.T) {
	var c FragmentCollection
	c.Rebuild(buildItems([]int{3, 4, 2}, []float64{4, 4, 6}), 4)

	if c.Count() != 3 || c.Length() != 9 || c.Height() != 14 {
		t.Fatalf("count %d length %d height %g", c.Count(), c.Length(), c.Height())
	}
	cases := []struct {
		offset int
		index  int
	}{
		{0, 0}, {2, 0}, {3, 1}, {6, 1}, {7, 2}, {8, 2},
	}
	for _, tc := range cases {
		e, ok := c.EntryAt(tc.offset)
		if !ok || e.Index != tc.index {
			t.Fatalf("EntryAt(%d) = %d, %v; want %d", tc.offset, e.Index, ok, tc.index)
		}
	}
	e, _ := c.EntryAt(8)
	if e.Offset != 7 || e.Y != 8 || e.Height != 6 || e.Range() != (Range{Start: 7, End: 9}) {
		t.Fatalf("unexpected last entry %+v", e)
	}
	for _, off := range []int{-1, 9, 20} {
		if _, ok := c.EntryAt(off); ok {
			t.Fatalf("EntryAt(%d) should miss", off)
		}
	}
	if _, ok := c.EntryAtIndex(3); ok {
		t.Fatalf("EntryAtIndex(3) should miss")
	}
	if last, ok := c.Last(); !ok || last.Index != 2 {
		t.Fatalf("Last = %d, %v", last.Index, ok)
	}
}

func TestCollectionSkipsEmptyEntries(t *testing.T) {
	var c FragmentCollection
	c.Rebuild(buildItems([]int{3, 0, 2}, []float64{4, 4, 4}), 0)
	e, ok := c.EntryAt(3)
	if !ok || e.Index != 2 {
		t.Fatalf("EntryAt(3) = %d, %v; want entry 2", e.Index, ok)
	}
}

func TestCollectionRebuildAndRemoveAll(t *testing.T) {
	var c FragmentCollection
	if _, ok := c.EntryAt(0); ok || c.Count() != 0 {
		t.Fatalf("zero collection should be empty")
	}
	c.Rebuild(buildItems([]int{5}, []float64{4}), 4)
	c.Rebuild(buildItems([]int{1, 1}, []float64{2, 2}), 4)
	if c.Count() != 2 || c.Length() != 2 || c.Height() != 4 {
		t.Fatalf("rebuild should replace previous contents: count %d length %d", c.Count(), c.Length())
	}
	c.RemoveAll()
	if c.Count() != 0 || c.Length() != 0 || c.Height() != 0 {
		t.Fatalf("RemoveAll left %d entries", c.Count())
	}
	if _, ok := c.Last(); ok {
		t.Fatalf("Last on empty collection should miss")
	}
}

func TestCollectionReadersSeeWholeSnapshots(t *testing.T) {
	var c FragmentCollection
	var wg sync.WaitGroup
	stop := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				entries := c.Entries()
				offset := 0
				for i, e := range entries {
					if e.Index != i || e.Offset != offset {
						t.Errorf("torn snapshot: entry %d at offset %d, want %d", e.Index, e.Offset, offset)
						return
					}
					offset += e.Length
				}
			}
		}()
	}
	for n := 1; n <= 200; n++ {
		lengths := make([]int, n%7+1)
		heights := make([]float64, len(lengths))
		for i := range lengths {
			lengths[i] = i + 1
			heights[i] = 4
		}
		c.Rebuild(buildItems(lengths, heights), 4)
	}
	close(stop)
	wg.Wait()
}
