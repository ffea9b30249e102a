package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type runSummary struct {
	Kind  RunKind
	Range Range
}

func runSummaries(runs []Run) []runSummary {
	out := make([]runSummary, 0, len(runs))
	for _, r := range runs {
		out = append(out, runSummary{Kind: r.Kind, Range: r.Range})
	}
	return out
}

func TestSegmentWithoutAttachments(t *testing.T) {
	got := runSummaries(Segment(Range{Start: 4, End: 9}, nil))
	want := []runSummary{{Kind: RunText, Range: Range{4, 9}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("runs mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentInterleavesAttachments(t *testing.T) {
	atts := []Attachment{
		{Name: "head", Range: Range{Start: 0, End: 3}},
		{Name: "mid", Range: Range{Start: 5, End: 6}},
		{Name: "tail", Range: Range{Start: 8, End: 10}},
	}
	got := runSummaries(Segment(Range{Start: 0, End: 10}, atts))
	want := []runSummary{
		{Kind: RunAttachment, Range: Range{0, 3}},
		{Kind: RunText, Range: Range{3, 5}},
		{Kind: RunAttachment, Range: Range{5, 6}},
		{Kind: RunText, Range: Range{6, 8}},
		{Kind: RunAttachment, Range: Range{8, 10}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("runs mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentClipsToLine(t *testing.T) {
	atts := []Attachment{
		{Name: "before", Range: Range{Start: 0, End: 2}},
		{Name: "straddle", Range: Range{Start: 8, End: 12}},
		{Name: "after", Range: Range{Start: 20, End: 23}},
	}
	runs := Segment(Range{Start: 5, End: 10}, atts)
	got := runSummaries(runs)
	want := []runSummary{
		{Kind: RunText, Range: Range{5, 8}},
		{Kind: RunAttachment, Range: Range{8, 10}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("runs mismatch (-want +got):\n%s", diff)
	}
	if runs[1].Attachment.Name != "straddle" {
		t.Fatalf("attachment run references %q", runs[1].Attachment.Name)
	}
}

func TestSegmentEmptyLine(t *testing.T) {
	if runs := Segment(Range{Start: 3, End: 3}, nil); len(runs) != 0 {
		t.Fatalf("empty line should yield no runs, got %d", len(runs))
	}
}
