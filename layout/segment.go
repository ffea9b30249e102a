package layout

// Segment 将一条逻辑行 [lineRange] 切分为有序的文本 run 与附件 run，
// 覆盖整行且无空隙、无重叠。attachments 须已按位置排序且互不重叠（调用方约定，不做校验）。
func Segment(lineRange Range, attachments []Attachment) []Run {
	runs := make([]Run, 0, 2*len(attachments)+1)
	cursor := lineRange.Start
	for i := range attachments {
		att := &attachments[i]
		r := att.Range.Intersect(lineRange)
		if r.IsEmpty() {
			continue
		}
		if r.Start > cursor {
			runs = append(runs, Run{Kind: RunText, Range: Range{Start: cursor, End: r.Start}})
		}
		runs = append(runs, Run{Kind: RunAttachment, Range: r, Attachment: att})
		cursor = r.End
	}
	if cursor < lineRange.End {
		runs = append(runs, Run{Kind: RunText, Range: Range{Start: cursor, End: lineRange.End}})
	}
	return runs
}
