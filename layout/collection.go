package layout

import (
	"sort"
	"sync/atomic"
)

// Entry 是 FragmentCollection 中的一项。Offset 与 Y 相对于所在逻辑行的起点。
type Entry struct {
	Index    int
	Offset   int
	Length   int
	Y        float64
	Height   float64
	Fragment *Fragment
}

// Range 返回该项覆盖的行内相对区间。
func (e Entry) Range() Range { return Range{Start: e.Offset, End: e.Offset + e.Length} }

// snapshot 是一次重建的完整结果，发布后只读。
type snapshot struct {
	entries []Entry
	length  int
	height  float64
}

// FragmentCollection 保存一条逻辑行的 fragment 划分，支持按偏移与按序号查找。
// 每次 Rebuild 都整体替换内容，查找永远不会看到构建到一半的状态。
type FragmentCollection struct {
	snap atomic.Pointer[snapshot]
}

// Rebuild 丢弃旧内容并由 items 重建。estimatedHeight 只用于预估容量。
func (c *FragmentCollection) Rebuild(items []BuildItem, estimatedHeight float64) {
	capacity := len(items)
	if estimatedHeight > 0 {
		var total float64
		for _, it := range items {
			total += it.Height
		}
		capacity = max(capacity, int(total/estimatedHeight))
	}
	s := &snapshot{entries: make([]Entry, 0, capacity)}
	for _, it := range items {
		s.entries = append(s.entries, Entry{
			Index:    len(s.entries),
			Offset:   s.length,
			Length:   it.Length,
			Y:        s.height,
			Height:   it.Height,
			Fragment: it.Fragment,
		})
		s.length += it.Length
		s.height += it.Height
	}
	c.snap.Store(s)
}

// RemoveAll 清空集合。
func (c *FragmentCollection) RemoveAll() {
	c.snap.Store(nil)
}

func (c *FragmentCollection) load() *snapshot {
	if s := c.snap.Load(); s != nil {
		return s
	}
	return &snapshot{}
}

// EntryAt 返回覆盖相对偏移 offset 的项。offset 等于总长度时不命中。
func (c *FragmentCollection) EntryAt(offset int) (Entry, bool) {
	s := c.load()
	if offset < 0 || offset >= s.length {
		return Entry{}, false
	}
	i := sort.Search(len(s.entries), func(i int) bool {
		e := s.entries[i]
		return e.Offset+e.Length > offset
	})
	if i == len(s.entries) {
		return Entry{}, false
	}
	return s.entries[i], true
}

// EntryAtIndex 返回第 i 项。
func (c *FragmentCollection) EntryAtIndex(i int) (Entry, bool) {
	s := c.load()
	if i < 0 || i >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Last 返回最后一项。
func (c *FragmentCollection) Last() (Entry, bool) {
	return c.EntryAtIndex(c.Count() - 1)
}

// Entries 返回当前快照中的全部项，调用方不得修改。
func (c *FragmentCollection) Entries() []Entry { return c.load().entries }

func (c *FragmentCollection) Count() int { return len(c.load().entries) }
func (c *FragmentCollection) Length() int { return c.load().length }
func (c *FragmentCollection) Height() float64 { return c.load().height }
