package triples

import "container/heap"

// frontier is a min-heap of discovered but not yet extracted triples,
// ordered by Triple.Less. It implements heap.Interface.
type frontier []Triple

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].Less(f[j]) }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(Triple))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	t := old[n-1]
	*f = old[:n-1]
	return t
}

func newFrontier(seed Triple) *frontier {
	f := &frontier{seed}
	heap.Init(f)
	return f
}

func (f *frontier) push(t Triple) { heap.Push(f, t) }

func (f *frontier) pop() Triple { return heap.Pop(f).(Triple) }
