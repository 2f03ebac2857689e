package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/vsalmi/tapio"
	"github.com/vsalmi/tapio/bloom"
)

// Compile-time interface verification.
var _ tapio.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory URL frontier with Bloom filter deduplication.
// Links come back shallowest depth first, FIFO within one depth, so the
// crawl expands breadth-first. It is safe for concurrent use by multiple
// goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *linkHeap
	seq   int
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &linkHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a link to the frontier.
// Returns false if the URL has already been seen.
// URL fragments are stripped before deduplication - URLs differing only by
// fragment are considered duplicates.
func (f *Frontier) Push(link tapio.DiscoveredLink) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(link.URL)
	if f.seen.Test(url) {
		return false
	}
	f.seen.Add(url)

	// Store the URL without fragment
	link.URL = url
	f.seq++
	heap.Push(f.queue, queuedLink{link: link, seq: f.seq})
	return true
}

// Pop returns the next link, shallowest depth first.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (tapio.DiscoveredLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return tapio.DiscoveredLink{}, false
	}
	q, _ := heap.Pop(f.queue).(queuedLink)
	return q.link, true
}

// Len returns the number of links in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been processed or queued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

// queuedLink pairs a link with its insertion sequence so links at the
// same depth keep FIFO order inside the heap.
type queuedLink struct {
	link tapio.DiscoveredLink
	seq  int
}

// linkHeap implements heap.Interface as a min-heap on (depth, seq).
type linkHeap []queuedLink

func (h linkHeap) Len() int { return len(h) }

func (h linkHeap) Less(i, j int) bool {
	if h[i].link.Depth != h[j].link.Depth {
		return h[i].link.Depth < h[j].link.Depth
	}
	return h[i].seq < h[j].seq
}

func (h linkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *linkHeap) Push(x any) {
	q, _ := x.(queuedLink)
	*h = append(*h, q)
}

func (h *linkHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
