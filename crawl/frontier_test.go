package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsalmi/tapio"
	"github.com/vsalmi/tapio/crawl"
)

func TestFrontier_PushPop(t *testing.T) {
	t.Parallel()

	t.Run("pops shallowest depth first", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)

		f.Push(tapio.DiscoveredLink{URL: "https://migri.fi/deep", Depth: 2})
		f.Push(tapio.DiscoveredLink{URL: "https://migri.fi/shallow", Depth: 0})
		f.Push(tapio.DiscoveredLink{URL: "https://migri.fi/mid", Depth: 1})

		link, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://migri.fi/shallow", link.URL)

		link, ok = f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://migri.fi/mid", link.URL)

		link, ok = f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://migri.fi/deep", link.URL)
	})

	t.Run("keeps FIFO order within one depth", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)

		f.Push(tapio.DiscoveredLink{URL: "https://migri.fi/a", Depth: 1})
		f.Push(tapio.DiscoveredLink{URL: "https://migri.fi/b", Depth: 1})
		f.Push(tapio.DiscoveredLink{URL: "https://migri.fi/c", Depth: 1})

		var got []string
		for {
			link, ok := f.Pop()
			if !ok {
				break
			}
			got = append(got, link.URL)
		}

		assert.Equal(t, []string{
			"https://migri.fi/a",
			"https://migri.fi/b",
			"https://migri.fi/c",
		}, got)
	})

	t.Run("deduplicates URLs", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)

		assert.True(t, f.Push(tapio.DiscoveredLink{URL: "https://migri.fi/page", Depth: 0}))
		assert.False(t, f.Push(tapio.DiscoveredLink{URL: "https://migri.fi/page", Depth: 1}))
		assert.Equal(t, 1, f.Len())
	})

	t.Run("treats URLs differing only by fragment as duplicates", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)

		assert.True(t, f.Push(tapio.DiscoveredLink{URL: "https://migri.fi/page#a", Depth: 0}))
		assert.False(t, f.Push(tapio.DiscoveredLink{URL: "https://migri.fi/page#b", Depth: 0}))

		link, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://migri.fi/page", link.URL)
	})

	t.Run("pop on empty frontier returns false", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)

		_, ok := f.Pop()

		assert.False(t, ok)
	})

	t.Run("seen reports queued URLs ignoring fragments", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)

		f.Push(tapio.DiscoveredLink{URL: "https://migri.fi/page", Depth: 0})

		assert.True(t, f.Seen("https://migri.fi/page"))
		assert.True(t, f.Seen("https://migri.fi/page#section"))
		assert.False(t, f.Seen("https://migri.fi/other"))
	})
}

func TestFrontier_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(10000, 0.01)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				f.Push(tapio.DiscoveredLink{
					URL:   fmt.Sprintf("https://migri.fi/%d/%d", i, j),
					Depth: j % 3,
				})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, f.Len())
}
