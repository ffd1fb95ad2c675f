package ui

import (
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/charmbracelet/glamour"
)

// RenderCache memoizes rendered output keyed by a hash of its inputs.
// Once full, the oldest entry is evicted.
type RenderCache struct {
	mu      sync.Mutex
	entries map[uint64]string
	order   []uint64
	maxSize int
	hits    int
}

func NewRenderCache(maxSize int) *RenderCache {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &RenderCache{entries: make(map[uint64]string, maxSize), maxSize: maxSize}
}

// ComputeKey hashes the inputs with FNV-1a. Each part is length-prefixed so
// ("ab", "c") and ("a", "bc") differ.
func ComputeKey(parts ...string) uint64 {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write([]byte(strconv.Itoa(len(p))))
		h.Write([]byte{':'})
		h.Write([]byte(p))
	}
	return h.Sum64()
}

func (rc *RenderCache) Get(key uint64) (string, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	v, ok := rc.entries[key]
	if ok {
		rc.hits++
	}
	return v, ok
}

func (rc *RenderCache) Set(key uint64, content string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if _, ok := rc.entries[key]; !ok {
		if len(rc.order) >= rc.maxSize {
			oldest := rc.order[0]
			rc.order = rc.order[1:]
			delete(rc.entries, oldest)
		}
		rc.order = append(rc.order, key)
	}
	rc.entries[key] = content
}

// GetOrCompute returns the cached value or stores the result of compute.
func (rc *RenderCache) GetOrCompute(key uint64, compute func() string) string {
	if v, ok := rc.Get(key); ok {
		return v
	}
	v := compute()
	rc.Set(key, v)
	return v
}

func (rc *RenderCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.entries)
}

func (rc *RenderCache) Hits() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.hits
}

func (rc *RenderCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries = make(map[uint64]string, rc.maxSize)
	rc.order = nil
}

// Markdown renders assistant replies with glamour. Renderers are rebuilt
// when the wrap width or theme changes; output is cached per text.
type Markdown struct {
	cache    *RenderCache
	renderer *glamour.TermRenderer
	style    string
	width    int
}

func NewMarkdown(cache *RenderCache) *Markdown {
	if cache == nil {
		cache = NewRenderCache(256)
	}
	return &Markdown{cache: cache}
}

// Configure sets the glamour style and wrap width.
func (md *Markdown) Configure(style string, width int) {
	if style == md.style && width == md.width && md.renderer != nil {
		return
	}
	md.style, md.width = style, width
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		md.renderer = nil
		return
	}
	md.renderer = r
}

// Render returns the styled text, or the input unchanged when rendering
// is unavailable or fails.
func (md *Markdown) Render(text string) string {
	if md.renderer == nil || text == "" {
		return text
	}
	key := ComputeKey(md.style, strconv.Itoa(md.width), text)
	return md.cache.GetOrCompute(key, func() (result string) {
		defer func() {
			if r := recover(); r != nil {
				result = text
			}
		}()
		rendered, err := md.renderer.Render(text)
		if err != nil {
			return text
		}
		return rendered
	})
}
