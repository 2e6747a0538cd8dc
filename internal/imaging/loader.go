package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"
)

// FloorPlanCache provides thread-safe caching of decoded floor-plan images
// so batch runs over the same plans avoid redundant disk reads.
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). The cache key is the exact path string; relative and absolute
// paths to the same file produce separate entries.
type FloorPlanCache struct {
	mu    sync.RWMutex
	plans map[string]image.Image
}

// NewFloorPlanCache creates an empty cache ready for concurrent use.
func NewFloorPlanCache() *FloorPlanCache {
	return &FloorPlanCache{
		plans: make(map[string]image.Image),
	}
}

// Load retrieves a floor plan from the cache or decodes it from disk.
//
// Supported formats are PNG, JPEG, and GIF. Returns an error if the file
// cannot be opened or is not a valid image in a registered format.
func (c *FloorPlanCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.plans[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open floor plan: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode floor plan: %w", err)
	}

	c.mu.Lock()
	c.plans[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all cached plans, freeing the associated memory.
func (c *FloorPlanCache) Clear() {
	c.mu.Lock()
	c.plans = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes one cached plan by its path. Unknown paths are ignored.
func (c *FloorPlanCache) Evict(path string) {
	c.mu.Lock()
	delete(c.plans, path)
	c.mu.Unlock()
}

// PlanInfo contains metadata about a loaded floor-plan file.
type PlanInfo struct {
	// Width is the plan width in pixels.
	Width int `json:"width"`

	// Height is the plan height in pixels.
	Height int `json:"height"`

	// Format is the detected image format: "png", "jpeg", "gif", or
	// "unknown". Detection is by file extension, not file contents.
	Format string `json:"format"`

	// Grayscale reports whether the decoded image carries no color channels.
	// A grayscale plan yields no color-detector signal.
	Grayscale bool `json:"grayscale"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadPlanInfo loads a floor plan (caching it) and returns its metadata.
func LoadPlanInfo(cache *FloorPlanCache, path string) (*PlanInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	gray := false
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		gray = true
	}

	bounds := img.Bounds()
	return &PlanInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		Grayscale:     gray,
		FileSizeBytes: stat.Size(),
	}, nil
}
