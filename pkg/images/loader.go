package images

import (
	"bytes"
	"container/list"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// defaultCacheCapacity bounds the number of decoded images the global
// cache holds at once. Past this, the least-recently-used decoded image
// is evicted to bound memory for pages with many large images.
const defaultCacheCapacity = 256

type imageLRUEntry struct {
	key string
	img image.Image
}

// imageLRU is a bounded, concurrency-safe LRU cache of decoded images,
// grounded on the teacher's pattern in Krispeckt-glimo's font_lru.go
// (container/list for recency order, a map for O(1) lookup, one mutex).
type imageLRU struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List
}

func newImageLRU(capacity int) *imageLRU {
	if capacity < 1 {
		capacity = 1
	}
	return &imageLRU{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

func (c *imageLRU) get(key string) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToBack(el)
		return el.Value.(*imageLRUEntry).img, true
	}
	return nil, false
}

func (c *imageLRU) put(key string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.order.MoveToBack(el)
		el.Value.(*imageLRUEntry).img = img
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Front()
		if oldest != nil {
			ent := oldest.Value.(*imageLRUEntry)
			delete(c.items, ent.key)
			c.order.Remove(oldest)
		}
	}

	el := c.order.PushBack(&imageLRUEntry{key: key, img: img})
	c.items[key] = el
}

// Global image cache
var globalCache = newImageLRU(defaultCacheCapacity)

// IsDataURI returns true if the string is a data URI.
func IsDataURI(uri string) bool {
	return strings.HasPrefix(uri, "data:")
}

// LoadImageFromDataURI decodes a data URI and returns the embedded image.
// Format: data:[<mediatype>][;base64],<data>
func LoadImageFromDataURI(uri string) (image.Image, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, fmt.Errorf("not a data URI")
	}

	// Split off "data:" prefix
	rest := uri[5:]

	// Find the comma separating metadata from data
	commaIdx := strings.Index(rest, ",")
	if commaIdx < 0 {
		return nil, fmt.Errorf("invalid data URI: no comma found")
	}

	meta := rest[:commaIdx]
	encoded := rest[commaIdx+1:]

	isBase64 := strings.HasSuffix(meta, ";base64")

	var data []byte
	if isBase64 {
		// URL-decode the base64 data first (handles %2F, %2B, etc.)
		if decoded, err := url.PathUnescape(encoded); err == nil {
			encoded = decoded
		}
		var err error
		data, err = base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("base64 decode error: %w", err)
		}
	} else {
		data = []byte(encoded)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image decode error: %w", err)
	}

	return img, nil
}

// LoadImage loads an image from the filesystem or a data URI.
func LoadImage(path string) (image.Image, error) {
	if img, ok := globalCache.get(path); ok {
		return img, nil
	}

	if IsDataURI(path) {
		img, err := LoadImageFromDataURI(path)
		if err != nil {
			return nil, err
		}
		globalCache.put(path, img)
		return img, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}

	globalCache.put(path, img)
	return img, nil
}

// GetImageDimensions returns the width and height of an image
func GetImageDimensions(path string) (width, height int, err error) {
	img, err := LoadImage(path)
	if err != nil {
		return 0, 0, err
	}

	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}

// ImageFetcher is a function type that fetches raw bytes for an image URI.
// It is used to support network-based image loading without creating a
// dependency on the resource package.
type ImageFetcher func(uri string) ([]byte, error)

// DecodeImageBytes decodes an image from raw bytes.
func DecodeImageBytes(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image decode error: %w", err)
	}
	return img, nil
}

// LoadImageWithFetcher loads an image using the provided fetcher.
// The fetcher is used for both network URIs and relative paths.
// Falls back to LoadImage for data URIs and when no fetcher is provided.
func LoadImageWithFetcher(path string, fetcher ImageFetcher) (image.Image, error) {
	// Data URIs are handled by LoadImage
	if IsDataURI(path) {
		return LoadImage(path)
	}

	// If no fetcher, use regular loading (relative paths resolve against the working directory)
	if fetcher == nil {
		return LoadImage(path)
	}

	// For absolute paths that exist on disk, try loading directly first
	if filepath.IsAbs(path) {
		if img, err := LoadImage(path); err == nil {
			return img, nil
		}
	}

	if img, ok := globalCache.get(path); ok {
		return img, nil
	}

	// Fetch via network
	data, err := fetcher(path)
	if err != nil {
		return nil, fmt.Errorf("fetching image %s: %w", path, err)
	}

	img, err := DecodeImageBytes(data)
	if err != nil {
		return nil, err
	}

	globalCache.put(path, img)
	return img, nil
}

// GetImageDimensionsWithFetcher returns the width and height of an image,
// using the provided fetcher for network URIs.
func GetImageDimensionsWithFetcher(path string, fetcher ImageFetcher) (width, height int, err error) {
	img, err := LoadImageWithFetcher(path, fetcher)
	if err != nil {
		return 0, 0, err
	}

	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}

// isNetworkURI returns true if the string looks like an HTTP/HTTPS URL.
func isNetworkURI(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// NewFilesystemFetcher creates an ImageFetcher that resolves relative paths
// against a base URL (typically the document's file path).
func NewFilesystemFetcher(baseURL string) ImageFetcher {
	return func(uri string) ([]byte, error) {
		// Don't resolve data URIs or absolute network URLs
		if IsDataURI(uri) || isNetworkURI(uri) {
			return nil, fmt.Errorf("filesystem fetcher only handles file paths")
		}

		// Resolve relative paths against base URL
		resolvedPath := uri
		if baseURL != "" && !filepath.IsAbs(uri) {
			baseDir := filepath.Dir(baseURL)
			resolvedPath = filepath.Join(baseDir, uri)
		}

		// Read the file
		data, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, fmt.Errorf("reading file %s: %w", resolvedPath, err)
		}

		return data, nil
	}
}
