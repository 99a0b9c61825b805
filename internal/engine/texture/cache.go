package texture

import (
	"crypto/sha1"
	"encoding/hex"
	"image"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/skinlab/internal/asset"
	"github.com/Faultbox/skinlab/internal/logger"
)

// Cache uploads each distinct texture once. Handle 0 means "no texture".
type Cache struct {
	baseDir  string
	handles  map[string]uint32
	upload   func(*image.RGBA) uint32
	readFile func(string) ([]byte, error)
}

// NewCache creates a cache resolving relative paths against baseDir.
func NewCache(baseDir string) *Cache {
	return &Cache{
		baseDir:  baseDir,
		handles:  make(map[string]uint32),
		upload:   Upload,
		readFile: os.ReadFile,
	}
}

// Get returns the GL handle for ref, loading it on first use. Failures are
// logged and cached as 0 so a broken texture is reported once.
func (c *Cache) Get(ref asset.TextureRef) uint32 {
	if ref.Empty() {
		return 0
	}
	key := c.key(ref)
	if id, ok := c.handles[key]; ok {
		return id
	}

	id, err := c.load(ref)
	if err != nil {
		logger.Named("texture").Warn("texture load failed", zap.String("texture", key), zap.Error(err))
	}
	c.handles[key] = id
	return id
}

// Len returns the number of cached entries, failed loads included.
func (c *Cache) Len() int {
	return len(c.handles)
}

// Release deletes every uploaded texture.
func (c *Cache) Release() {
	ids := make([]uint32, 0, len(c.handles))
	for _, id := range c.handles {
		if id != 0 {
			ids = append(ids, id)
		}
	}
	Delete(ids...)
	clear(c.handles)
}

func (c *Cache) key(ref asset.TextureRef) string {
	if len(ref.Data) > 0 {
		sum := sha1.Sum(ref.Data)
		return "data:" + hex.EncodeToString(sum[:])
	}
	return c.resolve(ref.Path)
}

func (c *Cache) resolve(path string) string {
	if filepath.IsAbs(path) || c.baseDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(c.baseDir, path)
}

func (c *Cache) load(ref asset.TextureRef) (uint32, error) {
	data := ref.Data
	if len(data) == 0 {
		var err error
		if data, err = c.readFile(c.resolve(ref.Path)); err != nil {
			return 0, err
		}
	}
	img, err := Decode(data, ref.Path, ref.MimeType)
	if err != nil {
		return 0, err
	}
	return c.upload(img), nil
}
