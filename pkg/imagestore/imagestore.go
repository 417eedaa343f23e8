// Package imagestore persists event image uploads and their thumbnails on
// local disk. Paths returned by the store are relative to its root so the
// database never records an absolute filesystem layout.
package imagestore

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// Thumbnails are bounded to this box, aspect ratio preserved.
const (
	ThumbnailMaxWidth  = 300
	ThumbnailMaxHeight = 300
	thumbnailQuality   = 80
)

// SavedImage describes a stored upload.
type SavedImage struct {
	ImagePath     string
	ThumbnailPath string
	Size          int64
	Width         int
	Height        int
}

// Store is the persistence boundary for event images.
type Store interface {
	Save(eventID uint, originalName, mimeType string, data []byte) (*SavedImage, error)
	Remove(imagePath, thumbnailPath string) error
}

// DiskStore writes images under root/calendar/events/{eventID}/.
type DiskStore struct {
	root string
}

var _ Store = (*DiskStore)(nil)

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

// Save writes the original bytes and, for decodable raster formats, a JPEG
// thumbnail next to it. Formats the stdlib cannot decode (webp) are stored
// without a thumbnail.
func (s *DiskStore) Save(eventID uint, originalName, mimeType string, data []byte) (*SavedImage, error) {
	dir := filepath.Join(s.root, "calendar", "events", fmt.Sprint(eventID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}

	base := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.NewString()[:8], extensionFor(originalName, mimeType))
	fullPath := filepath.Join(dir, base)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}

	saved := &SavedImage{
		ImagePath: filepath.ToSlash(filepath.Join("calendar", "events", fmt.Sprint(eventID), base)),
		Size:      int64(len(data)),
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return saved, nil
	}
	bounds := img.Bounds()
	saved.Width = bounds.Dx()
	saved.Height = bounds.Dy()

	thumb := resize.Thumbnail(ThumbnailMaxWidth, ThumbnailMaxHeight, img, resize.Lanczos3)
	thumbName := "thumb_" + strings.TrimSuffix(base, filepath.Ext(base)) + ".jpg"
	thumbFile, err := os.Create(filepath.Join(dir, thumbName))
	if err != nil {
		return nil, fmt.Errorf("create thumbnail: %w", err)
	}
	defer thumbFile.Close()
	if err := jpeg.Encode(thumbFile, thumb, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	saved.ThumbnailPath = filepath.ToSlash(filepath.Join("calendar", "events", fmt.Sprint(eventID), thumbName))
	return saved, nil
}

// Remove deletes the stored image and its thumbnail. Missing files are not an
// error; removal is retried by callers on cleanup paths.
func (s *DiskStore) Remove(imagePath, thumbnailPath string) error {
	for _, p := range []string{imagePath, thumbnailPath} {
		if p == "" {
			continue
		}
		if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(p))); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove image file: %w", err)
		}
	}
	return nil
}

func extensionFor(originalName, mimeType string) string {
	if ext := strings.ToLower(filepath.Ext(originalName)); ext != "" {
		return ext
	}
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ".bin"
}
