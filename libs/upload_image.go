package libs

import (
	"fmt"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"sneaker-shop/config"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidateImageFile checks a single upload against the image policy: the
// declared MIME type must start with "image/", the extension must be one of
// the allowed image extensions, and the file must not exceed maxSize bytes.
func ValidateImageFile(header *multipart.FileHeader, maxSize int64) error {
	if header.Size > maxSize {
		return fmt.Errorf("file %q exceeds the maximum size of %d bytes", header.Filename, maxSize)
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("file %q is not an image (got %q)", header.Filename, contentType)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return fmt.Errorf("file %q has an unsupported extension. Only jpeg, jpg, png, gif, webp are allowed", header.Filename)
	}

	return nil
}

// SaveProductImages validates and stores a batch of uploaded images in the
// flat upload directory and returns their public /uploads paths. A single
// invalid file fails the whole batch; files already written for this batch
// are removed again. Files orphaned by a later database failure are not.
func SaveProductImages(c *gin.Context, files []*multipart.FileHeader) ([]string, error) {
	cfg := config.AppConfig

	if len(files) > cfg.MaxUploadFiles {
		return nil, fmt.Errorf("too many files: at most %d images per request", cfg.MaxUploadFiles)
	}

	saved := []string{}
	for _, header := range files {
		if err := ValidateImageFile(header, cfg.MaxUploadSize); err != nil {
			removeAll(saved)
			return nil, err
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		filename := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
		path := filepath.Join(cfg.UploadDir, filename)

		if err := c.SaveUploadedFile(header, path); err != nil {
			removeAll(saved)
			return nil, fmt.Errorf("failed to save %q: %w", header.Filename, err)
		}

		saved = append(saved, "/uploads/"+filename)
	}

	return saved, nil
}

// RemoveUploadedFile deletes a stored image by its public /uploads path.
// Missing files are not an error.
func RemoveUploadedFile(publicPath string) {
	if !strings.HasPrefix(publicPath, "/uploads/") {
		return
	}
	name := strings.TrimPrefix(publicPath, "/uploads/")
	os.Remove(filepath.Join(config.AppConfig.UploadDir, filepath.Base(name)))
}

func removeAll(publicPaths []string) {
	for _, p := range publicPaths {
		RemoveUploadedFile(p)
	}
}
