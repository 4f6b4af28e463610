package imagestore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	thumbWidth  = 320
	thumbHeight = 240
)

// ThumbPath returns the sibling thumbnail path for an image file
// (house.jpg -> house.thumb.jpg).
func ThumbPath(imagePath string) string {
	ext := filepath.Ext(imagePath)
	return strings.TrimSuffix(imagePath, ext) + ".thumb" + ext
}

// IsThumb reports whether a filename is a generated thumbnail, so directory
// scans do not thumbnail thumbnails.
func IsThumb(name string) bool {
	ext := filepath.Ext(name)
	return strings.HasSuffix(strings.TrimSuffix(name, ext), ".thumb")
}

// HasThumb reports whether the thumbnail for imagePath already exists.
func HasThumb(imagePath string) bool {
	_, err := os.Stat(ThumbPath(imagePath))
	return err == nil
}

// CreateThumb writes a bounded-fit thumbnail next to the source image. The
// source must decode as an image.
func CreateThumb(imagePath string) error {
	img, err := imaging.Open(imagePath)
	if err != nil {
		return err
	}
	thumb := imaging.Fit(img, thumbWidth, thumbHeight, imaging.Lanczos)
	return imaging.Save(thumb, ThumbPath(imagePath))
}

// SupportedImageExt reports whether a filename carries an image extension the
// thumbnailer handles.
func SupportedImageExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp":
		return true
	}
	return false
}
