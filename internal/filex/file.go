// Package filex holds file helpers: creating the directory of the client
// storage file and recognising event images by extension.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxImageSize caps event image uploads.
const MaxImageSize = 5 << 20

var ErrUnsupportedImage = errors.New("unsupported image type, use .jpg, .jpeg, .png or .webp")

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// ImageContentType maps an image file name to its MIME type by extension.
func ImageContentType(name string) (string, error) {
	ct, ok := imageTypes[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return "", ErrUnsupportedImage
	}
	return ct, nil
}

// ReadImage loads an event image and returns its bytes and content type.
func ReadImage(path string) ([]byte, string, error) {
	ct, err := ImageContentType(path)
	if err != nil {
		return nil, "", err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, "", err
	}
	if fi.Size() > MaxImageSize {
		return nil, "", fmt.Errorf("image is %d bytes, limit is %d", fi.Size(), MaxImageSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return data, ct, nil
}
