package restaurant

import (
	"errors"
	"path/filepath"
	"strings"
)

var allowedLogoExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

var (
	ErrLogoExtensionMissing = errors.New("file extension missing")
	ErrLogoTypeNotAllowed   = errors.New("file type not allowed")
)

// LogoExtension returns the lower-cased extension without the dot.
func LogoExtension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == "" {
		return "", ErrLogoExtensionMissing
	}

	if !allowedLogoExt[ext] {
		return "", ErrLogoTypeNotAllowed
	}

	return strings.TrimPrefix(ext, "."), nil
}
