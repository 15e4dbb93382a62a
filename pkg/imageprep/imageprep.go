package imageprep

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	pkgError "github.com/postdeck/pkg/error"
)

// DefaultThumbnailWidth bounds card-size copies when no width is configured.
const DefaultThumbnailWidth = 512

// allowedTypes maps sniffed content types to the extension used on disk.
// The backend only accepts these three formats on upload.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// SniffExtension inspects the first bytes of an upload and returns the file
// extension for its real content type, rejecting anything that is not a
// JPEG, PNG or WebP image.
func SniffExtension(data []byte) (string, error) {
	ext, ok := allowedTypes[http.DetectContentType(data)]
	if !ok {
		return "", pkgError.ValidationError("image_file: only JPEG, PNG or WebP images are allowed.")
	}
	return ext, nil
}

// SaveUpload validates an uploaded image and stores it under dir with a
// generated name. The extension comes from content sniffing, not from the
// client-supplied filename.
func SaveUpload(file *multipart.FileHeader, dir string, maxBytes int64) (string, error) {
	if file == nil {
		return "", pkgError.ValidationError("image_file: cannot be blank.")
	}
	if maxBytes > 0 && file.Size > maxBytes {
		return "", pkgError.ValidationError(fmt.Sprintf("image_file: exceeds the %d byte limit.", maxBytes))
	}

	src, err := file.Open()
	if err != nil {
		return "", pkgError.ValidationError(fmt.Sprintf("image_file: %v", err))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", pkgError.ValidationError(fmt.Sprintf("image_file: %v", err))
	}

	ext, err := SniffExtension(data)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, uuid.NewString()+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Thumbnail writes a width-bounded copy next to the original for calendar
// card rendering and returns its path. WebP sources are re-encoded as PNG
// since only decoding is available for that format.
func Thumbnail(srcPath string, width int) (string, error) {
	if width <= 0 {
		width = DefaultThumbnailWidth
	}

	img, err := imaging.Open(srcPath)
	if err != nil {
		return "", err
	}
	thumb := imaging.Resize(img, width, 0, imaging.Lanczos)

	ext := filepath.Ext(srcPath)
	outExt := ext
	if strings.EqualFold(ext, ".webp") {
		outExt = ".png"
	}
	out := strings.TrimSuffix(srcPath, ext) + "_thumb" + outExt
	if err := imaging.Save(thumb, out); err != nil {
		return "", err
	}
	return out, nil
}
