// Package uploads stores the company logo on local disk.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

var (
	ErrExtensionNotAllowed = errors.New("extension_not_allowed")
	ErrInvalidImage        = errors.New("invalid_image")
	ErrInvalidFilename     = errors.New("invalid_filename")
)

// AllowedExtensions is the logo extension allow-list.
var AllowedExtensions = []string{"png", "jpg", "jpeg", "gif", "svg"}

// TimestampLayout prefixes stored filenames.
const TimestampLayout = "20060102_150405"

// Extension returns the lower-cased extension without the dot.
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// Allowed reports whether filename has an allow-listed extension.
func Allowed(filename string) bool {
	ext := Extension(filename)
	for _, a := range AllowedExtensions {
		if a == ext {
			return true
		}
	}
	return false
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces a client-supplied name to a flat ASCII filename:
// path separators and whitespace become underscores, other characters
// outside [A-Za-z0-9_.-] are dropped, leading and trailing dots and
// underscores are trimmed.
func SecureFilename(name string) string {
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// Saved describes a stored logo.
type Saved struct {
	Filename string
	Path     string
}

// LogoStore writes logos into Dir. Raster images wider than MaxWidth are
// downscaled; SVG files are stored as uploaded.
type LogoStore struct {
	Dir      string
	MaxWidth int
	Now      func() time.Time
}

func NewLogoStore(dir string, maxWidth int) *LogoStore {
	return &LogoStore{Dir: dir, MaxWidth: maxWidth, Now: time.Now}
}

// Save stores the upload under "<timestamp>_<secure name>".
func (s *LogoStore) Save(filename string, r io.Reader) (Saved, error) {
	if !Allowed(filename) {
		return Saved{}, fmt.Errorf("%w: %q", ErrExtensionNotAllowed, filename)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return Saved{}, fmt.Errorf("create upload dir: %w", err)
	}
	ext := Extension(filename)
	base := SecureFilename(filename)
	if base == "" || Extension(base) != ext {
		base = "logo." + ext
	}
	name := s.now().Format(TimestampLayout) + "_" + base
	path := filepath.Join(s.Dir, name)

	var err error
	if ext == "svg" {
		err = copyFile(path, r)
	} else {
		err = s.saveRaster(path, r)
	}
	if err != nil {
		_ = os.Remove(path)
		return Saved{}, err
	}
	return Saved{Filename: name, Path: path}, nil
}

func (s *LogoStore) saveRaster(path string, r io.Reader) error {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if s.MaxWidth > 0 && img.Bounds().Dx() > s.MaxWidth {
		img = imaging.Resize(img, s.MaxWidth, 0, imaging.Lanczos)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save logo: %w", err)
	}
	return nil
}

func copyFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create logo: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write logo: %w", err)
	}
	return f.Close()
}

// Remove deletes a stored file. A missing file is not an error.
func (s *LogoStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Path resolves a stored filename inside Dir, rejecting anything that is
// not a plain file name.
func (s *LogoStore) Path(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || filename != SecureFilename(filename) {
		return "", ErrInvalidFilename
	}
	return filepath.Join(s.Dir, filename), nil
}

func (s *LogoStore) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
