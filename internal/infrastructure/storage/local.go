package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"careerlink/internal/config"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

const PublicPrefix = "/uploads/"

var (
	ErrEmptyFile       = errors.New("empty file")
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrInvalidFile     = errors.New("invalid file")
)

// Kind describes one upload target: the multipart field it arrives on, the
// sub-directory it lands in and what content it may carry.
type Kind struct {
	Field string
	Dir   string
	Exts  []string
	MIMEs []string
	PDF   bool
}

var (
	ProfileImage = Kind{
		Field: "profileImage",
		Dir:   "profiles",
		Exts:  []string{".jpg", ".jpeg", ".png"},
		MIMEs: []string{"image/jpeg", "image/png"},
	}
	Logo = Kind{
		Field: "logo",
		Dir:   "logos",
		Exts:  []string{".jpg", ".jpeg", ".png"},
		MIMEs: []string{"image/jpeg", "image/png"},
	}
	Resume = Kind{
		Field: "resume",
		Dir:   "resumes",
		Exts:  []string{".pdf"},
		MIMEs: []string{"application/pdf"},
		PDF:   true,
	}
)

// Allowed lists the accepted MIME types, used in error messages.
func (k Kind) Allowed() string {
	return strings.Join(k.MIMEs, ", ")
}

type Local struct {
	root     string
	maxBytes int64
	logger   *slog.Logger
	now      func() time.Time
}

func NewLocal(cfg config.UploadConfig, logger *slog.Logger) (*Local, error) {
	if logger == nil {
		logger = slog.Default()
	}
	root := strings.TrimSpace(cfg.Dir)
	if root == "" {
		root = "./uploads"
	}
	for _, k := range []Kind{ProfileImage, Logo, Resume} {
		if err := os.MkdirAll(filepath.Join(root, k.Dir), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", k.Dir, err)
		}
	}
	limit := cfg.MaxBytes
	if limit <= 0 {
		limit = 5 * 1024 * 1024
	}
	return &Local{root: root, maxBytes: limit, logger: logger, now: time.Now}, nil
}

func (s *Local) Root() string { return s.root }

// Save checks src against k and writes it under a generated name. The returned
// path is web-relative, e.g. /uploads/resumes/resume-1700000000000-42.pdf.
func (s *Local) Save(k Kind, originalName string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !slices.Contains(k.Exts, ext) {
		return "", fmt.Errorf("%w: allowed types: %s", ErrUnsupportedType, k.Allowed())
	}

	data, err := io.ReadAll(io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, s.maxBytes)
	}

	mt := mimetype.Detect(data)
	if !slices.ContainsFunc(k.MIMEs, mt.Is) {
		return "", fmt.Errorf("%w: got %s, allowed types: %s", ErrUnsupportedType, mt.String(), k.Allowed())
	}
	if k.PDF {
		if err := checkPDF(data); err != nil {
			return "", err
		}
	}

	name := k.Field + "-" + strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + strconv.Itoa(rand.IntN(1e9)) + ext
	dst := filepath.Join(s.root, k.Dir, name)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return PublicPrefix + k.Dir + "/" + name, nil
}

func checkPDF(data []byte) error {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if r.NumPage() == 0 {
		return fmt.Errorf("%w: pdf has no pages", ErrInvalidFile)
	}
	return nil
}

// Remove deletes a file previously returned by Save. A missing file is not an
// error; paths outside the upload root are ignored.
func (s *Local) Remove(publicPath string) error {
	if publicPath == "" {
		return nil
	}
	full, ok := s.resolve(publicPath)
	if !ok {
		s.logger.Warn("refusing to remove path outside uploads", "path", publicPath)
		return nil
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Local) resolve(publicPath string) (string, bool) {
	if !strings.HasPrefix(publicPath, PublicPrefix) {
		return "", false
	}
	rel := path.Clean(strings.TrimPrefix(publicPath, PublicPrefix))
	if rel == "." || strings.HasPrefix(rel, "..") || path.IsAbs(rel) {
		return "", false
	}
	return filepath.Join(s.root, filepath.FromSlash(rel)), true
}
