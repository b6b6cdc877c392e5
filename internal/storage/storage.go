package storage

import (
	"context"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"
)

const AvatarPrefix = "avatars"

var (
	ErrInvalidPath      = xerrors.Message("invalid object path")
	ErrUnsupportedImage = xerrors.Message("unsupported image type")
)

var avatarExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// Bucket stores binary objects addressable by a slash-separated path.
type Bucket interface {
	Upload(ctx context.Context, objectPath string, r io.Reader) error
	PublicURL(objectPath string) string
}

// DiskBucket keeps objects under a directory and serves them below a public base URL.
type DiskBucket struct {
	root    string
	baseURL string
}

func NewDiskBucket(root, publicBaseURL string) (*DiskBucket, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, xerrors.New(err)
	}
	return &DiskBucket{
		root:    root,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (b *DiskBucket) Upload(ctx context.Context, objectPath string, r io.Reader) error {
	clean, err := cleanPath(objectPath)
	if err != nil {
		return err
	}

	dst := filepath.Join(b.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return xerrors.New(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return xerrors.New(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, readerWithContext(ctx, r)); err != nil {
		tmp.Close()
		return xerrors.New(err)
	}
	if err := tmp.Close(); err != nil {
		return xerrors.New(err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (b *DiskBucket) PublicURL(objectPath string) string {
	return b.baseURL + "/storage/" + strings.TrimLeft(path.Clean("/"+objectPath), "/")
}

// Handler serves stored objects read-only; mount it under /storage/.
func (b *DiskBucket) Handler() http.Handler {
	return http.StripPrefix("/storage/", http.FileServer(http.Dir(b.root)))
}

// AvatarPath names an avatar object as avatars/<userID>-<random>.<ext>, with the
// extension taken from the sniffed content type. Only raster images are accepted.
func AvatarPath(userID uuid.UUID, contentType string) (string, error) {
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return "", xerrors.New(ErrUnsupportedImage)
	}
	return path.Join(AvatarPrefix, userID.String()+"-"+uuid.NewString()+"."+ext), nil
}

func cleanPath(objectPath string) (string, error) {
	if objectPath == "" || strings.Contains(objectPath, "\\") {
		return "", xerrors.New(ErrInvalidPath)
	}
	clean := path.Clean(objectPath)
	if strings.HasPrefix(clean, "/") || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", xerrors.New(ErrInvalidPath)
	}
	return clean, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
