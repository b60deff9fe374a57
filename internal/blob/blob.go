// Package blob stores profile photos and hands back a stable public URL.
package blob

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ErrNotOwned is returned by Delete for URLs the store did not produce.
var ErrNotOwned = errors.New("url does not belong to this store")

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// IsImage reports whether the upload declares an image content type.
func (u Upload) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(u.ContentType), "image/")
}

// Store is the blob-store collaborator.
type Store interface {
	// Upload saves the file under a fresh key and returns its public URL.
	Upload(ctx context.Context, owner string, up Upload) (string, error)
	// Delete removes a file previously returned by Upload.
	Delete(ctx context.Context, url string) error
}

// allowedExt maps accepted extensions; anything else is stored without one.
var allowedExt = map[string]string{
	".jpg":  ".jpg",
	".jpeg": ".jpg",
	".png":  ".png",
	".gif":  ".gif",
	".webp": ".webp",
	".heic": ".heic",
}

// objectKey builds folder/<owner-slug>-<uuid><ext>.
func objectKey(folder, owner, filename string) string {
	name := slug.Make(owner)
	if name == "" {
		name = "user"
	}
	ext := allowedExt[strings.ToLower(path.Ext(filename))]
	key := name + "-" + uuid.NewString() + ext
	if folder = strings.Trim(folder, "/"); folder != "" {
		key = folder + "/" + key
	}
	return key
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}

// keyFromURL strips base from url, or reports false when url is not under base.
func keyFromURL(base, url string) (string, bool) {
	prefix := strings.TrimRight(base, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}
