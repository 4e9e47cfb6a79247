// Package media caches user avatar images in object storage. The upstream
// identity API hands back avatar URLs on third-party hosts; caching them keeps
// profile rendering independent of those hosts.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	_ "golang.org/x/image/webp"

	"github.com/vistago/vistago-api/internal/domain"
)

// ErrAvatarNotCached is returned when no cached avatar exists for the user.
var ErrAvatarNotCached = errors.New("avatar not cached")

type AvatarCache struct {
	store     *minio.Client
	bucket    string
	publicURL string
	maxBytes  int64
	fetch     *http.Client
}

func NewAvatarCache(store *minio.Client, bucket, publicURL string, maxBytes int64) *AvatarCache {
	if maxBytes <= 0 {
		maxBytes = 5 * 1024 * 1024
	}
	return &AvatarCache{
		store:     store,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxBytes:  maxBytes,
		fetch:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Prime downloads the user's avatar, validates it decodes as an image, and
// stores it under a per-user object key. Returns the cached object URL.
func (c *AvatarCache) Prime(ctx context.Context, user domain.User) (string, error) {
	if strings.TrimSpace(user.Image) == "" {
		return "", errors.New("media: user has no avatar url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, user.Image, nil)
	if err != nil {
		return "", fmt.Errorf("media: build avatar request: %w", err)
	}
	res, err := c.fetch.Do(req)
	if err != nil {
		return "", fmt.Errorf("media: fetch avatar: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media: avatar fetch returned status %d", res.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, c.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("media: read avatar: %w", err)
	}
	if int64(len(data)) > c.maxBytes {
		return "", fmt.Errorf("media: avatar exceeds %d bytes", c.maxBytes)
	}

	contentType, err := validateImage(data)
	if err != nil {
		return "", err
	}

	objectName := objectKey(user.ID)
	_, err = c.store.PutObject(ctx, c.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("media: store avatar: %w", err)
	}
	return c.objectURL(objectName), nil
}

// URL returns the cached avatar URL for the user, or ErrAvatarNotCached.
func (c *AvatarCache) URL(ctx context.Context, userID int64) (string, error) {
	objectName := objectKey(userID)
	if _, err := c.store.StatObject(ctx, c.bucket, objectName, minio.StatObjectOptions{}); err != nil {
		return "", ErrAvatarNotCached
	}
	return c.objectURL(objectName), nil
}

func (c *AvatarCache) objectURL(objectName string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + c.bucket + "/" + objectName
	}
	return strings.TrimRight(c.store.EndpointURL().String(), "/") + "/" + c.bucket + "/" + objectName
}

func objectKey(userID int64) string {
	return fmt.Sprintf("users/%d/avatar", userID)
}

// validateImage confirms the payload decodes as a supported image and returns
// its content type. gif/jpeg/png register via the standard decoders, webp via
// golang.org/x/image.
func validateImage(data []byte) (string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("media: decode avatar: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", fmt.Errorf("media: invalid avatar dimensions %dx%d", cfg.Width, cfg.Height)
	}
	if format == "jpg" {
		format = "jpeg"
	}
	return "image/" + format, nil
}
