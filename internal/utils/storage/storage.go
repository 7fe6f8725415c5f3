package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"tmm-backend/internal/utils"

	"github.com/gabriel-vasile/mimetype"
)

var (
	AllowImage = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
	AllowProof = append(append([]string{}, AllowImage...), "application/pdf")

	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrUnknownDriver      = errors.New("unknown storage driver")
)

// BlobStore persists uploaded files and hands back a stable public link.
type BlobStore interface {
	Store(ctx context.Context, data []byte, name string, dir string) (string, error)
	Delete(ctx context.Context, link string) error
}

// DetectContentType sniffs data and checks it against allow. An empty allow
// list accepts anything.
func DetectContentType(data []byte, allow ...string) (string, error) {
	mt := mimetype.Detect(data)
	if len(allow) == 0 {
		return mt.String(), nil
	}
	for _, a := range allow {
		if mt.Is(a) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, mt.String())
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeName strips directories and anything outside [A-Za-z0-9._-].
func SafeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	return name
}

func objectKey(dir, name string) string {
	if dir == "" {
		return name
	}
	return strings.Trim(dir, "/") + "/" + name
}

// NewFromConfig builds the driver selected by STORAGE_DRIVER.
func NewFromConfig(ctx context.Context) (BlobStore, error) {
	switch driver := utils.GetConfig("STORAGE_DRIVER"); driver {
	case "", "local":
		return NewLocalStore(utils.GetConfig("UPLOAD_DIR"), utils.GetConfig("PUBLIC_UPLOAD_PATH")), nil
	case "s3":
		return NewAwsS3(ctx, S3Config{
			Bucket:    utils.GetConfig("AWS_S3_BUCKET"),
			Region:    utils.GetConfig("AWS_S3_REGION"),
			AccessKey: utils.GetConfig("AWS_ACCESS_KEY"),
			SecretKey: utils.GetConfig("AWS_SECRET_KEY"),
			Endpoint:  utils.GetConfig("AWS_S3_ENDPOINT"),
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
