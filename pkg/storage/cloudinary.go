package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadInfo is what the rest of the system knows about a stored asset.
type UploadInfo struct {
	URL      string
	Duration float64
}

// MediaStorage is the narrow port to the remote media store. Only the
// publish/update handlers talk to it; core logic never does.
type MediaStorage interface {
	// Upload stores the asset and returns its public URL plus, for video
	// assets, the duration in seconds.
	Upload(ctx context.Context, r io.Reader, folder, fileName string) (*UploadInfo, error)
	// Delete removes the asset addressed by its URL.
	Delete(ctx context.Context, fileURL string) error
}

type cloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage builds the Cloudinary-backed MediaStorage. The
// client reads CLOUDINARY_URL from the environment; it is constructed
// once at startup and injected everywhere it is needed.
func NewCloudinaryStorage(folder string) (MediaStorage, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	cld.Config.URL.Secure = true

	return &cloudinaryStorage{cld: cld, folder: folder}, nil
}

func (s *cloudinaryStorage) Upload(ctx context.Context, r io.Reader, folder, fileName string) (*UploadInfo, error) {
	if s == nil || s.cld == nil {
		return nil, fmt.Errorf("cloudinary storage is not initialized")
	}

	if folder == "" {
		folder = s.folder
	}

	publicID := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileName)

	params := uploader.UploadParams{
		Folder:         folder,
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(true),
		PublicID:       publicID,
		Overwrite:      api.Bool(false),
		ResourceType:   "auto",
	}

	resp, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return nil, fmt.Errorf("failed to upload asset to cloudinary: %w", err)
	}

	if resp.SecureURL == "" {
		return nil, fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}

	return &UploadInfo{
		URL:      resp.SecureURL,
		Duration: resp.Duration,
	}, nil
}

func (s *cloudinaryStorage) Delete(ctx context.Context, fileURL string) error {
	if s == nil || s.cld == nil {
		return fmt.Errorf("cloudinary storage is not initialized")
	}

	publicID := extractPublicID(fileURL)
	if publicID == "" {
		return fmt.Errorf("could not extract public ID from URL: %s", fileURL)
	}

	params := uploader.DestroyParams{
		PublicID:   publicID,
		Invalidate: api.Bool(true),
	}

	resp, err := s.cld.Upload.Destroy(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to delete asset from cloudinary: %w", err)
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}

	return nil
}

// extractPublicID pulls the public ID out of a Cloudinary delivery URL.
// Example: https://res.cloudinary.com/demo/video/upload/v123/folder/clip.mp4 -> folder/clip
func extractPublicID(fileURL string) string {
	u, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}

	parts := strings.Split(u.Path, "/")
	uploadIndex := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIndex = i
			break
		}
	}

	if uploadIndex == -1 || uploadIndex+1 >= len(parts) {
		return ""
	}

	relevantParts := parts[uploadIndex+1:]

	// Cloudinary versions look like v<number>; skip if present.
	if len(relevantParts) > 0 && strings.HasPrefix(relevantParts[0], "v") {
		relevantParts = relevantParts[1:]
	}

	if len(relevantParts) == 0 {
		return ""
	}

	publicIDWithExt := strings.Join(relevantParts, "/")
	ext := filepath.Ext(publicIDWithExt)
	return strings.TrimSuffix(publicIDWithExt, ext)
}
