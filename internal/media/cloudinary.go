// Package media provides optional archival of uploaded images.
package media

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryArchiver uploads images to Cloudinary and returns their
// public URLs. Archival is best-effort; callers treat failures as soft.
type CloudinaryArchiver struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary creates an archiver from Cloudinary credentials.
func NewCloudinary(cloudName, apiKey, apiSecret string) (*CloudinaryArchiver, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryArchiver{cld: cld}, nil
}

// Archive uploads the image into the given folder and returns its secure URL.
func (a *CloudinaryArchiver) Archive(ctx context.Context, image []byte, folder string) (string, error) {
	result, err := a.cld.Upload.Upload(ctx, bytes.NewReader(image), uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	return result.SecureURL, nil
}
