package storage

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/pkg/errors"
)

// ImageStore uploads report photos and returns a public URL.
type ImageStore interface {
	UploadImage(ctx context.Context, file io.Reader, folder string) (string, error)
}

type Cloudinary struct {
	CLD *cloudinary.Cloudinary
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, errors.Wrap(err, "initializing cloudinary")
	}

	return &Cloudinary{CLD: cld}, nil
}

func (c *Cloudinary) UploadImage(ctx context.Context, file io.Reader, folder string) (string, error) {
	resp, err := c.CLD.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", errors.Wrap(err, "uploading image")
	}
	if resp.Error.Message != "" {
		return "", errors.Errorf("uploading image: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}
