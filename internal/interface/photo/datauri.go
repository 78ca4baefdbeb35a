// Package photo implements the photo-capture capability as data-URI
// references, so staff and passenger uploads travel as plain strings
// through every store and over the tracer bridge.
package photo

import (
	"encoding/base64"
	"fmt"
	"strings"

	"baggage-service/internal/domain/repository"
)

// DataURIRepository encodes photo blobs into "data:<mime>;base64,<data>"
// references and back.
type DataURIRepository struct{}

// NewDataURIRepository creates the data-URI photo codec
func NewDataURIRepository() *DataURIRepository {
	return &DataURIRepository{}
}

var _ repository.PhotoRepository = (*DataURIRepository)(nil)

// BlobToReference encodes raw bytes as a data URI
func (DataURIRepository) BlobToReference(data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty photo blob")
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ReferenceToBlob decodes a data URI back into bytes and a MIME type,
// for re-submission to the visual-analysis capabilities
func (DataURIRepository) ReferenceToBlob(ref string) ([]byte, string, error) {
	if !strings.HasPrefix(ref, "data:") {
		return nil, "", fmt.Errorf("not a data URI reference")
	}

	meta, payload, ok := strings.Cut(ref[len("data:"):], ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URI")
	}

	mimeType := strings.TrimSuffix(meta, ";base64")
	if mimeType == meta {
		return nil, "", fmt.Errorf("unsupported data URI encoding")
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode data URI: %w", err)
	}
	return data, mimeType, nil
}
