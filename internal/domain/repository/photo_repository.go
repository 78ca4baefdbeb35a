package repository

// PhotoRepository turns captured photo bytes into opaque string
// references and back. The core never interprets reference contents
// beyond presence checks.
type PhotoRepository interface {
	BlobToReference(data []byte, mimeType string) (string, error)
	ReferenceToBlob(ref string) ([]byte, string, error)
}
