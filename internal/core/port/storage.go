package port

// TempStore holds short-lived media files between generation and upload.
type TempStore interface {
	Save(data []byte, extension string) (string, error)
	Read(path string) ([]byte, error)
	Remove(path string)
}
