package worklist

import "context"

//go:generate mockgen -source=store.go -destination=mock_worklist/mock_store.go -package=mock_worklist
type Store interface {
	// ListNames returns the entry names of dir, files and directories alike
	ListNames(ctx context.Context, dir string) ([]string, error)
	ReadDocument(ctx context.Context, path string) ([]byte, error)
	WriteDocument(ctx context.Context, path string, data []byte) error
}
