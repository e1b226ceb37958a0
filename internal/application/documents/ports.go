package documents

import "context"

// Storage almacena el contenido binario de los documentos por clave.
// La implementación de producción vive en infrastructure/storage (afero).
type Storage interface {
	Put(ctx context.Context, key string, content []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
