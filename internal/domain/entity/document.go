package entity

import "time"

// Document metadatos de un documento de cliente. Los bytes viven en el almacenamiento.
// El estado de vencimiento nunca se persiste; se deriva de ExpirationDate.
type Document struct {
	ID             string
	FirmID         string
	ClientID       string
	UserID         string
	Name           string
	FilePath       string // clave en el almacenamiento
	FileSize       int64
	FileType       string // MIME
	ExpirationDate *time.Time
	CreatedAt      time.Time
}
