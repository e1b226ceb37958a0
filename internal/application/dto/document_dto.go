package dto

import "time"

// UploadDocumentInput datos de subida ya extraídos del multipart.
type UploadDocumentInput struct {
	Name           string
	FileName       string // nombre original (para la extensión)
	ContentType    string
	Content        []byte
	ExpirationDate *time.Time
}

// DocumentResponse metadatos con el estado de vencimiento derivado.
type DocumentResponse struct {
	ID             string     `json:"id"`
	ClientID       string     `json:"client_id"`
	Name           string     `json:"name"`
	FileType       string     `json:"file_type"`
	FileSize       int64      `json:"file_size"`
	FileSizeLabel  string     `json:"file_size_label"`
	ExpirationDate string     `json:"expiration_date,omitempty"`
	Expiry         StatusMeta `json:"expiry"`
	DaysToExpire   *int       `json:"days_to_expire,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// DownloadedDocument contenido y metadatos para GET /api/documents/:id.
type DownloadedDocument struct {
	Name        string
	FileName    string
	ContentType string
	Content     []byte
}
