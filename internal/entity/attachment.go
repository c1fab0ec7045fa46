package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/lawliet8886/RPA/constants"
)

// Attachment is a stored reference to a picked document/image for a worker.
// Content is read through its storage reference only at export time; the
// recognized text travels with the attachment so extraction can be replayed.
type Attachment struct {
	ID          uuid.UUID             `json:"id"`
	WorkerID    uuid.UUID             `json:"worker_id"`
	Category    constants.DocCategory `json:"category"`
	StorageRef  string                `json:"storage_ref"`
	DisplayName string                `json:"display_name"`
	MimeType    string                `json:"mime_type"`
	OCRText     string                `json:"ocr_text"`
	CreatedAt   time.Time             `json:"created_at"`
}
