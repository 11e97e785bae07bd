package images

import "time"

// maxUploadBytes caps image uploads at 5 MB.
const maxUploadBytes = 5 << 20

// Image is the metadata of a stored image. Binary data is fetched
// separately to keep listings light.
type Image struct {
	ImageID     int64     `json:"image_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	FileSize    int64     `json:"file_size"`
	CreatedAt   time.Time `json:"created_at"`
}

// ImageData is the raw payload for serving.
type ImageData struct {
	ContentType string
	Data        []byte
}
