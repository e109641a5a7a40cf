package cvs

import "time"

// CVResponse is the outward-facing representation of a CV record.
type CVResponse struct {
	CVID       string    `json:"cvId"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	IsDefault  bool      `json:"isDefault"`
	IsActive   bool      `json:"isActive"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func toResponse(rec CVRecord) CVResponse {
	return CVResponse{
		CVID:       rec.ID,
		FileName:   rec.FileName,
		MimeType:   rec.MimeType,
		SizeBytes:  rec.SizeBytes,
		IsDefault:  rec.IsDefault,
		IsActive:   rec.IsActive,
		UploadedAt: rec.CreatedAt,
	}
}
