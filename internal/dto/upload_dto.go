package dto

// UploadResponse represents the result of POST /api/upload
// @Description gdriveUrl is present only when the file was mirrored.
type UploadResponse struct {
	Success   bool   `json:"success" example:"true"`
	ID        int64  `json:"id" example:"7"`
	Filename  string `json:"filename" example:"brief.pdf"`
	GDriveURL string `json:"gdriveUrl,omitempty" example:"https://drive.google.com/file/d/abc/view"`
	Mirrored  bool   `json:"mirrored" example:"true"`
	Backend   string `json:"backend,omitempty" example:"gdrive"`
}

// HealthResponse represents GET /health
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"connected"`
	GDrive   string `json:"gdrive" example:"not configured"`
	Mirror   string `json:"mirror,omitempty" example:"gdrive"`
	Sessions string `json:"sessions" example:"memory"`
}
