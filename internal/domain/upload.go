package domain

import "time"

// Upload is the metadata record of a file sent through the upload endpoint.
// MirrorID and MirrorURL are nil when the file was not copied off-site.
// Records are append-only.
type Upload struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Filename      string    `gorm:"type:varchar(512);not null" json:"filename"`
	MirrorID      *string   `gorm:"column:gdrive_id;type:varchar(255)" json:"gdrive_id"`
	MirrorURL     *string   `gorm:"column:gdrive_url;type:text" json:"gdrive_url"`
	MirrorBackend *string   `gorm:"type:varchar(20)" json:"mirror_backend"`
	ContentType   string    `gorm:"type:varchar(255)" json:"content_type"`
	Size          int64     `gorm:"not null;default:0" json:"size"`
	UploadedAt    time.Time `gorm:"autoCreateTime;index:idx_uploads_uploaded_at" json:"uploaded_at"`
}

// TableName specifies the table name for Upload
func (Upload) TableName() string {
	return "uploads"
}

// IsMirrored reports whether an external copy exists.
func (u *Upload) IsMirrored() bool {
	return u.MirrorID != nil && *u.MirrorID != ""
}
