package models

// GalleryImage is a photo shown in the public gallery.
type GalleryImage struct {
	BaseModel

	URL     string `gorm:"not null" json:"url"`
	Caption string `json:"caption"`
}

// TableName keeps the gallery table name short.
func (GalleryImage) TableName() string {
	return "gallery"
}
