package models

// ContactStatus tracks whether an admin has read a message.
type ContactStatus string

const (
	ContactNew  ContactStatus = "new"
	ContactRead ContactStatus = "read"
)

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	BaseModel

	Name    string        `gorm:"not null" json:"name"`
	Email   string        `gorm:"not null" json:"email"`
	Message string        `gorm:"type:text;not null" json:"message"`
	Status  ContactStatus `gorm:"type:varchar(8);not null;index" json:"status"`
}
