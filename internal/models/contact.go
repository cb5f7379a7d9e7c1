// internal/models/contact.go
package models

// ContactInquiry is a message submitted through the storefront contact form,
// managed from the admin console.
type ContactInquiry struct {
	BaseModel
	Name    string        `json:"name" gorm:"size:255;not null"`
	Email   string        `json:"email" gorm:"size:255;not null;index"`
	Phone   string        `json:"phone" gorm:"size:32;not null"`
	Message string        `json:"message" gorm:"type:text"`
	Status  ContactStatus `json:"status" gorm:"type:varchar(20);default:'new';index"`
}
