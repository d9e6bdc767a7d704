package model

type InquiryStatus string

const (
	InquiryNew       InquiryStatus = "new"
	InquiryContacted InquiryStatus = "contacted"
	InquiryClosed    InquiryStatus = "closed"
)

// swagger:model Inquiry
type Inquiry struct {
	BaseModel
	Name       string        `gorm:"size:100;not null" json:"name"`
	Phone      string        `gorm:"size:50" json:"phone"`
	University string        `gorm:"size:255" json:"university"`
	Message    string        `gorm:"type:text" json:"message"`
	Type       string        `gorm:"size:50;default:'general'" json:"type"`
	Status     InquiryStatus `gorm:"type:enum('new','contacted','closed');default:'new'" json:"status"`
	AdminNotes string        `gorm:"type:text" json:"adminNotes"`
}

func (Inquiry) TableName() string {
	return "inquiries"
}
