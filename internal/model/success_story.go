package model

// SuccessStory is a student testimonial shown on the landing page.
// swagger:model SuccessStory
type SuccessStory struct {
	BaseModel
	Name       string `gorm:"size:100;not null" json:"name"`
	Score      string `gorm:"size:50" json:"score"` // e.g. "TOPIK 6"
	University string `gorm:"size:255" json:"university"`
	Image      string `gorm:"size:512" json:"image"`
	Quote      string `gorm:"type:text" json:"quote"`
	Featured   bool   `gorm:"default:false" json:"featured"`
}

func (SuccessStory) TableName() string {
	return "success_stories"
}
