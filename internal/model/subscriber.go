package model

type SubscriberStatus string

const (
	SubscriberActive       SubscriberStatus = "active"
	SubscriberUnsubscribed SubscriberStatus = "unsubscribed"
)

// swagger:model Subscriber
type Subscriber struct {
	BaseModel
	Email  string           `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Status SubscriberStatus `gorm:"type:enum('active','unsubscribed');default:'active'" json:"status"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}
