package model

import "encoding/json"

type BlogStatus string

const (
	BlogPublished BlogStatus = "published"
	BlogDraft     BlogStatus = "draft"
)

// swagger:model Blog
type Blog struct {
	BaseModel
	Title          string          `gorm:"size:255;not null" json:"title"`
	Content        string          `gorm:"type:longtext;not null" json:"content"`
	Excerpt        string          `gorm:"size:500" json:"excerpt"`
	Tags           json.RawMessage `gorm:"type:json" json:"tags"`
	CoverImage     string          `gorm:"size:512" json:"coverImage"`
	Category       string          `gorm:"size:50;default:'general'" json:"category"`
	Status         BlogStatus      `gorm:"type:enum('published','draft');default:'published'" json:"status"`
	IsNotification bool            `gorm:"default:false" json:"isNotification"`
	ViewCount      int             `gorm:"default:0" json:"viewCount"`

	AuthorID uint  `gorm:"index;not null" json:"authorId"`
	Author   *User `json:"author,omitempty"`

	Likes    []User        `gorm:"many2many:blog_likes" json:"-"`
	Comments []BlogComment `gorm:"constraint:OnDelete:CASCADE" json:"comments"`
}

func (Blog) TableName() string {
	return "blogs"
}

// swagger:model BlogComment
type BlogComment struct {
	BaseModel
	BlogID   uint   `gorm:"index;not null" json:"blogId"`
	AuthorID uint   `gorm:"index;not null" json:"authorId"`
	Author   *User  `json:"author,omitempty"`
	Content  string `gorm:"type:text;not null" json:"content"`
}

func (BlogComment) TableName() string {
	return "blog_comments"
}
