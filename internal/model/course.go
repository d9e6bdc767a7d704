package model

import "encoding/json"

type CourseStatus string

const (
	CourseActive   CourseStatus = "active"
	CourseDraft    CourseStatus = "draft"
	CourseArchived CourseStatus = "archived"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Category    string          `gorm:"size:50;default:'other'" json:"category"` // beginner, intermediate, advanced, topik, speaking, writing, other
	Price       float64         `gorm:"not null" json:"price"`
	Duration    string          `gorm:"size:100" json:"duration"`
	Level       string          `gorm:"size:100" json:"level"`
	Features    json.RawMessage `gorm:"type:json" json:"features"`
	Outcomes    json.RawMessage `gorm:"type:json" json:"outcomes"`
	Image       string          `gorm:"size:255" json:"image"`
	Status      CourseStatus    `gorm:"type:enum('active','draft','archived');default:'draft'" json:"status"`

	AuthorID uint  `gorm:"index;not null" json:"authorId"`
	Author   *User `json:"author,omitempty"`

	Sections []Section       `gorm:"constraint:OnDelete:CASCADE" json:"sections"`
	Comments []CourseComment `gorm:"constraint:OnDelete:CASCADE" json:"comments"`

	// Mean of all comment ratings; zero when there are none.
	Rating       float64 `gorm:"default:0" json:"rating"`
	TotalRatings int     `gorm:"default:0" json:"totalRatings"`

	LessonsCount  int `gorm:"default:0" json:"lessonsCount"`
	StudentsCount int `gorm:"default:0" json:"studentsCount"`

	EnrolledStudents []User `gorm:"many2many:course_enrollments" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model Section
type Section struct {
	BaseModel
	CourseID    uint    `gorm:"index;not null" json:"courseId"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Order       int     `gorm:"column:sort_order;default:0" json:"order"`
	Videos      []Video `gorm:"constraint:OnDelete:CASCADE" json:"videos"`
}

func (Section) TableName() string {
	return "course_sections"
}

// swagger:model Video
type Video struct {
	BaseModel
	SectionID uint    `gorm:"index;not null" json:"sectionId"`
	Title     string  `gorm:"size:255;not null" json:"title"`
	URL       string  `gorm:"size:512" json:"url"`
	Thumbnail string  `gorm:"size:512" json:"thumbnail"`
	Duration  float64 `gorm:"default:0" json:"duration"` // seconds
	Order     int     `gorm:"column:sort_order;default:0" json:"order"`
	IsFree    bool    `gorm:"default:false" json:"isFree"`
}

func (Video) TableName() string {
	return "course_videos"
}

// swagger:model CourseComment
type CourseComment struct {
	BaseModel
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	UserID   uint   `gorm:"index;not null" json:"userId"`
	User     *User  `json:"user,omitempty"`
	Comment  string `gorm:"type:text;not null" json:"comment"`
	Rating   int    `gorm:"not null" json:"rating"` // 1-5
}

func (CourseComment) TableName() string {
	return "course_comments"
}
