package model

// Course 测验的归属课程。课程内容管理由独立的后台系统负责，
// 这里只保留测验目录引用所需的字段。
// swagger:model Course
type Course struct {
	BaseModel
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}

func (Course) TableName() string {
	return "courses"
}
