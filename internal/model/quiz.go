package model

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title       string  `gorm:"size:200;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	CourseID    *uint   `gorm:"index" json:"courseId,omitempty"`
	Course      *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	// 及格线，百分比 0-100
	PassingScore int `gorm:"default:70" json:"passingScore"`
	// 建议用时（分钟），仅供前端展示，后端不做超时判定
	TimeLimitMinutes int        `gorm:"default:30" json:"timeLimitMinutes"`
	IsActive         bool       `gorm:"default:true" json:"isActive"`
	Questions        []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	BaseModel
	QuizID uint   `gorm:"index;not null;uniqueIndex:idx_quiz_question_order" json:"quizId"`
	Text   string `gorm:"type:text;not null" json:"text"`
	// 题目在测验内的展示顺序，同一测验内唯一
	Order   int      `gorm:"not null;default:0;uniqueIndex:idx_quiz_question_order" json:"order"`
	Answers []Answer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// CorrectAnswer 返回该题的标准答案：按主键顺序取第一个 is_correct 的选项。
// 数据模型不阻止出题人标记多个正确选项，出现多个时以插入顺序靠前者为准，
// 属于出题错误而非多选支持。
func (q *Question) CorrectAnswer() *Answer {
	for i := range q.Answers {
		if q.Answers[i].IsCorrect {
			return &q.Answers[i]
		}
	}
	return nil
}

// swagger:model Answer
type Answer struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"size:500;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Answer) TableName() string {
	return "answers"
}
