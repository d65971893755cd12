package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// AnswerMap 记录用户的作答：键为字符串形式的题目ID，值为所选选项ID。
// 按提交原样持久化为 JSON，是历史记录，写入时不再对照目录校验。
type AnswerMap map[string]uint

func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		m = AnswerMap{}
	}
	return json.Marshal(m)
}

func (m *AnswerMap) Scan(value interface{}) error {
	if value == nil {
		*m = AnswerMap{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported answer map column type %T", value)
	}

	if len(data) == 0 {
		*m = AnswerMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// UserQuizAttempt 用户的测验作答记录。每个 (user, quiz) 至多一条，
// 由 idx_attempt_user_quiz 唯一索引兜底，提交成功后不再修改。
// swagger:model UserQuizAttempt
type UserQuizAttempt struct {
	UUIDBase
	UserID uint  `gorm:"index;not null;uniqueIndex:idx_attempt_user_quiz" json:"userId"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	QuizID uint  `gorm:"index;not null;uniqueIndex:idx_attempt_user_quiz" json:"quizId"`
	Quiz   *Quiz `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	// 百分比得分 0-100
	Score   float64   `gorm:"not null;default:0" json:"score"`
	Answers AnswerMap `gorm:"type:json" json:"answers"`
	// 提交时刻，创建后不变
	AttemptedAt time.Time `gorm:"autoCreateTime" json:"attemptedAt"`
	// 用户上报的答题用时（分钟），不做校验
	TimeTakenMinutes int `gorm:"default:0" json:"timeTakenMinutes"`
}

func (UserQuizAttempt) TableName() string {
	return "user_quiz_attempts"
}

// Passed 依据测验当前的及格线判定
func (a *UserQuizAttempt) Passed(quiz *Quiz) bool {
	return a.Score >= float64(quiz.PassingScore)
}

// CorrectCount 由百分比得分和当前题目数反推的答对题数
func (a *UserQuizAttempt) CorrectCount(questionCount int) int {
	return int(math.Round(a.Score / 100 * float64(questionCount)))
}

// IncorrectCount 答错（含未答）题数
func (a *UserQuizAttempt) IncorrectCount(questionCount int) int {
	return questionCount - a.CorrectCount(questionCount)
}
