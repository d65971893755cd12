package repository

import (
	"eduquiz_backend/internal/model"
	"eduquiz_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// CatalogRepository 管理测验目录（测验、题目、选项）。
// 作答与评分侧只读这张目录；写入口全部来自教师端。
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) FindQuizByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Course").First(&quiz, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

type QuizListRow struct {
	model.Quiz
	QuestionCount int `json:"questionCount"`
}

func (r *CatalogRepository) listQuizzes(active bool) ([]QuizListRow, error) {
	var rows []QuizListRow
	err := r.DB.Table("quizzes q").
		Select("q.*, (SELECT COUNT(*) FROM questions qq WHERE qq.quiz_id = q.id AND qq.deleted_at IS NULL) as question_count").
		Where("q.deleted_at IS NULL AND q.is_active = ?", active).
		Order("q.created_at desc").
		Scan(&rows).Error
	return rows, err
}

func (r *CatalogRepository) ListActiveQuizzes() ([]QuizListRow, error) {
	return r.listQuizzes(true)
}

func (r *CatalogRepository) ListArchivedQuizzes() ([]QuizListRow, error) {
	return r.listQuizzes(false)
}

// ListQuestions 返回测验的全部题目，按题序排列，选项按插入顺序预加载。
// 评分和回顾都在调用时实时读取，分数反映提交当下的目录状态。
func (r *CatalogRepository) ListQuestions(quizID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("quiz_id = ?", quizID).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.id asc")
		}).
		Order("`order` asc").
		Find(&questions).Error
	return questions, err
}

func (r *CatalogRepository) CountQuestions(quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

func (r *CatalogRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("answers.id asc")
	}).First(&q, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *CatalogRepository) FindAnswerByID(id uint) (*model.Answer, error) {
	var a model.Answer
	err := r.DB.First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindAnswersByIDs 批量解析选项ID，未知ID直接缺席于结果，不报错
func (r *CatalogRepository) FindAnswersByIDs(ids []uint) (map[uint]*model.Answer, error) {
	result := make(map[uint]*model.Answer, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var answers []model.Answer
	if err := r.DB.Where("id IN ?", ids).Find(&answers).Error; err != nil {
		return nil, err
	}
	for i := range answers {
		result[answers[i].ID] = &answers[i]
	}
	return result, nil
}

func (r *CatalogRepository) CreateQuiz(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *CatalogRepository) UpdateQuiz(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

// PermanentDeleteQuiz 彻底删除测验及其题目、选项和作答记录，
// 绕过软删除。目录归属关系的级联约定：删测验必须连带其下全部内容。
func (r *CatalogRepository) PermanentDeleteQuiz(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("quiz_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Unscoped().Where("question_id IN ?", questionIDs).Delete(&model.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("quiz_id = ?", id).Delete(&model.UserQuizAttempt{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Quiz{}, id).Error
	})
}

func (r *CatalogRepository) CreateQuestion(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *CatalogRepository) UpdateQuestion(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *CatalogRepository) DeleteQuestion(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}

func (r *CatalogRepository) CreateAnswer(answer *model.Answer) error {
	return r.DB.Create(answer).Error
}

func (r *CatalogRepository) UpdateAnswer(answer *model.Answer) error {
	return r.DB.Save(answer).Error
}

func (r *CatalogRepository) DeleteAnswer(id uint) error {
	return r.DB.Delete(&model.Answer{}, id).Error
}
