package service

import (
	"eduquiz_backend/internal/model"
	"eduquiz_backend/internal/repository"
	"errors"
)

// CatalogService 教师端的测验目录管理：试卷、题目、选项的编辑，
// 以及归档/恢复/彻底删除。
type CatalogService struct {
	Repo *repository.CatalogRepository
}

func NewCatalogService(repo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{Repo: repo}
}

type QuizReq struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	CourseID         *uint   `json:"courseId"`
	PassingScore     *int    `json:"passingScore"`
	TimeLimitMinutes *int    `json:"timeLimitMinutes"`
}

func (req *QuizReq) apply(quiz *model.Quiz) error {
	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.CourseID != nil {
		quiz.CourseID = req.CourseID
	}
	if req.PassingScore != nil {
		if *req.PassingScore < 0 || *req.PassingScore > 100 {
			return errors.New("passing score must be between 0 and 100")
		}
		quiz.PassingScore = *req.PassingScore
	}
	if req.TimeLimitMinutes != nil {
		if *req.TimeLimitMinutes < 0 {
			return errors.New("time limit must not be negative")
		}
		quiz.TimeLimitMinutes = *req.TimeLimitMinutes
	}
	return nil
}

func (s *CatalogService) CreateQuiz(req QuizReq) (*model.Quiz, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}

	quiz := &model.Quiz{
		PassingScore:     70,
		TimeLimitMinutes: 30,
		IsActive:         true,
	}
	if err := req.apply(quiz); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateQuiz(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *CatalogService) UpdateQuiz(quizID uint, req QuizReq) (*model.Quiz, error) {
	quiz, err := s.Repo.FindQuizByID(quizID)
	if err != nil {
		return nil, err
	}

	if err := req.apply(quiz); err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateQuiz(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *CatalogService) GetQuizWithQuestions(quizID uint) (*model.Quiz, []model.Question, error) {
	quiz, err := s.Repo.FindQuizByID(quizID)
	if err != nil {
		return nil, nil, err
	}
	questions, err := s.Repo.ListQuestions(quizID)
	return quiz, questions, err
}

func (s *CatalogService) ListQuizzes() ([]repository.QuizListRow, error) {
	return s.Repo.ListActiveQuizzes()
}

func (s *CatalogService) ListArchivedQuizzes() ([]repository.QuizListRow, error) {
	return s.Repo.ListArchivedQuizzes()
}

// ArchiveQuiz 归档而非删除：学生不再可见，可从归档恢复
func (s *CatalogService) ArchiveQuiz(quizID uint) error {
	quiz, err := s.Repo.FindQuizByID(quizID)
	if err != nil {
		return err
	}
	quiz.IsActive = false
	return s.Repo.UpdateQuiz(quiz)
}

func (s *CatalogService) RestoreQuiz(quizID uint) error {
	quiz, err := s.Repo.FindQuizByID(quizID)
	if err != nil {
		return err
	}
	quiz.IsActive = true
	return s.Repo.UpdateQuiz(quiz)
}

// PermanentDeleteQuiz 彻底删除，仅允许对已归档的测验执行，
// 级联删除其下的题目、选项和作答记录
func (s *CatalogService) PermanentDeleteQuiz(quizID uint) error {
	quiz, err := s.Repo.FindQuizByID(quizID)
	if err != nil {
		return err
	}
	if quiz.IsActive {
		return errors.New("quiz must be archived before permanent deletion")
	}
	return s.Repo.PermanentDeleteQuiz(quizID)
}

type AnswerReq struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionReq struct {
	Text    string      `json:"text" binding:"required"`
	Order   int         `json:"order"`
	Answers []AnswerReq `json:"answers"`
}

// CreateQuestion 创建题目，可同时附带选项
func (s *CatalogService) CreateQuestion(quizID uint, req QuestionReq) (*model.Question, error) {
	if _, err := s.Repo.FindQuizByID(quizID); err != nil {
		return nil, err
	}

	question := &model.Question{
		QuizID: quizID,
		Text:   req.Text,
		Order:  req.Order,
	}
	if err := s.Repo.CreateQuestion(question); err != nil {
		return nil, err
	}

	for _, a := range req.Answers {
		answer := &model.Answer{
			QuestionID: question.ID,
			Text:       a.Text,
			IsCorrect:  a.IsCorrect,
		}
		if err := s.Repo.CreateAnswer(answer); err != nil {
			return nil, err
		}
		question.Answers = append(question.Answers, *answer)
	}

	return question, nil
}

func (s *CatalogService) UpdateQuestion(questionID uint, req QuestionReq) (*model.Question, error) {
	question, err := s.Repo.FindQuestionByID(questionID)
	if err != nil {
		return nil, err
	}

	question.Text = req.Text
	question.Order = req.Order
	if err := s.Repo.UpdateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *CatalogService) DeleteQuestion(questionID uint) error {
	if _, err := s.Repo.FindQuestionByID(questionID); err != nil {
		return err
	}
	return s.Repo.DeleteQuestion(questionID)
}

func (s *CatalogService) CreateAnswer(questionID uint, req AnswerReq) (*model.Answer, error) {
	if _, err := s.Repo.FindQuestionByID(questionID); err != nil {
		return nil, err
	}

	answer := &model.Answer{
		QuestionID: questionID,
		Text:       req.Text,
		IsCorrect:  req.IsCorrect,
	}
	if err := s.Repo.CreateAnswer(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *CatalogService) UpdateAnswer(answerID uint, req AnswerReq) (*model.Answer, error) {
	answer, err := s.Repo.FindAnswerByID(answerID)
	if err != nil {
		return nil, err
	}

	answer.Text = req.Text
	answer.IsCorrect = req.IsCorrect
	if err := s.Repo.UpdateAnswer(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *CatalogService) DeleteAnswer(answerID uint) error {
	if _, err := s.Repo.FindAnswerByID(answerID); err != nil {
		return err
	}
	return s.Repo.DeleteAnswer(answerID)
}
