package service

import (
	"eduquiz_backend/internal/model"
	"eduquiz_backend/internal/repository"
	"eduquiz_backend/internal/util"
	"eduquiz_backend/pkg/monitoring"
	"strconv"
	"time"
)

// QuizService 作答核心：单次作答策略、评分、记录持久化和结果回顾。
// 题目在评分和回顾时都实时读取目录，分数反映提交那一刻的题目集合，
// 不是展示试卷时的快照。
type QuizService struct {
	Catalog  *repository.CatalogRepository
	Attempts *repository.AttemptRepository
}

func NewQuizService(catalog *repository.CatalogRepository, attempts *repository.AttemptRepository) *QuizService {
	return &QuizService{Catalog: catalog, Attempts: attempts}
}

// AnswerView 学生作答时看到的选项，不携带 is_correct
type AnswerView struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type QuestionView struct {
	ID      uint         `json:"id"`
	Text    string       `json:"text"`
	Order   int          `json:"order"`
	Answers []AnswerView `json:"answers"`
}

func toQuestionViews(questions []model.Question) []QuestionView {
	views := make([]QuestionView, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		answers := make([]AnswerView, 0, len(q.Answers))
		for j := range q.Answers {
			answers = append(answers, AnswerView{ID: q.Answers[j].ID, Text: q.Answers[j].Text})
		}
		views = append(views, QuestionView{ID: q.ID, Text: q.Text, Order: q.Order, Answers: answers})
	}
	return views
}

type QuizSummary struct {
	ID               uint   `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	PassingScore     int    `json:"passingScore"`
	TimeLimitMinutes int    `json:"timeLimitMinutes"`
	QuestionCount    int    `json:"questionCount"`
}

func quizSummary(quiz *model.Quiz, questionCount int) QuizSummary {
	return QuizSummary{
		ID:               quiz.ID,
		Title:            quiz.Title,
		Description:      quiz.Description,
		PassingScore:     quiz.PassingScore,
		TimeLimitMinutes: quiz.TimeLimitMinutes,
		QuestionCount:    questionCount,
	}
}

func (s *QuizService) ListQuizzes() ([]repository.QuizListRow, error) {
	return s.Catalog.ListActiveQuizzes()
}

type QuizDetail struct {
	QuizSummary
	IsActive  bool            `json:"isActive"`
	MyAttempt *AttemptSummary `json:"myAttempt,omitempty"`
}

type AttemptSummary struct {
	ID               string    `json:"id"`
	Score            float64   `json:"score"`
	Passed           bool      `json:"passed"`
	CorrectCount     int       `json:"correctCount"`
	IncorrectCount   int       `json:"incorrectCount"`
	AttemptedAt      time.Time `json:"attemptedAt"`
	TimeTakenMinutes int       `json:"timeTakenMinutes"`
}

func attemptSummary(attempt *model.UserQuizAttempt, quiz *model.Quiz, questionCount int) *AttemptSummary {
	return &AttemptSummary{
		ID:               attempt.ID,
		Score:            attempt.Score,
		Passed:           attempt.Passed(quiz),
		CorrectCount:     attempt.CorrectCount(questionCount),
		IncorrectCount:   attempt.IncorrectCount(questionCount),
		AttemptedAt:      attempt.AttemptedAt,
		TimeTakenMinutes: attempt.TimeTakenMinutes,
	}
}

// GetQuizDetail 测验详情，附带调用者自己的作答记录（如果有）
func (s *QuizService) GetQuizDetail(userID, quizID uint) (*QuizDetail, error) {
	quiz, err := s.Catalog.FindQuizByID(quizID)
	if err != nil {
		return nil, err
	}

	count, err := s.Catalog.CountQuestions(quizID)
	if err != nil {
		return nil, err
	}

	detail := &QuizDetail{
		QuizSummary: quizSummary(quiz, int(count)),
		IsActive:    quiz.IsActive,
	}

	attempt, err := s.Attempts.FindByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}
	if attempt != nil {
		detail.MyAttempt = attemptSummary(attempt, quiz, int(count))
	}

	return detail, nil
}

// CanAttempt 单次作答策略守卫：该 (user, quiz) 已有记录时返回 false。
// 无副作用；持久层的唯一索引才是最终保证，这里只是提交前的快路径检查。
func (s *QuizService) CanAttempt(userID, quizID uint) (bool, error) {
	exists, err := s.Attempts.Exists(userID, quizID)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

type StartAttemptResp struct {
	Quiz      QuizSummary    `json:"quiz"`
	Questions []QuestionView `json:"questions"`
}

// StartAttempt 开始作答：测验必须存在且未归档，且调用者没有作答记录
func (s *QuizService) StartAttempt(userID, quizID uint) (*StartAttemptResp, error) {
	quiz, err := s.Catalog.FindQuizByID(quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, util.ErrQuizNotAvailable
	}

	ok, err := s.CanAttempt(userID, quizID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrQuizAlreadyAttempted
	}

	questions, err := s.Catalog.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}

	return &StartAttemptResp{
		Quiz:      quizSummary(quiz, len(questions)),
		Questions: toQuestionViews(questions),
	}, nil
}

type SubmitAttemptReq struct {
	// 键为字符串形式的题目ID，值为所选选项ID；未作答的题目可以缺席
	Answers          model.AnswerMap `json:"answers"`
	TimeTakenMinutes int             `json:"timeTakenMinutes"`
}

type SubmitAttemptResp struct {
	AttemptID string `json:"attemptId"`
	ScoreResult
	Passed bool `json:"passed"`
}

// SubmitAttempt 提交作答：评分、落库并返回结果。
// 先走守卫快路径，真正的唯一性由 Create 时的唯一索引兜底，
// 并发提交同一测验时恰好一条成功，输家得到 ErrQuizAlreadyAttempted。
func (s *QuizService) SubmitAttempt(userID, quizID uint, req SubmitAttemptReq) (*SubmitAttemptResp, error) {
	if err := validateAnswerMap(req.Answers); err != nil {
		return nil, err
	}
	if req.TimeTakenMinutes < 0 {
		return nil, util.ErrInvalidSubmission
	}

	quiz, err := s.Catalog.FindQuizByID(quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, util.ErrQuizNotAvailable
	}

	ok, err := s.CanAttempt(userID, quizID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrQuizAlreadyAttempted
	}

	questions, err := s.Catalog.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}

	result := ScoreSubmission(questions, req.Answers)

	answers := req.Answers
	if answers == nil {
		answers = model.AnswerMap{}
	}
	attempt := &model.UserQuizAttempt{
		UserID:           userID,
		QuizID:           quizID,
		Score:            result.Percentage,
		Answers:          answers,
		AttemptedAt:      time.Now(),
		TimeTakenMinutes: req.TimeTakenMinutes,
	}
	if err := s.Attempts.Create(attempt); err != nil {
		return nil, err
	}

	passed := attempt.Passed(quiz)
	monitoring.ObserveQuizSubmission(passed)

	return &SubmitAttemptResp{
		AttemptID:   attempt.ID,
		ScoreResult: result,
		Passed:      passed,
	}, nil
}

// validateAnswerMap 在边界校验标识符格式，结构非法的输入不进入评分
func validateAnswerMap(answers model.AnswerMap) error {
	for key, answerID := range answers {
		questionID, err := strconv.ParseUint(key, 10, 32)
		if err != nil || questionID == 0 {
			return util.ErrInvalidSubmission
		}
		if answerID == 0 {
			return util.ErrInvalidSubmission
		}
	}
	return nil
}

type ReviewItem struct {
	QuestionID    uint        `json:"questionId"`
	QuestionText  string      `json:"questionText"`
	Order         int         `json:"order"`
	UserAnswer    *AnswerView `json:"userAnswer"`
	CorrectAnswer *AnswerView `json:"correctAnswer"`
	IsCorrect     bool        `json:"isCorrect"`
}

type ReviewResp struct {
	Quiz    QuizSummary    `json:"quiz"`
	Attempt AttemptSummary `json:"attempt"`
	Results []ReviewItem   `json:"results"`
}

// GetReview 重建作答回顾：逐题并上用户所选选项和标准答案。
// 作答记录按用户隔离读取，他人的记录返回 ErrAttemptForbidden。
func (s *QuizService) GetReview(userID, quizID uint, attemptID string) (*ReviewResp, error) {
	quiz, err := s.Catalog.FindQuizByID(quizID)
	if err != nil {
		return nil, err
	}

	attempt, err := s.Attempts.GetForUser(attemptID, userID, quizID)
	if err != nil {
		return nil, err
	}

	return s.buildReview(quiz, attempt)
}

// GetAttemptForTeacher 教师端按记录ID查看任意学生的作答回顾
func (s *QuizService) GetAttemptForTeacher(quizID uint, attemptID string) (*ReviewResp, error) {
	quiz, err := s.Catalog.FindQuizByID(quizID)
	if err != nil {
		return nil, err
	}

	attempt, err := s.Attempts.FindByID(attemptID, quizID)
	if err != nil {
		return nil, err
	}

	return s.buildReview(quiz, attempt)
}

func (s *QuizService) ListAttempts(quizID uint, page, limit int) ([]repository.AttemptListRow, int64, error) {
	if _, err := s.Catalog.FindQuizByID(quizID); err != nil {
		return nil, 0, err
	}
	return s.Attempts.ListByQuiz(quizID, page, limit)
}

// buildReview 对当前属于该测验的每道题（实时读取，与评分同样的时效语义）：
// 在持久化的作答映射里取出所选选项ID并解析成选项实体；标准答案取该题
// 第一个 is_correct 的选项；is_correct 仅当两者都解析成功且按ID相等。
// 未作答的题目 userAnswer 为 null 且判错。单次调用单趟构建，不修改记录。
func (s *QuizService) buildReview(quiz *model.Quiz, attempt *model.UserQuizAttempt) (*ReviewResp, error) {
	questions, err := s.Catalog.ListQuestions(quiz.ID)
	if err != nil {
		return nil, err
	}

	// 批量解析本次作答引用的全部选项ID，悬空引用静默缺席
	ids := make([]uint, 0, len(attempt.Answers))
	for _, answerID := range attempt.Answers {
		ids = append(ids, answerID)
	}
	resolved, err := s.Catalog.FindAnswersByIDs(ids)
	if err != nil {
		return nil, err
	}

	results := make([]ReviewItem, 0, len(questions))
	for i := range questions {
		q := &questions[i]

		item := ReviewItem{
			QuestionID:   q.ID,
			QuestionText: q.Text,
			Order:        q.Order,
		}

		if correct := q.CorrectAnswer(); correct != nil {
			item.CorrectAnswer = &AnswerView{ID: correct.ID, Text: correct.Text}
		}

		if answerID, ok := attempt.Answers[util.FormatUint(q.ID)]; ok {
			if userAnswer, found := resolved[answerID]; found {
				item.UserAnswer = &AnswerView{ID: userAnswer.ID, Text: userAnswer.Text}
				item.IsCorrect = item.CorrectAnswer != nil && userAnswer.ID == item.CorrectAnswer.ID
			}
		}

		results = append(results, item)
	}

	return &ReviewResp{
		Quiz:    quizSummary(quiz, len(questions)),
		Attempt: *attemptSummary(attempt, quiz, len(questions)),
		Results: results,
	}, nil
}
