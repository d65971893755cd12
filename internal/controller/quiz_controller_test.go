package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"eduquiz_backend/internal/config"
	"eduquiz_backend/internal/middleware"
	"eduquiz_backend/internal/model"
	"eduquiz_backend/internal/repository"
	"eduquiz_backend/internal/service"
	"eduquiz_backend/internal/util"
)

const testSecret = "test-secret"

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Quiz{},
		&model.Question{},
		&model.Answer{},
		&model.UserQuizAttempt{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.JWT.ExpireTime = time.Hour

	catalog := repository.NewCatalogRepository(db)
	attempts := repository.NewAttemptRepository(db, nil)
	quizCtl := NewQuizController(service.NewQuizService(catalog, attempts))

	router := gin.New()
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	api.GET("/quizzes", quizCtl.ListQuizzes)
	api.GET("/quizzes/:id", quizCtl.GetQuiz)
	api.POST("/quizzes/:id/attempts/start", quizCtl.StartAttempt)
	api.POST("/quizzes/:id/attempts", quizCtl.SubmitAttempt)
	api.GET("/quizzes/:id/attempts/:attemptId/review", quizCtl.GetReview)

	return &testServer{router: router, db: db}
}

func (s *testServer) token(t *testing.T, userID uint, role model.UserRole) string {
	t.Helper()
	user := &model.User{Role: role, Email: fmt.Sprintf("user%d@example.com", userID)}
	user.ID = userID
	token, err := util.GenerateJWT(user, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) seedQuiz(t *testing.T) (*model.Quiz, []model.Question) {
	t.Helper()
	quiz := &model.Quiz{Title: "HTTP 测验", PassingScore: 70, IsActive: true}
	if err := s.db.Create(quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	var questions []model.Question
	for i := 1; i <= 2; i++ {
		q := model.Question{QuizID: quiz.ID, Text: "题目", Order: i}
		if err := s.db.Create(&q).Error; err != nil {
			t.Fatalf("create question: %v", err)
		}
		for j := 1; j <= 2; j++ {
			a := model.Answer{QuestionID: q.ID, Text: "选项", IsCorrect: j == 1}
			if err := s.db.Create(&a).Error; err != nil {
				t.Fatalf("create answer: %v", err)
			}
			q.Answers = append(q.Answers, a)
		}
		questions = append(questions, q)
	}
	return quiz, questions
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) util.Response {
	t.Helper()
	var resp util.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestQuizRoutesRequireAuth(t *testing.T) {
	srv := newTestServer(t)
	quiz, _ := srv.seedQuiz(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/quizzes"},
		{http.MethodGet, fmt.Sprintf("/api/quizzes/%d", quiz.ID)},
		{http.MethodPost, fmt.Sprintf("/api/quizzes/%d/attempts/start", quiz.ID)},
		{http.MethodPost, fmt.Sprintf("/api/quizzes/%d/attempts", quiz.ID)},
	}
	for _, p := range paths {
		if w := srv.do(t, p.method, p.path, "", nil); w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token = %d, want 401", p.method, p.path, w.Code)
		}
	}

	if w := srv.do(t, http.MethodGet, "/api/quizzes", "not-a-jwt", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token = %d, want 401", w.Code)
	}
}

func TestAttemptLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	quiz, questions := srv.seedQuiz(t)
	token := srv.token(t, 1, model.Student)

	// 开始作答
	w := srv.do(t, http.MethodPost, fmt.Sprintf("/api/quizzes/%d/attempts/start", quiz.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("start = %d: %s", w.Code, w.Body.String())
	}

	// 提交：一对一错
	submission := gin.H{
		"answers": gin.H{
			util.FormatUint(questions[0].ID): questions[0].Answers[0].ID,
			util.FormatUint(questions[1].ID): questions[1].Answers[1].ID,
		},
		"timeTakenMinutes": 3,
	}
	w = srv.do(t, http.MethodPost, fmt.Sprintf("/api/quizzes/%d/attempts", quiz.ID), token, submission)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit = %d: %s", w.Code, w.Body.String())
	}

	var result struct {
		AttemptID  string  `json:"attemptId"`
		Percentage float64 `json:"percentage"`
		Passed     bool    `json:"passed"`
	}
	resp := decodeResponse(t, w)
	raw, _ := json.Marshal(resp.Data)
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decode submit data: %v", err)
	}
	if result.Percentage != 50 || result.Passed {
		t.Errorf("result = %+v, want 50/false", result)
	}

	// 重复提交 → 409
	w = srv.do(t, http.MethodPost, fmt.Sprintf("/api/quizzes/%d/attempts", quiz.ID), token, submission)
	if w.Code != http.StatusConflict {
		t.Errorf("resubmit = %d, want 409", w.Code)
	}

	// 再次开始 → 409
	w = srv.do(t, http.MethodPost, fmt.Sprintf("/api/quizzes/%d/attempts/start", quiz.ID), token, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("restart = %d, want 409", w.Code)
	}

	// 本人回顾 → 200
	reviewPath := fmt.Sprintf("/api/quizzes/%d/attempts/%s/review", quiz.ID, result.AttemptID)
	if w = srv.do(t, http.MethodGet, reviewPath, token, nil); w.Code != http.StatusOK {
		t.Errorf("review = %d: %s", w.Code, w.Body.String())
	}

	// 他人回顾 → 403
	other := srv.token(t, 2, model.Student)
	if w = srv.do(t, http.MethodGet, reviewPath, other, nil); w.Code != http.StatusForbidden {
		t.Errorf("other user's review = %d, want 403", w.Code)
	}
}

func TestQuizErrorStatuses(t *testing.T) {
	srv := newTestServer(t)
	quiz, questions := srv.seedQuiz(t)
	token := srv.token(t, 1, model.Student)

	// 不存在的测验 → 404
	w := srv.do(t, http.MethodGet, "/api/quizzes/9999", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown quiz = %d, want 404", w.Code)
	}

	// 不存在的作答记录 → 404
	w = srv.do(t, http.MethodGet, fmt.Sprintf("/api/quizzes/%d/attempts/missing/review", quiz.ID), token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown attempt = %d, want 404", w.Code)
	}

	// 结构非法的作答 → 400
	w = srv.do(t, http.MethodPost, fmt.Sprintf("/api/quizzes/%d/attempts", quiz.ID), token,
		gin.H{"answers": gin.H{"abc": 1}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid submission = %d, want 400", w.Code)
	}

	// 归档的测验 → 410
	quiz.IsActive = false
	if err := srv.db.Save(quiz).Error; err != nil {
		t.Fatalf("archive quiz: %v", err)
	}
	w = srv.do(t, http.MethodPost, fmt.Sprintf("/api/quizzes/%d/attempts", quiz.ID), token,
		gin.H{"answers": gin.H{util.FormatUint(questions[0].ID): questions[0].Answers[0].ID}})
	if w.Code != http.StatusGone {
		t.Errorf("archived quiz = %d, want 410", w.Code)
	}
}
