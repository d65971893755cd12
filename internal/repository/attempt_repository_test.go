package repository

import (
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"eduquiz_backend/internal/model"
	"eduquiz_backend/internal/util"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) *model.User {
	t.Helper()
	u := &model.User{Name: name, Email: email, Password: "x", Role: model.Student}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func seedQuizRow(t *testing.T, db *gorm.DB) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{Title: "测验", PassingScore: 70, IsActive: true}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return quiz
}

func newAttempt(userID, quizID uint, score float64) *model.UserQuizAttempt {
	return &model.UserQuizAttempt{
		UserID:  userID,
		QuizID:  quizID,
		Score:   score,
		Answers: model.AnswerMap{"1": 2},
	}
}

// 唯一索引是单次作答策略的最终防线：同一 (user, quiz) 第二次
// 写入必须失败并映射为领域错误，表里只留一行。
func TestCreateEnforcesSingleAttempt(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db, nil)
	quiz := seedQuizRow(t, db)

	if err := repo.Create(newAttempt(1, quiz.ID, 50)); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	err := repo.Create(newAttempt(1, quiz.ID, 90))
	if !errors.Is(err, util.ErrQuizAlreadyAttempted) {
		t.Fatalf("second Create err = %v, want ErrQuizAlreadyAttempted", err)
	}

	var count int64
	if err := db.Model(&model.UserQuizAttempt{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("attempts in table = %d, want 1", count)
	}

	// 不同用户、不同测验都不受该索引约束
	quiz2 := seedQuizRow(t, db)
	if err := repo.Create(newAttempt(2, quiz.ID, 60)); err != nil {
		t.Errorf("other user's Create: %v", err)
	}
	if err := repo.Create(newAttempt(1, quiz2.ID, 60)); err != nil {
		t.Errorf("other quiz's Create: %v", err)
	}
}

func TestExists(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db, nil)
	quiz := seedQuizRow(t, db)

	exists, err := repo.Exists(1, quiz.ID)
	if err != nil || exists {
		t.Fatalf("Exists before = (%v, %v), want (false, nil)", exists, err)
	}

	if err := repo.Create(newAttempt(1, quiz.ID, 80)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	exists, err = repo.Exists(1, quiz.ID)
	if err != nil || !exists {
		t.Fatalf("Exists after = (%v, %v), want (true, nil)", exists, err)
	}
}

func TestFindByUserAndQuiz(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db, nil)
	quiz := seedQuizRow(t, db)

	got, err := repo.FindByUserAndQuiz(1, quiz.ID)
	if err != nil || got != nil {
		t.Fatalf("absent attempt = (%v, %v), want (nil, nil)", got, err)
	}

	attempt := newAttempt(1, quiz.ID, 80)
	if err := repo.Create(attempt); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err = repo.FindByUserAndQuiz(1, quiz.ID)
	if err != nil {
		t.Fatalf("FindByUserAndQuiz: %v", err)
	}
	if got == nil || got.ID != attempt.ID {
		t.Fatalf("got %+v, want attempt %s", got, attempt.ID)
	}
	// 作答映射经由 JSON 列存取后保持原样
	if got.Answers["1"] != 2 {
		t.Errorf("Answers = %v, want {1:2}", got.Answers)
	}
}

func TestGetForUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db, nil)
	quiz := seedQuizRow(t, db)

	attempt := newAttempt(1, quiz.ID, 80)
	if err := repo.Create(attempt); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := repo.GetForUser(attempt.ID, 1, quiz.ID); err != nil {
		t.Errorf("owner's GetForUser: %v", err)
	}
	if _, err := repo.GetForUser(attempt.ID, 2, quiz.ID); !errors.Is(err, util.ErrAttemptForbidden) {
		t.Errorf("other user's GetForUser err = %v, want ErrAttemptForbidden", err)
	}
	if _, err := repo.GetForUser("missing", 1, quiz.ID); !errors.Is(err, util.ErrAttemptNotFound) {
		t.Errorf("unknown id err = %v, want ErrAttemptNotFound", err)
	}
	// 记录存在但属于别的测验时按不存在处理
	if _, err := repo.GetForUser(attempt.ID, 1, quiz.ID+100); !errors.Is(err, util.ErrAttemptNotFound) {
		t.Errorf("wrong quiz err = %v, want ErrAttemptNotFound", err)
	}
}

func TestListByQuiz(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db, nil)
	quiz := seedQuizRow(t, db)

	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	if err := repo.Create(newAttempt(alice.ID, quiz.ID, 90)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(newAttempt(bob.ID, quiz.ID, 40)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, total, err := repo.ListByQuiz(quiz.ID, 1, 10)
	if err != nil {
		t.Fatalf("ListByQuiz: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("total=%d rows=%d, want 2/2", total, len(rows))
	}
	names := map[string]bool{}
	for _, row := range rows {
		names[row.UserName] = true
	}
	if !names["Alice"] || !names["Bob"] {
		t.Errorf("user names = %v", names)
	}

	// 分页
	rows, total, err = repo.ListByQuiz(quiz.ID, 2, 1)
	if err != nil {
		t.Fatalf("ListByQuiz page 2: %v", err)
	}
	if total != 2 || len(rows) != 1 {
		t.Errorf("page 2: total=%d rows=%d, want 2/1", total, len(rows))
	}
}
