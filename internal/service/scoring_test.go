package service

import (
	"testing"

	"eduquiz_backend/internal/model"
)

// fourQuestionQuiz 每题两个选项，第一个为正确答案。
// 题目ID 1..4，选项ID = 题目ID*10 + 序号。
func fourQuestionQuiz() []model.Question {
	questions := make([]model.Question, 0, 4)
	for qid := uint(1); qid <= 4; qid++ {
		q := model.Question{
			Text:  "question",
			Order: int(qid),
		}
		q.ID = qid
		for j := uint(1); j <= 2; j++ {
			a := model.Answer{
				QuestionID: qid,
				Text:       "answer",
				IsCorrect:  j == 1,
			}
			a.ID = qid*10 + j
			q.Answers = append(q.Answers, a)
		}
		questions = append(questions, q)
	}
	return questions
}

func TestScoreSubmission(t *testing.T) {
	questions := fourQuestionQuiz()

	tests := []struct {
		name        string
		answers     model.AnswerMap
		wantCorrect int
		wantPct     float64
	}{
		{
			name:        "all correct",
			answers:     model.AnswerMap{"1": 11, "2": 21, "3": 31, "4": 41},
			wantCorrect: 4,
			wantPct:     100,
		},
		{
			name:        "three of four",
			answers:     model.AnswerMap{"1": 11, "2": 21, "3": 31, "4": 42},
			wantCorrect: 3,
			wantPct:     75,
		},
		{
			name:        "all wrong",
			answers:     model.AnswerMap{"1": 12, "2": 22, "3": 32, "4": 42},
			wantCorrect: 0,
			wantPct:     0,
		},
		{
			name:        "unanswered questions count as wrong",
			answers:     model.AnswerMap{"1": 11},
			wantCorrect: 1,
			wantPct:     25,
		},
		{
			name:        "empty submission",
			answers:     model.AnswerMap{},
			wantCorrect: 0,
			wantPct:     0,
		},
		{
			name:        "nil submission",
			answers:     nil,
			wantCorrect: 0,
			wantPct:     0,
		},
		{
			name: "unknown answer id counts as wrong",
			answers: model.AnswerMap{
				"1": 999,
				"2": 21,
			},
			wantCorrect: 1,
			wantPct:     50,
		},
		{
			name: "answer from another question never counts",
			// 21 是第2题的正确选项，拿来回答第1题不得分，
			// 同时第2题本身未作答
			answers:     model.AnswerMap{"1": 21},
			wantCorrect: 0,
			wantPct:     0,
		},
		{
			name: "keys for unknown questions are ignored",
			answers: model.AnswerMap{
				"1":  11,
				"99": 11,
			},
			wantCorrect: 1,
			wantPct:     25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreSubmission(questions, tt.answers)
			if got.CorrectCount != tt.wantCorrect {
				t.Errorf("CorrectCount = %d, want %d", got.CorrectCount, tt.wantCorrect)
			}
			if got.Percentage != tt.wantPct {
				t.Errorf("Percentage = %v, want %v", got.Percentage, tt.wantPct)
			}
			if got.TotalQuestions != len(questions) {
				t.Errorf("TotalQuestions = %d, want %d", got.TotalQuestions, len(questions))
			}
		})
	}
}

func TestScoreSubmissionEmptyQuiz(t *testing.T) {
	got := ScoreSubmission(nil, model.AnswerMap{"1": 11})
	if got.Percentage != 0 {
		t.Errorf("Percentage = %v, want 0 for quiz without questions", got.Percentage)
	}
	if got.CorrectCount != 0 || got.TotalQuestions != 0 {
		t.Errorf("got %+v, want zero counts", got)
	}
}

func TestScoreSubmissionRoundsPercentage(t *testing.T) {
	// 1/3 答对 → 33.33... 四舍五入为 33；2/3 → 66.66... 为 67
	questions := fourQuestionQuiz()[:3]

	oneRight := ScoreSubmission(questions, model.AnswerMap{"1": 11})
	if oneRight.Percentage != 33 {
		t.Errorf("1/3 Percentage = %v, want 33", oneRight.Percentage)
	}

	twoRight := ScoreSubmission(questions, model.AnswerMap{"1": 11, "2": 21})
	if twoRight.Percentage != 67 {
		t.Errorf("2/3 Percentage = %v, want 67", twoRight.Percentage)
	}
}

func TestValidateAnswerMap(t *testing.T) {
	valid := []model.AnswerMap{
		nil,
		{},
		{"1": 5},
		{"42": 7, "43": 8},
	}
	for _, m := range valid {
		if err := validateAnswerMap(m); err != nil {
			t.Errorf("validateAnswerMap(%v) = %v, want nil", m, err)
		}
	}

	invalid := []model.AnswerMap{
		{"abc": 5},
		{"": 5},
		{"-1": 5},
		{"0": 5},
		{"1": 0},
		{"1.5": 5},
	}
	for _, m := range invalid {
		if err := validateAnswerMap(m); err == nil {
			t.Errorf("validateAnswerMap(%v) = nil, want error", m)
		}
	}
}

func TestQuestionCorrectAnswer(t *testing.T) {
	q := fourQuestionQuiz()[0]
	if got := q.CorrectAnswer(); got == nil || got.ID != 11 {
		t.Fatalf("CorrectAnswer() = %v, want answer 11", got)
	}

	// 出题错误：多个正确选项时以靠前者为准
	q.Answers[1].IsCorrect = true
	if got := q.CorrectAnswer(); got == nil || got.ID != 11 {
		t.Fatalf("CorrectAnswer() with two correct = %v, want first answer 11", got)
	}

	// 没有正确选项
	q.Answers[0].IsCorrect = false
	q.Answers[1].IsCorrect = false
	if got := q.CorrectAnswer(); got != nil {
		t.Fatalf("CorrectAnswer() without correct option = %v, want nil", got)
	}
}
