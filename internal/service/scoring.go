package service

import (
	"eduquiz_backend/internal/model"
	"eduquiz_backend/internal/util"
	"math"
)

// ScoreResult 一次提交的评分结果
type ScoreResult struct {
	Percentage     float64 `json:"percentage"`
	CorrectCount   int     `json:"correctCount"`
	TotalQuestions int     `json:"totalQuestions"`
}

// ScoreSubmission 对一次提交评分。纯函数，只依赖传入的题目和作答映射。
//
// 每道题：若映射中有该题的作答，在这道题自己的选项里查找所选ID，
// 选项属于别的题目时不计分，即使那个选项恰好是正确答案（防止跨题选项ID伪造）；
// 找到且 is_correct 才计一分。未作答、选项ID不存在都按答错处理，不报错。
// 百分比 = round(答对数/题目数×100)，零题测验恒为 0 分，不会除零。
func ScoreSubmission(questions []model.Question, answers model.AnswerMap) ScoreResult {
	correct := 0

	for i := range questions {
		q := &questions[i]
		answerID, ok := answers[util.FormatUint(q.ID)]
		if !ok {
			continue
		}
		for j := range q.Answers {
			if q.Answers[j].ID == answerID {
				if q.Answers[j].IsCorrect {
					correct++
				}
				break
			}
		}
	}

	total := len(questions)
	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(correct) / float64(total) * 100)
	}

	return ScoreResult{
		Percentage:     percentage,
		CorrectCount:   correct,
		TotalQuestions: total,
	}
}
