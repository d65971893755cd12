// 本地开发用的演示数据脚本
//
// 向数据库写入一份带三道题的演示测验，方便前端联调和手工验证
// 作答、评分及回顾接口。重复执行会追加新的测验，不会清空旧数据。
//
// 用法: go run scripts/seed_demo.go
package main

import (
	"log"

	"eduquiz_backend/internal/config"
	"eduquiz_backend/internal/repository"
	"eduquiz_backend/internal/service"
	"eduquiz_backend/pkg/database"
	"eduquiz_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	catalog := service.NewCatalogService(repository.NewCatalogRepository(db))

	title := "Go 语言入门测验（演示）"
	description := "演示数据，由 scripts/seed_demo.go 生成"
	passing := 70
	timeLimit := 10

	quiz, err := catalog.CreateQuiz(service.QuizReq{
		Title:            &title,
		Description:      &description,
		PassingScore:     &passing,
		TimeLimitMinutes: &timeLimit,
	})
	if err != nil {
		log.Fatalf("创建演示测验失败: %v", err)
	}

	questions := []service.QuestionReq{
		{
			Text:  "Go 里启动一个并发任务用什么关键字？",
			Order: 1,
			Answers: []service.AnswerReq{
				{Text: "go", IsCorrect: true},
				{Text: "async"},
				{Text: "spawn"},
			},
		},
		{
			Text:  "下面哪个类型是 Go 的内建并发通信原语？",
			Order: 2,
			Answers: []service.AnswerReq{
				{Text: "channel", IsCorrect: true},
				{Text: "pipe"},
				{Text: "queue"},
			},
		},
		{
			Text:  "Go 的错误处理惯例是什么？",
			Order: 3,
			Answers: []service.AnswerReq{
				{Text: "返回 error 值", IsCorrect: true},
				{Text: "抛出异常"},
				{Text: "errno 全局变量"},
			},
		},
	}

	for _, q := range questions {
		if _, err := catalog.CreateQuestion(quiz.ID, q); err != nil {
			log.Fatalf("创建演示题目失败: %v", err)
		}
	}

	log.Printf("演示测验已创建: id=%d title=%q", quiz.ID, quiz.Title)
}
