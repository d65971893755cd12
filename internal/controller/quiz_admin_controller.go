package controller

import (
	"eduquiz_backend/internal/service"
	"eduquiz_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// QuizAdminController 教师端的测验目录管理与作答情况查看
type QuizAdminController struct {
	Catalog *service.CatalogService
	Quiz    *service.QuizService
}

func NewQuizAdminController(catalog *service.CatalogService, quiz *service.QuizService) *QuizAdminController {
	return &QuizAdminController{Catalog: catalog, Quiz: quiz}
}

// @Summary 创建测验
// @Tags 测验管理模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizReq true "测验信息"
// @Success 201 {object} util.Response
// @Router /teacher/quizzes [post]
func (c *QuizAdminController) CreateQuiz(ctx *gin.Context) {
	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Catalog.CreateQuiz(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, quiz)
}

// @Summary 获取测验列表（含题目数）
// @Tags 测验管理模块
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /teacher/quizzes [get]
func (c *QuizAdminController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.Catalog.ListQuizzes()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": quizzes})
}

// @Summary 获取测验详情（含题目与标准答案）
// @Tags 测验管理模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /teacher/quizzes/{id} [get]
func (c *QuizAdminController) GetQuiz(ctx *gin.Context) {
	quiz, questions, err := c.Catalog.GetQuizWithQuestions(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, gin.H{"quiz": quiz, "questions": questions})
}

// @Summary 更新测验
// @Tags 测验管理模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Param body body service.QuizReq true "测验信息"
// @Success 200 {object} util.Response
// @Router /teacher/quizzes/{id} [put]
func (c *QuizAdminController) UpdateQuiz(ctx *gin.Context) {
	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Catalog.UpdateQuiz(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// @Summary 归档测验（移入回收站）
// @Tags 测验管理模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /teacher/quizzes/{id} [delete]
func (c *QuizAdminController) ArchiveQuiz(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.Catalog.ArchiveQuiz(id); err != nil {
		respondQuizError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"archived": id})
}

// @Summary 获取归档的测验列表
// @Tags 测验管理模块
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /teacher/quizzes/archived [get]
func (c *QuizAdminController) ListArchivedQuizzes(ctx *gin.Context) {
	quizzes, err := c.Catalog.ListArchivedQuizzes()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": quizzes})
}

// @Summary 恢复归档的测验
// @Tags 测验管理模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /teacher/quizzes/{id}/restore [post]
func (c *QuizAdminController) RestoreQuiz(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.Catalog.RestoreQuiz(id); err != nil {
		respondQuizError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"restored": id})
}

// @Summary 彻底删除测验
// @Description 仅允许对已归档的测验执行，连带删除题目、选项和作答记录
// @Tags 测验管理模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /teacher/quizzes/{id}/permanent [delete]
func (c *QuizAdminController) PermanentDeleteQuiz(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.Catalog.PermanentDeleteQuiz(id); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary 创建题目（可附带选项）
// @Tags 测验管理模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Param body body service.QuestionReq true "题目信息"
// @Success 201 {object} util.Response
// @Router /teacher/quizzes/{id}/questions [post]
func (c *QuizAdminController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Catalog.CreateQuestion(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}

	util.Created(ctx, question)
}

// @Summary 更新题目
// @Tags 测验管理模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param qid path int true "题目ID"
// @Param body body service.QuestionReq true "题目信息"
// @Success 200 {object} util.Response
// @Router /teacher/questions/{qid} [put]
func (c *QuizAdminController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Catalog.UpdateQuestion(util.MustParseUint(ctx.Param("qid")), req)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

// @Summary 删除题目
// @Tags 测验管理模块
// @Produce json
// @Security ApiKeyAuth
// @Param qid path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /teacher/questions/{qid} [delete]
func (c *QuizAdminController) DeleteQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("qid"))

	if err := c.Catalog.DeleteQuestion(id); err != nil {
		respondQuizError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary 创建选项
// @Tags 测验管理模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param qid path int true "题目ID"
// @Param body body service.AnswerReq true "选项信息"
// @Success 201 {object} util.Response
// @Router /teacher/questions/{qid}/answers [post]
func (c *QuizAdminController) CreateAnswer(ctx *gin.Context) {
	var req service.AnswerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.Catalog.CreateAnswer(util.MustParseUint(ctx.Param("qid")), req)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}

	util.Created(ctx, answer)
}

// @Summary 更新选项
// @Tags 测验管理模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param aid path int true "选项ID"
// @Param body body service.AnswerReq true "选项信息"
// @Success 200 {object} util.Response
// @Router /teacher/answers/{aid} [put]
func (c *QuizAdminController) UpdateAnswer(ctx *gin.Context) {
	var req service.AnswerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.Catalog.UpdateAnswer(util.MustParseUint(ctx.Param("aid")), req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, answer)
}

// @Summary 删除选项
// @Tags 测验管理模块
// @Produce json
// @Security ApiKeyAuth
// @Param aid path int true "选项ID"
// @Success 200 {object} util.Response
// @Router /teacher/answers/{aid} [delete]
func (c *QuizAdminController) DeleteAnswer(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("aid"))

	if err := c.Catalog.DeleteAnswer(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary 获取某测验的作答情况列表
// @Tags 测验管理模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /teacher/quizzes/{id}/attempts [get]
func (c *QuizAdminController) ListAttempts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	attempts, total, err := c.Quiz.ListAttempts(util.MustParseUint(ctx.Param("id")), page, limit)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": attempts, "total": total})
}

// @Summary 查看某条作答记录的逐题详情
// @Tags 测验管理模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Param attemptId path string true "作答记录ID"
// @Success 200 {object} util.Response
// @Router /teacher/quizzes/{id}/attempts/{attemptId} [get]
func (c *QuizAdminController) GetAttemptDetail(ctx *gin.Context) {
	resp, err := c.Quiz.GetAttemptForTeacher(util.MustParseUint(ctx.Param("id")), ctx.Param("attemptId"))
	if err != nil {
		respondQuizError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}
