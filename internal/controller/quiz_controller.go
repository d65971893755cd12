package controller

import (
	"eduquiz_backend/internal/service"
	"eduquiz_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// QuizController 学生端作答接口
type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// respondQuizError 把核心层的哨兵错误翻译成 HTTP 状态
func respondQuizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrAttemptNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrQuizNotAvailable):
		util.Error(ctx, http.StatusGone, err.Error())
	case errors.Is(err, util.ErrQuizAlreadyAttempted):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrAttemptForbidden):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrInvalidSubmission):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary 获取可作答的测验列表
// @Tags 测验模块
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.Service.ListQuizzes()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": quizzes})
}

// @Summary 获取测验详情
// @Description 附带当前用户的作答记录（如果有）
// @Tags 测验模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.Service.GetQuizDetail(user.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondQuizError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// @Summary 开始作答
// @Description 每人每测验只允许作答一次，已有记录时返回 409
// @Tags 测验模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /quizzes/{id}/attempts/start [post]
func (c *QuizController) StartAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.Service.StartAttempt(user.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondQuizError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 提交作答
// @Tags 测验模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Param body body service.SubmitAttemptReq true "作答内容"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /quizzes/{id}/attempts [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAttemptReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.SubmitAttempt(user.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}

	util.Created(ctx, resp)
}

// @Summary 查看作答回顾
// @Description 逐题展示用户所选选项、标准答案和对错
// @Tags 测验模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Param attemptId path string true "作答记录ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /quizzes/{id}/attempts/{attemptId}/review [get]
func (c *QuizController) GetReview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.Service.GetReview(user.UserID, util.MustParseUint(ctx.Param("id")), ctx.Param("attemptId"))
	if err != nil {
		respondQuizError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}
