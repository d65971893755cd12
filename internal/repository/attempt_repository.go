package repository

import (
	"context"
	"eduquiz_backend/internal/model"
	"eduquiz_backend/internal/util"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// attemptMarkerTTL Redis 快路径标记的有效期。标记只是优化，
// 过期后回落到数据库查询，唯一性始终由唯一索引保证。
const attemptMarkerTTL = 24 * time.Hour

// AttemptRepository 独占 user_quiz_attempts 表的读写。
type AttemptRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewAttemptRepository(db *gorm.DB, rdb *redis.Client) *AttemptRepository {
	return &AttemptRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

func attemptMarkerKey(userID, quizID uint) string {
	return fmt.Sprintf("quiz:attempted:%d:%d", userID, quizID)
}

// Create 持久化一条作答记录。同一 (user, quiz) 已有记录时返回
// ErrQuizAlreadyAttempted。这里是单次作答策略的最终防线，
// 并发提交时由唯一索引裁决，应用层检查只是快路径。
func (r *AttemptRepository) Create(attempt *model.UserQuizAttempt) error {
	if err := r.DB.Create(attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return util.ErrQuizAlreadyAttempted
		}
		return err
	}

	if r.Redis != nil {
		r.Redis.Set(r.ctx, attemptMarkerKey(attempt.UserID, attempt.QuizID), 1, attemptMarkerTTL)
	}
	return nil
}

// Exists 判断 (user, quiz) 是否已有作答记录，优先查 Redis 标记
func (r *AttemptRepository) Exists(userID, quizID uint) (bool, error) {
	if r.Redis != nil {
		n, err := r.Redis.Exists(r.ctx, attemptMarkerKey(userID, quizID)).Result()
		if err == nil && n > 0 {
			return true, nil
		}
	}

	var count int64
	err := r.DB.Model(&model.UserQuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByUserAndQuiz 查询用户对某测验的作答记录，没有时返回 (nil, nil)
func (r *AttemptRepository) FindByUserAndQuiz(userID, quizID uint) (*model.UserQuizAttempt, error) {
	var attempt model.UserQuizAttempt
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// GetForUser 按用户隔离读取作答记录：记录不存在返回 ErrAttemptNotFound，
// 属于其他用户返回 ErrAttemptForbidden
func (r *AttemptRepository) GetForUser(attemptID string, userID, quizID uint) (*model.UserQuizAttempt, error) {
	var attempt model.UserQuizAttempt
	err := r.DB.Where("id = ? AND quiz_id = ?", attemptID, quizID).First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrAttemptForbidden
	}
	return &attempt, nil
}

// FindByID 不做用户隔离的读取，供教师端查看学生作答详情
func (r *AttemptRepository) FindByID(attemptID string, quizID uint) (*model.UserQuizAttempt, error) {
	var attempt model.UserQuizAttempt
	err := r.DB.Where("id = ? AND quiz_id = ?", attemptID, quizID).First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

type AttemptListRow struct {
	model.UserQuizAttempt
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// ListByQuiz 教师端查看某测验的全部作答情况
func (r *AttemptRepository) ListByQuiz(quizID uint, page, limit int) ([]AttemptListRow, int64, error) {
	query := r.DB.Table("user_quiz_attempts a").
		Select("a.*, u.name as user_name, u.email as user_email").
		Joins("JOIN users u ON a.user_id = u.id").
		Where("a.quiz_id = ? AND a.deleted_at IS NULL", quizID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []AttemptListRow
	offset := (page - 1) * limit
	err := query.Order("a.attempted_at desc").Offset(offset).Limit(limit).Scan(&rows).Error
	return rows, total, err
}
