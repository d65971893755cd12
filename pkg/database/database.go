package database

import (
	"eduquiz_backend/internal/config"
	"eduquiz_backend/internal/model"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// 唯一约束冲突需要翻译成 gorm.ErrDuplicatedKey，
		// 答题记录的 (user_id, quiz_id) 唯一索引依赖这个判断
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.Course{},
			&model.Quiz{},
			&model.Question{},
			&model.Answer{},
			&model.UserQuizAttempt{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")

		// 默认管理员账号（仅当用户表为空时创建）
		var count int64
		db.Model(&model.User{}).Count(&count)
		if count == 0 {
			hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
			if err == nil {
				admin := &model.User{
					Name:     "admin",
					Email:    "admin@eduquiz.local",
					Password: string(hashed),
					Role:     model.Admin,
				}
				db.Create(admin)
				log.Println("Default admin account created: admin@eduquiz.local / admin123")
			}
		}
	}

	return db, nil
}
