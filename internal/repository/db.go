package repository

import (
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"qrlink-go/internal/model"
	"qrlink-go/pkg/logging"
)

// InitDB opens the MySQL store and migrates the entry table.
// TranslateError lets the unique index on short_code surface as
// gorm.ErrDuplicatedKey, which the services map to a conflict.
func InitDB(dsn string, logger *zap.Logger, atomicLogLevel zap.AtomicLevel) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logging.NewGormLogger(logger, logging.ToGormLogLevel(atomicLogLevel.Level())),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.QRCodeEntry{}); err != nil {
		return nil, err
	}

	return db, nil
}
