// Package model 定义数据模型
package model

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the table of the named model, unknown names are ignored
// AutoMigrate 创建或更新指定模型的表结构
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "Folder":
		return errors.Wrap(db.AutoMigrate(&Folder{}), "migrate folder")
	case "Note":
		return errors.Wrap(db.AutoMigrate(&Note{}), "migrate note")
	}
	return nil
}

// AutoMigrateAll 迁移全部模型
func AutoMigrateAll(db *gorm.DB) error {
	for _, key := range []string{"Folder", "Note"} {
		if err := AutoMigrate(db, key); err != nil {
			return err
		}
	}
	return nil
}
