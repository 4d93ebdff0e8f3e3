// Package model 定义数据库持久化模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 迁移指定模型的表结构，key 为空时迁移全部
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "User":
		return db.AutoMigrate(User{})

	case "Project":
		return db.AutoMigrate(Project{}, ProjectCollaborator{})

	case "Entry":
		return db.AutoMigrate(Entry{})

	case "EntryVersion":
		return db.AutoMigrate(EntryVersion{})

	case "Template":
		return db.AutoMigrate(Template{})

	case "":
		return db.AutoMigrate(
			User{},
			Project{},
			ProjectCollaborator{},
			Entry{},
			EntryVersion{},
			Template{},
		)
	}
	return nil
}
