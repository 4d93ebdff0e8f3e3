package model

import (
	"github.com/labnote/labnote-service/pkg/timex"
)

// User 用户表模型
// username 与 email 均有唯一索引，邮箱唯一约束是联合登录并发创建的最后防线
// email 可空：纯密码注册可以不带邮箱，唯一性只约束已填写的邮箱
type User struct {
	UID       int64      `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Username  string     `gorm:"column:username;uniqueIndex;size:64" json:"username"`
	Email     *string    `gorm:"column:email;uniqueIndex;size:128" json:"email"`
	Password  string     `gorm:"column:password;size:128" json:"password"`
	Avatar    string     `gorm:"column:avatar;size:512" json:"avatar"`
	Provider  string     `gorm:"column:provider;size:32" json:"provider"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;autoUpdateTime:false" json:"updatedAt"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;autoUpdateTime:false" json:"createdAt"`
}
