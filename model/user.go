package model

import "time"

// User 用户模型
type User struct {
	ID           uint64    `gorm:"primarykey" json:"user_id"`
	Name         string    `gorm:"not null;size:32" json:"name"`
	Mobile       string    `gorm:"unique;not null;size:11" json:"mobile"`
	PasswordHash string    `gorm:"not null;size:128" json:"-"` // 忽略JSON序列化
	AvatarURL    string    `gorm:"size:128" json:"avatar_url"`
	RealName     *string   `gorm:"size:32" json:"-"`
	IDCard       *string   `gorm:"size:20" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Houses       []House   `gorm:"foreignKey:UserID" json:"-"`
}

// ToDict 返回可对外展示的用户信息（不含密码哈希）
func (u *User) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"user_id":    u.ID,
		"name":       u.Name,
		"mobile":     u.Mobile,
		"avatar_url": u.AvatarURL,
	}
}

// AuthToDict 返回实名认证信息
func (u *User) AuthToDict() map[string]interface{} {
	realName, idCard := "", ""
	if u.RealName != nil {
		realName = *u.RealName
	}
	if u.IDCard != nil {
		idCard = *u.IDCard
	}
	return map[string]interface{}{
		"user_id":   u.ID,
		"real_name": realName,
		"id_card":   idCard,
	}
}
