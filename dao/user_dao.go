package dao

import (
	"ihome/model"

	"gorm.io/gorm"
)

type UserDAO struct {
	db *gorm.DB
}

// NewUserDAO 创建一个新的 UserDAO 实例
func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

// CreateUser 创建新用户
func (dao *UserDAO) CreateUser(user *model.User) error {
	return dao.db.Create(user).Error
}

// FindByMobile 根据手机号查询用户
func (dao *UserDAO) FindByMobile(mobile string) (*model.User, error) {
	var user model.User
	err := dao.db.Where("mobile = ?", mobile).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID 根据用户 id 获取用户
func (dao *UserDAO) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := dao.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateName 更新用户名
func (dao *UserDAO) UpdateName(id uint64, name string) error {
	return dao.db.Model(&model.User{}).Where("id = ?", id).Update("name", name).Error
}

// UpdateAvatar 保存头像的相对路径
func (dao *UserDAO) UpdateAvatar(id uint64, avatarURL string) error {
	return dao.db.Model(&model.User{}).Where("id = ?", id).Update("avatar_url", avatarURL).Error
}

// SetRealName 条件更新实名信息,仅当两个字段均未设置时生效,
// 返回受影响的行数供调用方判断是否已设置过。
func (dao *UserDAO) SetRealName(id uint64, realName, idCard string) (int64, error) {
	res := dao.db.Model(&model.User{}).
		Where("id = ? AND real_name IS NULL AND id_card IS NULL", id).
		Updates(map[string]interface{}{"real_name": realName, "id_card": idCard})
	return res.RowsAffected, res.Error
}
