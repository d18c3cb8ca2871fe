package dao

import (
	"ihome/model"

	"gorm.io/gorm"
)

type AreaDAO struct {
	db *gorm.DB
}

// NewAreaDAO 创建一个新的 AreaDAO 实例
func NewAreaDAO(db *gorm.DB) *AreaDAO {
	return &AreaDAO{db: db}
}

// ListAll 查询全部城区信息
func (dao *AreaDAO) ListAll() ([]model.Area, error) {
	var areas []model.Area
	if err := dao.db.Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}
