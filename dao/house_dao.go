package dao

import (
	"ihome/model"

	"gorm.io/gorm"
)

type HouseDAO struct {
	db *gorm.DB
}

// NewHouseDAO 创建一个新的 HouseDAO 实例
func NewHouseDAO(db *gorm.DB) *HouseDAO {
	return &HouseDAO{db: db}
}

// CreateHouse 在同一事务内保存房屋及其配套设施关联。
// 设施列表按 id 过滤,数据库中不存在的 id 被直接丢弃。
func (dao *HouseDAO) CreateHouse(house *model.House, facilityIDs []uint64) error {
	return dao.db.Transaction(func(tx *gorm.DB) error {
		if len(facilityIDs) > 0 {
			var facilities []model.Facility
			if err := tx.Where("id IN ?", facilityIDs).Find(&facilities).Error; err != nil {
				return err
			}
			house.Facilities = facilities
		}
		return tx.Create(house).Error
	})
}

// FindByID 根据房屋 id 查询
func (dao *HouseDAO) FindByID(id uint64) (*model.House, error) {
	var house model.House
	if err := dao.db.Where("id = ?", id).First(&house).Error; err != nil {
		return nil, err
	}
	return &house, nil
}

// AddImage 保存一条房屋图片记录
func (dao *HouseDAO) AddImage(image *model.HouseImage) error {
	return dao.db.Create(image).Error
}
