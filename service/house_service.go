package service

import (
	"context"
	"errors"
	"fmt"

	"ihome/internal/storage"
	"ihome/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrHouseNotFound 房屋不存在
	ErrHouseNotFound = errors.New("house not found")
	// ErrBadAmount 金额格式非法
	ErrBadAmount = errors.New("invalid amount")
)

// HouseStore 房屋数据的读写接口,由 dao.HouseDAO 实现
type HouseStore interface {
	CreateHouse(house *model.House, facilityIDs []uint64) error
	FindByID(id uint64) (*model.House, error)
	AddImage(image *model.HouseImage) error
}

// HouseService 房源发布及图片上传
type HouseService struct {
	dao          HouseStore
	uploader     storage.Uploader
	domainPrefix string
}

// NewHouseService 创建一个新的 HouseService 实例
func NewHouseService(dao HouseStore, uploader storage.Uploader, domainPrefix string) *HouseService {
	return &HouseService{dao: dao, uploader: uploader, domainPrefix: domainPrefix}
}

// ParseAmount converts a decimal currency string (元) into integer
// minor units (分), truncating toward zero. 12.345 元 -> 1234 分。
func ParseAmount(value string) (int64, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadAmount, value)
	}
	return d.Mul(decimal.NewFromInt(100)).IntPart(), nil
}

// Create 保存房源。房屋总是落库,设施列表存在时在同一事务内关联,
// 未知设施 id 被静默丢弃。
func (s *HouseService) Create(ctx context.Context, house *model.House, facilityIDs []uint64) (uint64, error) {
	if err := s.dao.CreateHouse(house, facilityIDs); err != nil {
		return 0, err
	}
	return house.ID, nil
}

// SaveImage 校验房屋存在后上传图片并保存记录,返回完整外链
func (s *HouseService) SaveImage(ctx context.Context, houseID uint64, data []byte) (string, error) {
	if _, err := s.dao.FindByID(houseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrHouseNotFound
		}
		return "", err
	}
	imageName, err := s.uploader.Upload(ctx, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrThirdParty, err)
	}
	if err := s.dao.AddImage(&model.HouseImage{HouseID: houseID, URL: imageName}); err != nil {
		return "", err
	}
	return s.domainPrefix + imageName, nil
}
