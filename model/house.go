package model

import "time"

// House 房屋模型
// Price/Deposit 以分为单位存储，避免浮点误差
type House struct {
	ID         uint64       `gorm:"primarykey" json:"house_id"`
	UserID     uint64       `gorm:"not null;index" json:"user_id"`
	AreaID     uint64       `gorm:"not null;index" json:"area_id"`
	Title      string       `gorm:"not null;size:64" json:"title"`
	Price      int64        `gorm:"not null;default:0" json:"price"`
	Address    string       `gorm:"size:512" json:"address"`
	RoomCount  int          `gorm:"default:1" json:"room_count"`
	Acreage    int          `gorm:"default:0" json:"acreage"`
	Unit       string       `gorm:"size:32" json:"unit"` // 房型,如几室几厅
	Capacity   int          `gorm:"default:1" json:"capacity"`
	Beds       string       `gorm:"size:64" json:"beds"` // 卧床配置
	Deposit    int64        `gorm:"default:0" json:"deposit"`
	MinDays    int          `gorm:"default:1" json:"min_days"`
	MaxDays    int          `gorm:"default:0" json:"max_days"` // 0表示不限
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	Facilities []Facility   `gorm:"many2many:house_facility" json:"-"`
	Images     []HouseImage `gorm:"foreignKey:HouseID" json:"-"`
}

// HouseImage 房屋图片，URL 为上传网关返回的相对路径
type HouseImage struct {
	ID      uint64 `gorm:"primarykey" json:"image_id"`
	HouseID uint64 `gorm:"not null;index" json:"house_id"`
	URL     string `gorm:"not null;size:256" json:"url"`
}
