package model

// Area 城区模型，静态参考数据
type Area struct {
	ID   uint64 `gorm:"primarykey" json:"aid"`
	Name string `gorm:"not null;size:32" json:"aname"`
}

// Facility 房屋设施模型，参考数据
type Facility struct {
	ID   uint64 `gorm:"primarykey" json:"fid"`
	Name string `gorm:"not null;size:32" json:"fname"`
}
