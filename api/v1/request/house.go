package request

// CreateHouseRequest 房源发布参数。前端以字符串提交数字字段,
// 由 handler 负责转换。
type CreateHouseRequest struct {
	Title     string   `json:"title" binding:"required"`
	Price     string   `json:"price" binding:"required"`
	AreaID    string   `json:"area_id" binding:"required"`
	Address   string   `json:"address" binding:"required"`
	RoomCount string   `json:"room_count" binding:"required"`
	Acreage   string   `json:"acreage" binding:"required"`
	Unit      string   `json:"unit" binding:"required"`
	Capacity  string   `json:"capacity" binding:"required"`
	Beds      string   `json:"beds" binding:"required"`
	Deposit   string   `json:"deposit" binding:"required"`
	MinDays   string   `json:"min_days" binding:"required"`
	MaxDays   string   `json:"max_days" binding:"required"`
	Facility  []uint64 `json:"facility"`
}
