package v1

import (
	"errors"
	"strconv"

	"ihome/api/v1/request"
	"ihome/api/v1/response"
	"ihome/internal/metrics"
	"ihome/model"
	"ihome/service"

	"github.com/gin-gonic/gin"
)

// HouseAPI 房源发布与房屋图片接口
type HouseAPI struct {
	service *service.HouseService
}

// NewHouseAPI wires the house service into the HTTP handlers.
func NewHouseAPI(s *service.HouseService) *HouseAPI {
	return &HouseAPI{service: s}
}

// Create 发布新房源。价格和押金以元为单位的小数提交,
// 转换为分存储,超出两位的小数位直接截断。
func (h *HouseAPI) Create(c *gin.Context) {
	var req request.CreateHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ParamErr, "参数缺失")
		return
	}

	price, err := service.ParseAmount(req.Price)
	if err != nil {
		response.Fail(c, response.DataErr, "价格数据异常")
		return
	}
	deposit, err := service.ParseAmount(req.Deposit)
	if err != nil {
		response.Fail(c, response.DataErr, "价格数据异常")
		return
	}

	areaID, err1 := strconv.ParseUint(req.AreaID, 10, 64)
	roomCount, err2 := strconv.Atoi(req.RoomCount)
	acreage, err3 := strconv.Atoi(req.Acreage)
	capacity, err4 := strconv.Atoi(req.Capacity)
	minDays, err5 := strconv.Atoi(req.MinDays)
	maxDays, err6 := strconv.Atoi(req.MaxDays)
	for _, convErr := range []error{err1, err2, err3, err4, err5, err6} {
		if convErr != nil {
			response.Fail(c, response.DataErr, "参数格式错误")
			return
		}
	}

	house := &model.House{
		UserID:    c.GetUint64("user_id"),
		AreaID:    areaID,
		Title:     req.Title,
		Price:     price,
		Address:   req.Address,
		RoomCount: roomCount,
		Acreage:   acreage,
		Unit:      req.Unit,
		Capacity:  capacity,
		Beds:      req.Beds,
		Deposit:   deposit,
		MinDays:   minDays,
		MaxDays:   maxDays,
	}
	houseID, err := h.service.Create(c.Request.Context(), house, req.Facility)
	if err != nil {
		response.Fail(c, response.DBErr, "保存房屋信息失败")
		return
	}
	response.OKData(c, gin.H{"house_id": houseID})
}

// UploadImage 上传房屋图片,multipart 字段名为 house_image
func (h *HouseAPI) UploadImage(c *gin.Context) {
	houseID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		metrics.IncUpload("house", "bad_request")
		response.Fail(c, response.ParamErr, "房屋编号错误")
		return
	}
	file, err := c.FormFile("house_image")
	if err != nil {
		metrics.IncUpload("house", "bad_request")
		response.Fail(c, response.ParamErr, "图片未上传")
		return
	}
	data, err := readFormFile(file)
	if err != nil {
		metrics.IncUpload("house", "read_error")
		response.Fail(c, response.ParamErr, "读取图片数据失败")
		return
	}

	url, err := h.service.SaveImage(c.Request.Context(), houseID, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHouseNotFound):
			metrics.IncUpload("house", "not_found")
			response.Fail(c, response.NoData, "房屋不存在")
		case errors.Is(err, service.ErrThirdParty):
			metrics.IncUpload("house", "gateway_error")
			response.Fail(c, response.ThirdErr, "上传房屋图片失败")
		default:
			metrics.IncUpload("house", "internal_error")
			response.Fail(c, response.DBErr, "保存房屋图片失败")
		}
		return
	}
	metrics.IncUpload("house", "success")
	response.OKData(c, gin.H{"url": url})
}
