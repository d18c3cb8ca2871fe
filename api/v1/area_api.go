package v1

import (
	"errors"
	"fmt"
	"net/http"

	"ihome/api/v1/response"
	"ihome/service"

	"github.com/gin-gonic/gin"
)

// AreaAPI 城区信息接口
type AreaAPI struct {
	service *service.AreaService
}

// NewAreaAPI wires the area service into the HTTP handler.
func NewAreaAPI(s *service.AreaService) *AreaAPI {
	return &AreaAPI{service: s}
}

// GetAreas 返回全部城区信息。缓存中保存的是序列化好的 JSON,
// 命中时直接拼进固定包装返回,不再反序列化。
func (a *AreaAPI) GetAreas(c *gin.Context) {
	blob, err := a.service.ListJSON(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			response.Fail(c, response.NoData, "查询无数据")
			return
		}
		response.Fail(c, response.DBErr, "查询区域信息异常")
		return
	}
	body := fmt.Sprintf(`{"errno":"%s","errmsg":"OK","data":%s}`, response.OK, blob)
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(body))
}
