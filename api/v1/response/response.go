package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 统一的业务状态码,与前端约定保持字符串形式
const (
	OK         = "0"
	DBErr      = "4001"
	NoData     = "4002"
	DataExist  = "4003"
	DataErr    = "4004"
	SessionErr = "4101"
	LoginErr   = "4102"
	ParamErr   = "4103"
	ThirdErr   = "4301"
	ServerErr  = "4500"
)

// Envelope 是所有接口的固定响应包装 {errno, errmsg, data}
type Envelope struct {
	Errno  string      `json:"errno"`
	Errmsg string      `json:"errmsg"`
	Data   interface{} `json:"data,omitempty"`
}

// JSON 按固定包装返回业务结果,HTTP 状态码恒为 200
func JSON(c *gin.Context, errno, errmsg string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Errno: errno, Errmsg: errmsg, Data: data})
}

// OKData 成功响应
func OKData(c *gin.Context, data interface{}) {
	JSON(c, OK, "OK", data)
}

// Fail 失败响应,不携带数据
func Fail(c *gin.Context, errno, errmsg string) {
	JSON(c, errno, errmsg, nil)
}

// AbortSession 会话校验失败,终止后续 handler
func AbortSession(c *gin.Context, errmsg string) {
	c.AbortWithStatusJSON(http.StatusOK, Envelope{Errno: SessionErr, Errmsg: errmsg})
}
