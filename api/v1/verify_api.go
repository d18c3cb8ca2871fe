package v1

import (
	"errors"
	"net/http"

	"ihome/api/v1/response"
	"ihome/internal/metrics"
	"ihome/internal/validator"
	"ihome/service"

	"github.com/gin-gonic/gin"
)

// VerifyAPI 图片验证码与短信验证码接口
type VerifyAPI struct {
	service *service.VerifyService
}

// NewVerifyAPI wires the verify service into the HTTP handlers.
func NewVerifyAPI(s *service.VerifyService) *VerifyAPI {
	return &VerifyAPI{service: s}
}

// ImageCode 按前端提供的编号生成图片验证码,响应体为图片本身。
// 缓存写入失败时返回错误包装而不是图片。
func (v *VerifyAPI) ImageCode(c *gin.Context) {
	codeID := c.Param("id")
	if codeID == "" {
		metrics.IncCodeIssue("image", "bad_request")
		response.Fail(c, response.ParamErr, "参数缺失")
		return
	}
	image, err := v.service.IssueImageCode(c.Request.Context(), codeID)
	if err != nil {
		metrics.IncCodeIssue("image", "cache_error")
		response.Fail(c, response.DBErr, "保存图片验证码异常")
		return
	}
	metrics.IncCodeIssue("image", "success")
	c.Data(http.StatusOK, "image/png", image)
}

// SMSCode 校验图片验证码并向手机号发送短信验证码
func (v *VerifyAPI) SMSCode(c *gin.Context) {
	mobile := c.Param("mobile")
	imageCode := c.Query("text")
	imageCodeID := c.Query("id")
	if mobile == "" || imageCode == "" || imageCodeID == "" {
		metrics.IncCodeIssue("sms", "bad_request")
		response.Fail(c, response.ParamErr, "参数缺失")
		return
	}
	if !validator.IsValidMobile(mobile) {
		metrics.IncCodeIssue("sms", "bad_request")
		response.Fail(c, response.ParamErr, "手机号格式错误")
		return
	}

	err := v.service.IssueSMSCode(c.Request.Context(), mobile, imageCodeID, imageCode)
	switch {
	case err == nil:
		metrics.IncCodeIssue("sms", "success")
		response.JSON(c, response.OK, "发送成功", nil)
	case errors.Is(err, service.ErrCodeExpired):
		metrics.IncCodeIssue("sms", "code_expired")
		response.Fail(c, response.DataErr, "图片验证码过期")
	case errors.Is(err, service.ErrCodeMismatch):
		metrics.IncCodeIssue("sms", "code_mismatch")
		response.Fail(c, response.DataErr, "图片验证码输入错误")
	case errors.Is(err, service.ErrMobileExists):
		metrics.IncCodeIssue("sms", "mobile_exists")
		response.Fail(c, response.DataExist, "手机号已注册")
	case errors.Is(err, service.ErrThirdParty):
		metrics.IncCodeIssue("sms", "gateway_error")
		response.Fail(c, response.ThirdErr, "发送短信失败")
	default:
		metrics.IncCodeIssue("sms", "internal_error")
		response.Fail(c, response.DBErr, "保存短信验证码失败")
	}
}
