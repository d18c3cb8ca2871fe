package v1

import (
	"errors"

	"ihome/api/v1/request"
	"ihome/api/v1/response"
	"ihome/config"
	"ihome/internal/metrics"
	"ihome/internal/validator"
	"ihome/middleware"
	"ihome/service"

	"github.com/gin-gonic/gin"
)

// UserAPI exposes HTTP handlers for registration, login and profile
// management. UserAPI 聚合了所有与用户相关的 HTTP Handler。
type UserAPI struct {
	user   *service.UserService
	verify *service.VerifyService
}

// NewUserAPI wires the service layer into the HTTP handlers.
func NewUserAPI(user *service.UserService, verify *service.VerifyService) *UserAPI {
	return &UserAPI{user: user, verify: verify}
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.CookieName, token, int(config.GlobalConfig.Session.Expire), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
}

// Register handles new account creation.
func (u *UserAPI) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncRegister("bad_request")
		response.Fail(c, response.ParamErr, "参数缺失")
		return
	}
	// 校验短信验证码,匹配成功即消费
	if err := u.verify.ConsumeSMSCode(c.Request.Context(), req.Mobile, req.SMSCode); err != nil {
		switch {
		case errors.Is(err, service.ErrCodeExpired):
			metrics.IncRegister("code_expired")
			response.Fail(c, response.DataErr, "短信验证码过期")
		case errors.Is(err, service.ErrCodeMismatch):
			metrics.IncRegister("code_mismatch")
			response.Fail(c, response.DataErr, "短信验证码错误")
		default:
			metrics.IncRegister("internal_error")
			response.Fail(c, response.DBErr, "获取短信验证码失败")
		}
		return
	}

	user, token, err := u.user.Register(c.Request.Context(), req.Mobile, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			metrics.IncRegister("mobile_exists")
			response.Fail(c, response.DataExist, "手机号已注册")
			return
		}
		metrics.IncRegister("internal_error")
		response.Fail(c, response.DBErr, "保存用户信息失败")
		return
	}
	metrics.IncRegister("success")
	setSessionCookie(c, token)
	response.OKData(c, user.ToDict())
}

// Login validates mobile/password and establishes a session.
func (u *UserAPI) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncLogin("bad_request")
		response.Fail(c, response.ParamErr, "参数缺失")
		return
	}
	if !validator.IsValidMobile(req.Mobile) {
		metrics.IncLogin("bad_request")
		response.Fail(c, response.DataErr, "手机号格式错误")
		return
	}

	userID, token, err := u.user.Login(c.Request.Context(), req.Mobile, req.Password)
	if err != nil {
		// 用户不存在与密码错误返回同一提示
		if errors.Is(err, service.ErrInvalidCredentials) {
			metrics.IncLogin("unauthorized")
			response.Fail(c, response.DataErr, "手机号或密码错误")
			return
		}
		metrics.IncLogin("internal_error")
		response.Fail(c, response.DBErr, "查询用户信息失败")
		return
	}
	metrics.IncLogin("success")
	setSessionCookie(c, token)
	response.OKData(c, gin.H{"user_id": userID})
}

// Logout 清除会话并撤销 cookie
func (u *UserAPI) Logout(c *gin.Context) {
	token := c.GetString("session_token")
	if err := u.user.Logout(c.Request.Context(), token); err != nil {
		response.Fail(c, response.DBErr, "退出登录失败")
		return
	}
	clearSessionCookie(c)
	response.JSON(c, response.OK, "OK", nil)
}

// Profile 获取当前用户资料
func (u *UserAPI) Profile(c *gin.Context) {
	userID := c.GetUint64("user_id")
	user, err := u.user.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, response.DataErr, "获取用户信息失败")
			return
		}
		response.Fail(c, response.DBErr, "获取用户信息失败")
		return
	}
	response.OKData(c, user.ToDict())
}

// UpdateName 修改用户名,数据库更新成功后同步会话缓存
func (u *UserAPI) UpdateName(c *gin.Context) {
	var req request.UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ParamErr, "用户名称不能为空")
		return
	}
	userID := c.GetUint64("user_id")
	token := c.GetString("session_token")
	if err := u.user.UpdateName(c.Request.Context(), userID, token, req.Name); err != nil {
		response.Fail(c, response.DBErr, "更新用户信息失败")
		return
	}
	response.OKData(c, gin.H{"name": req.Name})
}

// SaveAvatar 上传用户头像,multipart 字段名为 avatar
func (u *UserAPI) SaveAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		metrics.IncUpload("avatar", "bad_request")
		response.Fail(c, response.ParamErr, "未上传用户头像")
		return
	}
	data, err := readFormFile(file)
	if err != nil {
		metrics.IncUpload("avatar", "read_error")
		response.Fail(c, response.ParamErr, "读取头像数据失败")
		return
	}

	userID := c.GetUint64("user_id")
	avatarURL, err := u.user.SaveAvatar(c.Request.Context(), userID, data)
	if err != nil {
		if errors.Is(err, service.ErrThirdParty) {
			metrics.IncUpload("avatar", "gateway_error")
			response.Fail(c, response.ThirdErr, "上传用户头像失败")
			return
		}
		metrics.IncUpload("avatar", "internal_error")
		response.Fail(c, response.DBErr, "保存头像数据失败")
		return
	}
	metrics.IncUpload("avatar", "success")
	response.OKData(c, gin.H{"avatar_url": avatarURL})
}

// SetAuth 设置实名信息,只允许设置一次
func (u *UserAPI) SetAuth(c *gin.Context) {
	var req request.RealNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ParamErr, "参数缺失")
		return
	}
	userID := c.GetUint64("user_id")
	if err := u.user.SetRealName(c.Request.Context(), userID, req.RealName, req.IDCard); err != nil {
		if errors.Is(err, service.ErrRealNameSet) {
			response.Fail(c, response.DataExist, "已设置实名信息")
			return
		}
		response.Fail(c, response.DBErr, "保存用户实名信息失败")
		return
	}
	response.JSON(c, response.OK, "OK", nil)
}

// GetAuth 查询实名信息
func (u *UserAPI) GetAuth(c *gin.Context) {
	userID := c.GetUint64("user_id")
	user, err := u.user.GetRealName(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, response.DataErr, "无效操作")
			return
		}
		response.Fail(c, response.DBErr, "查询实名信息失败")
		return
	}
	response.OKData(c, user.AuthToDict())
}
