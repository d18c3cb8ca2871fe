package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// 运营商号段为 13/14/15/17/18 开头的 11 位手机号
var mobileRegexp = regexp.MustCompile(`^1[34578]\d{9}$`)

// IsValidMobile 校验手机号格式
func IsValidMobile(mobile string) bool {
	return mobileRegexp.MatchString(mobile)
}

// IsMobile 是一个自定义的校验函数，用于验证手机号格式
func IsMobile(fl validator.FieldLevel) bool {
	return IsValidMobile(fl.Field().String())
}
