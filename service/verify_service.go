package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"ihome/internal/cache"
	"ihome/internal/captcha"
	"ihome/internal/sms"
	"ihome/model"

	"gorm.io/gorm"
)

var (
	// ErrCodeExpired 验证码不存在或已过期
	ErrCodeExpired = errors.New("verification code expired")
	// ErrCodeMismatch 验证码输入错误
	ErrCodeMismatch = errors.New("verification code mismatch")
	// ErrMobileExists 手机号已注册
	ErrMobileExists = errors.New("mobile already registered")
	// ErrThirdParty 第三方网关调用失败
	ErrThirdParty = errors.New("third party service failed")
)

// MobileFinder 按手机号查询用户,用于注册前的占用检查
type MobileFinder interface {
	FindByMobile(mobile string) (*model.User, error)
}

// VerifyService 图片验证码与短信验证码的签发和消费
type VerifyService struct {
	cache   cache.Client
	captcha captcha.Generator
	sms     sms.Sender
	users   MobileFinder
}

// NewVerifyService 创建一个新的 VerifyService 实例
func NewVerifyService(c cache.Client, gen captcha.Generator, sender sms.Sender, users MobileFinder) *VerifyService {
	return &VerifyService{cache: c, captcha: gen, sms: sender, users: users}
}

// IssueImageCode 生成图片验证码并以调用方提供的编号缓存明文。
// 缓存写入失败视为致命错误,否则后续无法校验。
func (s *VerifyService) IssueImageCode(ctx context.Context, codeID string) ([]byte, error) {
	text, image, err := s.captcha.Generate()
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetEx(ctx, cache.ImageCodeKey(codeID), text, cache.ImageCodeExpires); err != nil {
		return nil, err
	}
	return image, nil
}

// IssueSMSCode 校验图片验证码后生成并发送 6 位短信验证码。
// 图片验证码比较忽略大小写,匹配成功后即删除(尽力而为)。
func (s *VerifyService) IssueSMSCode(ctx context.Context, mobile, imageCodeID, imageCode string) error {
	key := cache.ImageCodeKey(imageCodeID)
	realCode, err := s.cache.Get(ctx, key)
	if errors.Is(err, cache.ErrNil) {
		return ErrCodeExpired
	}
	if err != nil {
		return fmt.Errorf("get image code: %w", err)
	}
	if !strings.EqualFold(realCode, imageCode) {
		return ErrCodeMismatch
	}
	// 已消费,删除失败不影响流程
	if err := s.cache.Del(ctx, key); err != nil {
		log.Printf("delete image code failed: %v", err)
	}

	if _, err := s.users.FindByMobile(mobile); err == nil {
		return ErrMobileExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("query user by mobile: %w", err)
	}

	smsCode := fmt.Sprintf("%06d", rand.Intn(1000000))
	if err := s.cache.SetEx(ctx, cache.SMSCodeKey(mobile), smsCode, cache.SMSCodeExpires); err != nil {
		return fmt.Errorf("save sms code: %w", err)
	}

	expiresMinutes := strconv.Itoa(int(cache.SMSCodeExpires / time.Minute))
	status, err := s.sms.Send(ctx, mobile, []string{smsCode, expiresMinutes})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrThirdParty, err)
	}
	if status != 0 {
		return fmt.Errorf("%w: gateway status %d", ErrThirdParty, status)
	}
	return nil
}

// ConsumeSMSCode 校验短信验证码,精确比较,匹配成功后删除。
// 删除是尽力而为,失败只记录日志。
func (s *VerifyService) ConsumeSMSCode(ctx context.Context, mobile, smsCode string) error {
	key := cache.SMSCodeKey(mobile)
	realCode, err := s.cache.Get(ctx, key)
	if errors.Is(err, cache.ErrNil) {
		return ErrCodeExpired
	}
	if err != nil {
		return fmt.Errorf("get sms code: %w", err)
	}
	if realCode != smsCode {
		return ErrCodeMismatch
	}
	if err := s.cache.Del(ctx, key); err != nil {
		log.Printf("delete sms code failed: %v", err)
	}
	return nil
}
