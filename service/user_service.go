package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"ihome/internal/auth"
	"ihome/internal/storage"
	"ihome/model"
	"ihome/utils"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrUserExists 手机号已注册
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials 手机号或密码错误,二者不作区分
	ErrInvalidCredentials = errors.New("mobile or password incorrect")
	// ErrRealNameSet 实名信息已设置,不可重复提交
	ErrRealNameSet = errors.New("real name info already set")
)

// UserStore 用户数据的读写接口,由 dao.UserDAO 实现
type UserStore interface {
	CreateUser(user *model.User) error
	FindByMobile(mobile string) (*model.User, error)
	FindByID(id uint64) (*model.User, error)
	UpdateName(id uint64, name string) error
	UpdateAvatar(id uint64, avatarURL string) error
	SetRealName(id uint64, realName, idCard string) (int64, error)
}

// UserService bundles the store, session manager and upload gateway
// behind the user-facing operations.
type UserService struct {
	dao          UserStore
	Session      *auth.SessionManager
	uploader     storage.Uploader
	domainPrefix string
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(dao UserStore, session *auth.SessionManager, uploader storage.Uploader, domainPrefix string) *UserService {
	return &UserService{dao: dao, Session: session, uploader: uploader, domainPrefix: domainPrefix}
}

// Register persists a freshly created user after hashing the password
// and establishes a session. 用户名默认为手机号。
func (s *UserService) Register(ctx context.Context, mobile, password string) (*model.User, string, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	user := &model.User{Name: mobile, Mobile: mobile, PasswordHash: hashed}
	if err := s.dao.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrUserExists
		}
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, "", ErrUserExists
		}
		return nil, "", err
	}
	token, err := s.Session.Create(ctx, user.ID, user.Name, user.Mobile)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 校验手机号和密码。用户不存在与密码错误返回同一错误,
// 避免暴露手机号是否已注册。
func (s *UserService) Login(ctx context.Context, mobile, password string) (uint64, string, error) {
	user, err := s.dao.FindByMobile(mobile)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, "", ErrInvalidCredentials
	}
	if err != nil {
		return 0, "", err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return 0, "", ErrInvalidCredentials
	}
	token, err := s.Session.Create(ctx, user.ID, user.Name, user.Mobile)
	if err != nil {
		return 0, "", err
	}
	return user.ID, token, nil
}

// Logout 清除会话记录
func (s *UserService) Logout(ctx context.Context, token string) error {
	return s.Session.Destroy(ctx, token)
}

// Profile 查询用户资料
func (s *UserService) Profile(ctx context.Context, userID uint64) (*model.User, error) {
	user, err := s.dao.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateName 更新用户名并同步会话缓存中的名称
func (s *UserService) UpdateName(ctx context.Context, userID uint64, token, name string) error {
	if err := s.dao.UpdateName(userID, name); err != nil {
		return err
	}
	// 数据库已提交,会话同步失败只记录日志
	if err := s.Session.UpdateName(ctx, token, name); err != nil {
		log.Printf("update session name failed: %v", err)
	}
	return nil
}

// SaveAvatar 上传头像并保存相对路径,返回拼接后的完整外链
func (s *UserService) SaveAvatar(ctx context.Context, userID uint64, data []byte) (string, error) {
	imageName, err := s.uploader.Upload(ctx, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrThirdParty, err)
	}
	if err := s.dao.UpdateAvatar(userID, imageName); err != nil {
		return "", err
	}
	return s.domainPrefix + imageName, nil
}

// SetRealName 实名信息只允许设置一次,条件更新未命中说明已设置
func (s *UserService) SetRealName(ctx context.Context, userID uint64, realName, idCard string) error {
	rows, err := s.dao.SetRealName(userID, realName, idCard)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRealNameSet
	}
	return nil
}

// GetRealName 查询实名信息
func (s *UserService) GetRealName(ctx context.Context, userID uint64) (*model.User, error) {
	user, err := s.dao.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
