package service

import (
	"context"
	"sync"
	"time"

	"ihome/internal/cache"
	"ihome/model"

	"gorm.io/gorm"
)

// fakeCache 内存实现,忽略 TTL,可注入读写错误
type fakeCache struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
	delErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", f.getErr
	}
	val, ok := f.data[key]
	if !ok {
		return "", cache.ErrNil
	}
	return val, nil
}

func (f *fakeCache) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeCache) Del(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.data, key)
	return nil
}

type fakeCaptcha struct {
	text string
	img  []byte
	err  error
}

func (f *fakeCaptcha) Generate() (string, []byte, error) {
	return f.text, f.img, f.err
}

type fakeSender struct {
	status int
	err    error
	sent   []string // 收到的手机号
	params [][]string
}

func (f *fakeSender) Send(ctx context.Context, mobile string, params []string) (int, error) {
	f.sent = append(f.sent, mobile)
	f.params = append(f.params, params)
	return f.status, f.err
}

type fakeUploader struct {
	key string
	err error
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte) (string, error) {
	return f.key, f.err
}

// fakeUserStore 内存用户表,SetRealName 按条件更新语义实现
type fakeUserStore struct {
	mu      sync.Mutex
	nextID  uint64
	byID    map[uint64]*model.User
	failAll error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, byID: map[uint64]*model.User{}}
}

func (f *fakeUserStore) CreateUser(user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	for _, u := range f.byID {
		if u.Mobile == user.Mobile {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.byID[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) FindByMobile(mobile string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, u := range f.byID {
		if u.Mobile == mobile {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) FindByID(id uint64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) UpdateName(id uint64, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Name = name
	return nil
}

func (f *fakeUserStore) UpdateAvatar(id uint64, avatarURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.AvatarURL = avatarURL
	return nil
}

func (f *fakeUserStore) SetRealName(id uint64, realName, idCard string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok || u.RealName != nil || u.IDCard != nil {
		return 0, nil
	}
	u.RealName = &realName
	u.IDCard = &idCard
	return 1, nil
}
