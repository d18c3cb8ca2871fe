package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// 验证码与区域信息的缓存键前缀及有效期
const (
	ImageCodePrefix = "ImageCode_"
	SMSCodePrefix   = "SMSCode_"
	AreaInfoKey     = "area_info"
	SessionPrefix   = "ih:session:"

	ImageCodeExpires = 180 * time.Second
	SMSCodeExpires   = 300 * time.Second
	AreaInfoExpires  = 7200 * time.Second
)

// ErrNil 表示键不存在或已过期
var ErrNil = errors.New("cache: nil")

// Client is the key-value cache surface the handlers depend on.
// 按接口注入,便于在测试中替换为内存实现。
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	SetEx(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// ImageCodeKey 拼接图片验证码缓存键
func ImageCodeKey(id string) string { return ImageCodePrefix + id }

// SMSCodeKey 拼接短信验证码缓存键
func SMSCodeKey(mobile string) string { return SMSCodePrefix + mobile }

// SessionKey 拼接会话缓存键
func SessionKey(sid string) string { return SessionPrefix + sid }

// RedisClient adapts a go-redis connection to the Client interface.
type RedisClient struct {
	rdb *redis.Client
}

func NewRedisClient(rdb *redis.Client) *RedisClient {
	return &RedisClient{rdb: rdb}
}

func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNil
	}
	return val, err
}

func (c *RedisClient) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *RedisClient) Del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}
