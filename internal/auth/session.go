package auth

import (
	"context"
	"encoding/json"
	"time"

	"ihome/internal/cache"

	"github.com/google/uuid"
)

// Session 服务端会话记录,登录/注册时写入,注销时删除
type Session struct {
	UserID uint64 `json:"user_id"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

// SessionManager persists session records in the cache, keyed by a
// random session id that travels inside the signed token.
type SessionManager struct {
	cache cache.Client
	ttl   time.Duration
}

func NewSessionManager(c cache.Client, ttl time.Duration) *SessionManager {
	return &SessionManager{cache: c, ttl: ttl}
}

// Create stores a fresh session record and returns the signed token
// handed to the client as a cookie.
func (m *SessionManager) Create(ctx context.Context, userID uint64, name, mobile string) (string, error) {
	sid := uuid.NewString()
	data, err := json.Marshal(Session{UserID: userID, Name: name, Mobile: mobile})
	if err != nil {
		return "", err
	}
	if err := m.cache.SetEx(ctx, cache.SessionKey(sid), string(data), m.ttl); err != nil {
		return "", err
	}
	return GenerateToken(userID, sid)
}

// Get resolves a client token to its server-side session record.
func (m *SessionManager) Get(ctx context.Context, token string) (*Session, error) {
	claims, err := ParseToken(token)
	if err != nil {
		return nil, err
	}
	data, err := m.cache.Get(ctx, cache.SessionKey(claims.SessionID))
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// UpdateName 同步修改会话中缓存的用户名,保持与数据库一致
func (m *SessionManager) UpdateName(ctx context.Context, token, name string) error {
	claims, err := ParseToken(token)
	if err != nil {
		return err
	}
	key := cache.SessionKey(claims.SessionID)
	data, err := m.cache.Get(ctx, key)
	if err != nil {
		return err
	}
	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return err
	}
	sess.Name = name
	updated, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return m.cache.SetEx(ctx, key, string(updated), m.ttl)
}

// Destroy removes the session record, invalidating the token.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	claims, err := ParseToken(token)
	if err != nil {
		return err
	}
	return m.cache.Del(ctx, cache.SessionKey(claims.SessionID))
}
