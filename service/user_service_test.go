package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ihome/config"
	"ihome/internal/auth"
	"ihome/utils"

	"github.com/stretchr/testify/require"
)

func init() {
	// 会话令牌签名依赖全局配置
	config.GlobalConfig = &config.Config{
		Session: config.SessionConfig{Secret: "test-secret", Expire: 3600},
	}
}

func newUserService(store UserStore, c *fakeCache, uploader *fakeUploader) *UserService {
	session := auth.NewSessionManager(c, time.Hour)
	return NewUserService(store, session, uploader, "http://cdn.example.com/")
}

func TestRegisterHashesPasswordAndCreatesSession(t *testing.T) {
	store := newFakeUserStore()
	c := newFakeCache()
	svc := newUserService(store, c, &fakeUploader{})

	user, token, err := svc.Register(context.Background(), "13800138000", "Passw0rd!")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "13800138000", user.Name) // 用户名默认为手机号
	require.NotEqual(t, "Passw0rd!", user.PasswordHash)
	require.True(t, utils.CheckPasswordHash("Passw0rd!", user.PasswordHash))
	require.NotEmpty(t, token)
	require.Len(t, c.data, 1) // 会话记录已写入

	sess, err := svc.Session.Get(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, user.ID, sess.UserID)
	require.Equal(t, "13800138000", sess.Mobile)
}

func TestRegisterDuplicateMobile(t *testing.T) {
	store := newFakeUserStore()
	c := newFakeCache()
	svc := newUserService(store, c, &fakeUploader{})
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "13800138000", "Passw0rd!")
	require.NoError(t, err)
	sessions := len(c.data)

	_, _, err = svc.Register(ctx, "13800138000", "Other123!")
	require.ErrorIs(t, err, ErrUserExists)
	require.Len(t, c.data, sessions) // 注册失败不建立会话
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	store := newFakeUserStore()
	svc := newUserService(store, newFakeCache(), &fakeUploader{})
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "13800138000", "Passw0rd!")
	require.NoError(t, err)

	_, _, unknownErr := svc.Login(ctx, "13912345678", "Passw0rd!")
	_, _, wrongPwdErr := svc.Login(ctx, "13800138000", "wrong-password")
	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongPwdErr, ErrInvalidCredentials)
	require.Equal(t, unknownErr, wrongPwdErr)
}

func TestLoginAndLogout(t *testing.T) {
	store := newFakeUserStore()
	svc := newUserService(store, newFakeCache(), &fakeUploader{})
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "13800138000", "Passw0rd!")
	require.NoError(t, err)

	userID, token, err := svc.Login(ctx, "13800138000", "Passw0rd!")
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)

	require.NoError(t, svc.Logout(ctx, token))
	_, err = svc.Session.Get(ctx, token)
	require.Error(t, err) // 会话已清除
}

func TestUpdateNameSyncsSession(t *testing.T) {
	store := newFakeUserStore()
	svc := newUserService(store, newFakeCache(), &fakeUploader{})
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "13800138000", "Passw0rd!")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateName(ctx, user.ID, token, "张三"))

	updated, err := store.FindByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "张三", updated.Name)

	sess, err := svc.Session.Get(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "张三", sess.Name)
}

func TestSaveAvatar(t *testing.T) {
	store := newFakeUserStore()
	svc := newUserService(store, newFakeCache(), &fakeUploader{key: "FnE5x.png"})
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "13800138000", "Passw0rd!")
	require.NoError(t, err)

	url, err := svc.SaveAvatar(ctx, user.ID, []byte("image-bytes"))
	require.NoError(t, err)
	require.Equal(t, "http://cdn.example.com/FnE5x.png", url)

	updated, err := store.FindByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "FnE5x.png", updated.AvatarURL) // 库中保存相对路径
}

func TestSaveAvatarGatewayFailure(t *testing.T) {
	store := newFakeUserStore()
	svc := newUserService(store, newFakeCache(), &fakeUploader{err: errors.New("qiniu down")})
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "13800138000", "Passw0rd!")
	require.NoError(t, err)

	_, err = svc.SaveAvatar(ctx, user.ID, []byte("image-bytes"))
	require.ErrorIs(t, err, ErrThirdParty)
}

func TestSetRealNameOnlyOnce(t *testing.T) {
	store := newFakeUserStore()
	svc := newUserService(store, newFakeCache(), &fakeUploader{})
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "13800138000", "Passw0rd!")
	require.NoError(t, err)

	require.NoError(t, svc.SetRealName(ctx, user.ID, "张三", "110101199003077777"))

	// 第二次提交不生效并报已设置
	err = svc.SetRealName(ctx, user.ID, "李四", "110101199003078888")
	require.ErrorIs(t, err, ErrRealNameSet)

	got, err := svc.GetRealName(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "张三", *got.RealName)
}

func TestProfileUnknownUser(t *testing.T) {
	svc := newUserService(newFakeUserStore(), newFakeCache(), &fakeUploader{})
	_, err := svc.Profile(context.Background(), 999)
	require.ErrorIs(t, err, ErrUserNotFound)
}
