package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qiniu/go-sdk/v7/auth/qbox"
	qiniu "github.com/qiniu/go-sdk/v7/storage"
)

// Uploader 图片上传网关,返回对象的相对路径(外链域名后的部分)
type Uploader interface {
	Upload(ctx context.Context, data []byte) (string, error)
}

// QiniuUploader 七牛云表单上传实现
type QiniuUploader struct {
	mac    *qbox.Mac
	bucket string
	cfg    qiniu.Config
}

func NewQiniuUploader(accessKey, secretKey, bucket string) *QiniuUploader {
	return &QiniuUploader{
		mac:    qbox.NewMac(accessKey, secretKey),
		bucket: bucket,
	}
}

// Upload 以随机 key 上传图片字节,成功返回七牛生成的对象名
func (u *QiniuUploader) Upload(ctx context.Context, data []byte) (string, error) {
	putPolicy := qiniu.PutPolicy{Scope: u.bucket}
	upToken := putPolicy.UploadToken(u.mac)
	uploader := qiniu.NewFormUploader(&u.cfg)
	key := fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.NewString())
	var ret qiniu.PutRet
	if err := uploader.Put(ctx, &ret, upToken, key, bytes.NewReader(data), int64(len(data)), nil); err != nil {
		return "", err
	}
	return ret.Key, nil
}
