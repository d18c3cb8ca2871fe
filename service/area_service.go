package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"ihome/internal/cache"
	"ihome/model"
)

// ErrNoData 权威数据源查询结果为空
var ErrNoData = errors.New("no data")

// AreaStore 城区参考数据的读取接口
type AreaStore interface {
	ListAll() ([]model.Area, error)
}

// AreaService 城区信息查询,带读穿透缓存
type AreaService struct {
	dao   AreaStore
	cache cache.Client
}

// NewAreaService 创建一个新的 AreaService 实例
func NewAreaService(dao AreaStore, c cache.Client) *AreaService {
	return &AreaService{dao: dao, cache: c}
}

// ListJSON returns the serialized area list. Cache hits return the
// stored blob as is; on a miss the database result is serialized and
// written back. 缓存写失败不影响本次响应,仅记录日志。
func (s *AreaService) ListJSON(ctx context.Context) (string, error) {
	blob, err := s.cache.Get(ctx, cache.AreaInfoKey)
	if err == nil {
		log.Println("hit area info cache")
		return blob, nil
	}
	if !errors.Is(err, cache.ErrNil) {
		log.Printf("read area info cache failed: %v", err)
	}

	areas, err := s.dao.ListAll()
	if err != nil {
		return "", err
	}
	if len(areas) == 0 {
		return "", ErrNoData
	}
	data, err := json.Marshal(areas)
	if err != nil {
		return "", err
	}
	if err := s.cache.SetEx(ctx, cache.AreaInfoKey, string(data), cache.AreaInfoExpires); err != nil {
		// 缓存回写失败可以容忍,下次请求会再查库
		log.Printf("write area info cache failed: %v", err)
	}
	return string(data), nil
}
