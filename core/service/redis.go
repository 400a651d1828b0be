package service

import (
	"context"
	"encoding/json"
	"time"

	"miniroom/common/logs"
	"miniroom/core/dao"
	"miniroom/core/repo"
)

// RoomDirectoryService 房间气球信息写到redis 其他节点可以查询
type RoomDirectoryService struct {
	redisDao *dao.RedisDao
	expire   time.Duration
}

func (s *RoomDirectoryService) Publish(serial int64, balloon any) {
	data, err := json.Marshal(balloon)
	if err != nil {
		logs.Error("[RoomDirectory] marshal serial=%d err:%v", serial, err)
		return
	}
	if err := s.redisDao.Store(context.TODO(), dao.RoomKey(serial), string(data), s.expire); err != nil {
		logs.Error("[RoomDirectory] store serial=%d err:%v", serial, err)
	}
}

func (s *RoomDirectoryService) Remove(serial int64) {
	if err := s.redisDao.Delete(context.TODO(), dao.RoomKey(serial)); err != nil {
		logs.Error("[RoomDirectory] delete serial=%d err:%v", serial, err)
	}
}

func (s *RoomDirectoryService) Get(ctx context.Context, serial int64) (string, error) {
	return s.redisDao.Get(ctx, dao.RoomKey(serial))
}

// NewRoomDirectoryService expire为0表示不过期 房间销毁时主动删除
func NewRoomDirectoryService(r *repo.Manager, expire time.Duration) *RoomDirectoryService {
	return &RoomDirectoryService{
		redisDao: dao.NewRedisDao(r),
		expire:   expire,
	}
}
