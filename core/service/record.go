package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"miniroom/common/logs"
	"miniroom/core/dao"
	"miniroom/core/models/entity"
	"miniroom/core/repo"
)

type RecordService struct {
	recordDao *dao.RecordDao
}

func (s *RecordService) SaveShopSellRecord(r *entity.ShopSellRecord) {
	r.RecordId = uuid.NewString()
	r.CreateTime = time.Now().UnixMilli()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.recordDao.CreateShopSellRecord(ctx, r); err != nil {
		logs.Error("[RecordService] SaveShopSellRecord serial=%d err:%v", r.Serial, err)
	}
}

func (s *RecordService) SaveGameRecord(r *entity.GameRecord) {
	r.RecordId = uuid.NewString()
	r.CreateTime = time.Now().UnixMilli()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.recordDao.CreateGameRecord(ctx, r); err != nil {
		logs.Error("[RecordService] SaveGameRecord serial=%d err:%v", r.Serial, err)
	}
}

func (s *RecordService) FindShopSellRecords(ctx context.Context, sellerUid string, limit int64) ([]*entity.ShopSellRecord, error) {
	return s.recordDao.FindShopSellRecords(ctx, sellerUid, limit)
}

func NewRecordService(r *repo.Manager) *RecordService {
	return &RecordService{
		recordDao: dao.NewRecordDao(r),
	}
}
