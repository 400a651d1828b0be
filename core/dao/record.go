package dao

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"miniroom/core/models/entity"
	"miniroom/core/repo"
)

type RecordDao struct {
	repo *repo.Manager
}

func (d *RecordDao) CreateShopSellRecord(ctx context.Context, r *entity.ShopSellRecord) error {
	_, err := d.repo.Mongo.Db.Collection("shopSellRecord").InsertOne(ctx, r)
	return err
}

func (d *RecordDao) CreateGameRecord(ctx context.Context, r *entity.GameRecord) error {
	_, err := d.repo.Mongo.Db.Collection("gameRecord").InsertOne(ctx, r)
	return err
}

// FindShopSellRecords 按时间倒序
func (d *RecordDao) FindShopSellRecords(ctx context.Context, sellerUid string, limit int64) ([]*entity.ShopSellRecord, error) {
	cursor, err := d.repo.Mongo.Db.Collection("shopSellRecord").Find(ctx,
		bson.M{"sellerUid": sellerUid},
		options.Find().SetSort(bson.M{"createTime": -1}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	list := make([]*entity.ShopSellRecord, 0)
	err = cursor.All(ctx, &list)
	return list, err
}

func NewRecordDao(m *repo.Manager) *RecordDao {
	return &RecordDao{
		repo: m,
	}
}
