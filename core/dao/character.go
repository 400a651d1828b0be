package dao

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"miniroom/core/models/entity"
	"miniroom/core/repo"
)

const characterTable = "character"

type CharacterDao struct {
	repo *repo.Manager
}

// FindByUid 没有记录返回nil,nil
func (d *CharacterDao) FindByUid(ctx context.Context, uid string) (*entity.Character, error) {
	c := new(entity.Character)
	err := d.repo.Mongo.Db.Collection(characterTable).FindOne(ctx, bson.M{"uid": uid}).Decode(c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// Save 背包 金币 战绩整体覆盖
func (d *CharacterDao) Save(ctx context.Context, c *entity.Character) error {
	c.UpdateTime = time.Now().UnixMilli()
	_, err := d.repo.Mongo.Db.Collection(characterTable).UpdateOne(ctx,
		bson.M{"uid": c.Uid},
		bson.M{"$set": bson.M{
			"name":         c.Name,
			"fieldId":      c.FieldId,
			"money":        c.Money,
			"inventories":  c.Inventories,
			"omokRecord":   c.OmokRecord,
			"memoryRecord": c.MemoryRecord,
			"updateTime":   c.UpdateTime,
		}, "$setOnInsert": bson.M{
			"createTime": c.UpdateTime,
		}},
		options.Update().SetUpsert(true))
	return err
}

func NewCharacterDao(m *repo.Manager) *CharacterDao {
	return &CharacterDao{
		repo: m,
	}
}
