package service

import (
	"context"
	"time"

	"miniroom/common/biz"
	"miniroom/common/logs"
	"miniroom/core/dao"
	"miniroom/core/models/entity"
	"miniroom/core/repo"
	"miniroom/framework/msError"
)

type CharacterService struct {
	characterDao *dao.CharacterDao
}

// FindOrCreate 角色不存在时新建一个空背包角色
func (s *CharacterService) FindOrCreate(ctx context.Context, uid string, name string) (*entity.Character, *msError.Error) {
	c, err := s.characterDao.FindByUid(ctx, uid)
	if err != nil {
		logs.Error("[CharacterService] FindOrCreate uid=%s err:%v", uid, err)
		return nil, biz.SqlError
	}
	if c != nil {
		return c, nil
	}
	c = entity.NewCharacter(uid, name)
	c.CreateTime = time.Now().UnixMilli()
	if err := s.characterDao.Save(ctx, c); err != nil {
		logs.Error("[CharacterService] FindOrCreate save uid=%s err:%v", uid, err)
		return nil, biz.SqlError
	}
	return c, nil
}

func (s *CharacterService) SaveCharacter(c *entity.Character) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.characterDao.Save(ctx, c); err != nil {
		logs.Error("[CharacterService] SaveCharacter uid=%s err:%v", c.Uid, err)
		return err
	}
	return nil
}

func NewCharacterService(r *repo.Manager) *CharacterService {
	return &CharacterService{
		characterDao: dao.NewCharacterDao(r),
	}
}
