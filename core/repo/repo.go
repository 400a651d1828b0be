package repo

import (
	"miniroom/common/config"
	"miniroom/common/database"
)

type Manager struct {
	Mongo *database.MongoManager
	Redis *database.RedisManager
}

func (m *Manager) Close() {
	if m.Mongo != nil {
		m.Mongo.Close()
	}
	if m.Redis != nil {
		m.Redis.Close()
	}
}

func New(conf config.Database) *Manager {
	return &Manager{
		Mongo: database.NewMongo(conf.MongoConf),
		Redis: database.NewRedis(conf.RedisConf),
	}
}
