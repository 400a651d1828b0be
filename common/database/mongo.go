package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"miniroom/common/config"
	"miniroom/common/logs"
)

type MongoManager struct {
	Cli *mongo.Client
	Db  *mongo.Database
}

// NewMongo 连接角色库 连接失败直接退出
func NewMongo(conf config.MongoConf) *MongoManager {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	clientOptions := options.Client().ApplyURI(conf.Url)
	if conf.UserName != "" {
		clientOptions.SetAuth(options.Credential{
			Username: conf.UserName,
			Password: conf.Password,
		})
	}
	clientOptions.SetMinPoolSize(uint64(conf.MinPoolSize))
	clientOptions.SetMaxPoolSize(uint64(conf.MaxPoolSize))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logs.Fatal("mongo connect err:%v", err)
		return nil
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logs.Fatal("mongo ping err:%v", err)
		return nil
	}
	return &MongoManager{
		Cli: client,
		Db:  client.Database(conf.Db),
	}
}

func (m *MongoManager) Close() {
	if err := m.Cli.Disconnect(context.TODO()); err != nil {
		logs.Error("mongo close err:%v", err)
	}
}
