package config

import (
	"fmt"
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var Conf *Config

type Config struct {
	Log        LogConf  `mapstructure:"log"`
	MetricPort int      `mapstructure:"metricPort"`
	HttpPort   int      `mapstructure:"httpPort"`
	AppName    string   `mapstructure:"appName"`
	Database   Database `mapstructure:"db"`
	Jwt        JwtConf  `mapstructure:"jwt"`
	Nats       NatsConf `mapstructure:"nats"`
	Etcd       EtcdConf `mapstructure:"etcd"`
	Grpc       GrpcConf `mapstructure:"grpc"`
	Room       RoomConf `mapstructure:"room"`
}

type JwtConf struct {
	Secret string `mapstructure:"secret"`
	Exp    int64  `mapstructure:"exp"`
}
type LogConf struct {
	Level string `mapstructure:"level"`
}

// Database 数据库配置
type Database struct {
	MongoConf MongoConf `mapstructure:"mongo"`
	RedisConf RedisConf `mapstructure:"redis"`
}
type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	UserName    string `mapstructure:"userName"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}
type RedisConf struct {
	Addr         string   `mapstructure:"addr"`
	ClusterAddrs []string `mapstructure:"clusterAddrs"`
	Password     string   `mapstructure:"password"`
	PoolSize     int      `mapstructure:"poolSize"`
	MinIdleConns int      `mapstructure:"minIdleConns"`
}
// GrpcConf 健康检查服务监听地址
type GrpcConf struct {
	Addr string `mapstructure:"addr"`
}
type NatsConf struct {
	Url string `mapstructure:"url"`
}
type EtcdConf struct {
	Addrs       []string       `mapstructure:"addrs"`
	DialTimeout int            `mapstructure:"dialTimeout"`
	Register    RegisterServer `mapstructure:"register"`
}
type RegisterServer struct {
	Addr    string `mapstructure:"addr"`
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Weight  int    `mapstructure:"weight"`
	Ttl     int64  `mapstructure:"ttl"` //租约时长 秒
}

// RoomConf 小房间(交易 商店 小游戏)相关的时间与限制
type RoomConf struct {
	TickInterval    time.Duration `mapstructure:"tickInterval"`
	InviteExpire    time.Duration `mapstructure:"inviteExpire"`
	ShopMaxOpen     time.Duration `mapstructure:"shopMaxOpen"`
	OmokTimeLimit   time.Duration `mapstructure:"omokTimeLimit"`
	MemoryTimeLimit time.Duration `mapstructure:"memoryTimeLimit"`
	EntryFee        int64         `mapstructure:"entryFee"`
	MaxSerial       int64         `mapstructure:"maxSerial"`
}

// DefaultRoomConf 未配置时使用的默认值
func DefaultRoomConf() RoomConf {
	return RoomConf{
		TickInterval:    time.Second,
		InviteExpire:    30 * time.Second,
		ShopMaxOpen:     72 * time.Hour,
		OmokTimeLimit:   29 * time.Second,
		MemoryTimeLimit: 9 * time.Second,
		EntryFee:        0,
		MaxSerial:       1<<31 - 1,
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultRoomConf()
	v.SetDefault("appName", "miniroom")
	v.SetDefault("log.level", "info")
	v.SetDefault("room.tickInterval", d.TickInterval)
	v.SetDefault("room.inviteExpire", d.InviteExpire)
	v.SetDefault("room.shopMaxOpen", d.ShopMaxOpen)
	v.SetDefault("room.omokTimeLimit", d.OmokTimeLimit)
	v.SetDefault("room.memoryTimeLimit", d.MemoryTimeLimit)
	v.SetDefault("room.entryFee", d.EntryFee)
	v.SetDefault("room.maxSerial", d.MaxSerial)
}

// InitConfig 加载配置
func InitConfig(confFile string) {
	Conf = new(Config)
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(confFile)
	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		log.Println("config file changed:", in.Name)
		err := v.Unmarshal(&Conf)
		if err != nil {
			panic(fmt.Errorf("Unmarshal change config data,err:%v \n", err))
		}
	})
	err := v.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("read config file err:%v \n", err))
	}
	//解析
	err = v.Unmarshal(&Conf)
	if err != nil {
		panic(fmt.Errorf("Unmarshal config data,err:%v \n", err))
	}
}
