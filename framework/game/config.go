package game

import (
	"fmt"
	"log"
	"os"
	"path"
	"sync"

	"miniroom/common/logs"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var Conf *Config

const fieldsConfig = "fields.json"

// Config 地图相关的静态数据 文件修改后自动重新加载
type Config struct {
	sync.RWMutex
	fields map[int]*FieldConf
}

// FieldConf 一张地图上开设小房间的限制
type FieldConf struct {
	Id            int          `json:"id" mapstructure:"id"`
	NoMiniGame    bool         `json:"noMiniGame" mapstructure:"noMiniGame"`
	NoEstablish   bool         `json:"noEstablish" mapstructure:"noEstablish"`
	ReturnFieldId int          `json:"returnFieldId" mapstructure:"returnFieldId"`
	Portals       []PortalConf `json:"portals" mapstructure:"portals"`
}

type PortalConf struct {
	X int `json:"x" mapstructure:"x"`
	Y int `json:"y" mapstructure:"y"`
}

type fieldsFile struct {
	Fields []*FieldConf `mapstructure:"fields"`
}

func NewConfig(fields []*FieldConf) *Config {
	c := &Config{}
	c.setFields(fields)
	return c
}

func InitConfig(configDir string) {
	Conf = NewConfig(nil)
	dir, err := os.ReadDir(configDir)
	if err != nil {
		logs.Fatal("read config dir err:%v", err)
	}
	for _, v := range dir {
		if v.Name() == fieldsConfig {
			readFieldsConfig(path.Join(configDir, v.Name()))
		}
	}
}

func readFieldsConfig(configFile string) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		log.Println("fields 配置文件被修改了")
		var ff fieldsFile
		if err := v.Unmarshal(&ff); err != nil {
			logs.Error("fields Unmarshal change config data,err:%v", err)
			return
		}
		Conf.setFields(ff.Fields)
	})
	err := v.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fields 读取配置文件出错,err:%v \n", err))
	}
	var ff fieldsFile
	if err = v.Unmarshal(&ff); err != nil {
		panic(fmt.Errorf("fields Unmarshal config data,err:%v \n", err))
	}
	Conf.setFields(ff.Fields)
}

func (c *Config) setFields(fields []*FieldConf) {
	m := make(map[int]*FieldConf, len(fields))
	for _, f := range fields {
		m[f.Id] = f
	}
	c.Lock()
	c.fields = m
	c.Unlock()
}

// GetField 没有配置的地图返回nil 表示不受限制
func (c *Config) GetField(id int) *FieldConf {
	c.RLock()
	defer c.RUnlock()
	return c.fields[id]
}
