package discovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Server 注册到etcd的房间节点信息
type Server struct {
	Name    string `json:"name"`
	Addr    string `json:"addr"`
	Weight  int    `json:"weight"`
	Version string `json:"version"`
	Ttl     int64  `json:"ttl"`
	Rooms   int    `json:"rooms"`
}

func (s Server) BuildRegisterKey() string {
	if len(s.Version) == 0 {
		return fmt.Sprintf("/%s/%s", s.Name, s.Addr)
	}
	return fmt.Sprintf("/%s/%s/%s", s.Name, s.Version, s.Addr)
}

func ParseValue(v []byte) (Server, error) {
	var server Server
	if err := json.Unmarshal(v, &server); err != nil {
		return server, err
	}
	return server, nil
}

// ParseKey name/version/addr 或 name/addr
func ParseKey(key string) (Server, error) {
	strs := strings.Split(strings.TrimPrefix(key, "/"), "/")
	switch len(strs) {
	case 2:
		return Server{Name: strs[0], Addr: strs[1]}, nil
	case 3:
		return Server{Name: strs[0], Version: strs[1], Addr: strs[2]}, nil
	}
	return Server{}, errors.New("invalid key")
}
