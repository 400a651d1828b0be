package discovery

import (
	"context"
	"encoding/json"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
	"miniroom/common/config"
	"miniroom/common/logs"
)

// Register 把房间节点注册到etcd 绑定租约并续租
// 每个ttl周期刷新一次当前房间数 供网关挑选负载低的节点
type Register struct {
	etcdCli     *clientv3.Client
	leaseId     clientv3.LeaseID
	DialTimeout int
	keepAliveCh <-chan *clientv3.LeaseKeepAliveResponse
	info        Server
	load        func() int
	closeCh     chan struct{}
}

func NewRegister(load func() int) *Register {
	return &Register{
		DialTimeout: 3,
		load:        load,
	}
}

func (r *Register) Close() {
	if r.closeCh != nil {
		r.closeCh <- struct{}{}
	}
}

func (r *Register) Register(conf config.EtcdConf) error {
	r.info = Server{
		Name:    conf.Register.Name,
		Addr:    conf.Register.Addr,
		Weight:  conf.Register.Weight,
		Version: conf.Register.Version,
		Ttl:     conf.Register.Ttl,
	}
	if conf.DialTimeout > 0 {
		r.DialTimeout = conf.DialTimeout
	}
	var err error
	r.etcdCli, err = clientv3.New(clientv3.Config{
		Endpoints:   conf.Addrs,
		DialTimeout: time.Duration(r.DialTimeout) * time.Second,
	})
	if err != nil {
		return err
	}
	if err = r.register(); err != nil {
		return err
	}
	r.closeCh = make(chan struct{})
	go r.watcher()
	return nil
}

func (r *Register) register() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*time.Duration(r.DialTimeout))
	defer cancel()
	grant, err := r.etcdCli.Grant(ctx, r.info.Ttl)
	if err != nil {
		logs.Error("create lease failed,err:%v", err)
		return err
	}
	r.leaseId = grant.ID
	//心跳是长连接 不能带超时
	if r.keepAliveCh, err = r.etcdCli.KeepAlive(context.Background(), r.leaseId); err != nil {
		logs.Error("keepAlive failed,err:%v", err)
		return err
	}
	return r.put(ctx)
}

func (r *Register) put(ctx context.Context) error {
	if r.load != nil {
		r.info.Rooms = r.load()
	}
	data, _ := json.Marshal(r.info)
	key := r.info.BuildRegisterKey()
	if _, err := r.etcdCli.Put(ctx, key, string(data), clientv3.WithLease(r.leaseId)); err != nil {
		logs.Error("bind lease failed,err:%v", err)
		return err
	}
	logs.Debug("register service success,key=%s rooms=%d", key, r.info.Rooms)
	return nil
}

func (r *Register) watcher() {
	ticker := time.NewTicker(time.Duration(r.info.Ttl) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-r.closeCh:
			if _, err := r.etcdCli.Delete(context.Background(), r.info.BuildRegisterKey()); err != nil {
				logs.Error("close and unregister failed,err:%v", err)
			}
			if _, err := r.etcdCli.Revoke(context.Background(), r.leaseId); err != nil {
				logs.Error("close and revoke lease failed,err:%v", err)
			}
			r.etcdCli.Close()
			logs.Info("unregister etcd...")
			return
		case res := <-r.keepAliveCh:
			//etcd重启 连接断开 重新注册
			if res == nil {
				if err := r.register(); err != nil {
					logs.Error("keepAlive register failed,err:%v", err)
				}
			}
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Second*time.Duration(r.DialTimeout))
			if err := r.put(ctx); err != nil {
				logs.Error("refresh register failed,err:%v", err)
			}
			cancel()
		}
	}
}
