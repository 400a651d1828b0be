package node

import (
	"encoding/json"

	"miniroom/common/logs"
	"miniroom/framework/pusher"
	"miniroom/framework/remote"
	"miniroom/framework/stream"
)

// App 就是nats的客户端 处理实际游戏逻辑的服务
type App struct {
	serverId  string
	remoteCli remote.Client
	pusher    *pusher.Pusher
	readChan  chan []byte
	writeChan chan *stream.Msg
	handlers  LogicHandler
	done      chan struct{}
}

func Default(natsUrl string, serverId string) *App {
	readChan := make(chan []byte, 1024)
	return newApp(remote.NewNatsClient(natsUrl, serverId, readChan), serverId, readChan)
}

func newApp(cli remote.Client, serverId string, readChan chan []byte) *App {
	return &App{
		serverId:  serverId,
		remoteCli: cli,
		pusher:    pusher.NewPusher(cli, serverId),
		readChan:  readChan,
		writeChan: make(chan *stream.Msg, 1024),
		handlers:  make(LogicHandler),
		done:      make(chan struct{}),
	}
}

// Pusher 注册handler之前就可以使用 连接建立前的推送会被丢弃
func (a *App) Pusher() *pusher.Pusher {
	return a.pusher
}

func (a *App) Run() error {
	err := a.remoteCli.Run()
	if err != nil {
		return err
	}
	go a.readChanMsg()
	go a.writeChanMsg()
	return nil
}

func (a *App) readChanMsg() {
	//收到的是 其他nats client发送的消息
	for {
		select {
		case <-a.done:
			return
		case msg := <-a.readChan:
			a.dispatch(msg)
		}
	}
}

func (a *App) dispatch(msg []byte) {
	var remoteMsg stream.Msg
	if err := json.Unmarshal(msg, &remoteMsg); err != nil || remoteMsg.Body == nil {
		logs.Warn("app receive invalid msg err:%v", err)
		return
	}
	session := remote.NewSession(a.remoteCli, &remoteMsg)
	session.SetServerId(a.serverId)
	session.SetData(remoteMsg.SessionData)
	//根据路由消息 发送给对应的handler进行处理
	handlerFunc := a.handlers[remoteMsg.Router]
	if handlerFunc == nil {
		logs.Warn("app no handler for router:%s", remoteMsg.Router)
		return
	}
	go func() {
		result := handlerFunc(session, remoteMsg.Body.Data)
		if result == nil || remoteMsg.Body.Type == stream.Notify {
			return
		}
		message := *remoteMsg.Body
		message.Type = stream.Response
		message.Data, _ = json.Marshal(result)
		//得到结果了 发送给connector
		a.writeChan <- &stream.Msg{
			Src:  remoteMsg.Dst,
			Dst:  remoteMsg.Src,
			Body: &message,
			Uid:  remoteMsg.Uid,
			Cid:  remoteMsg.Cid,
		}
	}()
}

func (a *App) writeChanMsg() {
	for {
		select {
		case <-a.done:
			return
		case msg := <-a.writeChan:
			marshal, _ := json.Marshal(msg)
			err := a.remoteCli.SendMsg(msg.Dst, marshal)
			if err != nil {
				logs.Error("app remote send stream err:%v", err)
			}
		}
	}
}

func (a *App) Close() {
	close(a.done)
	a.pusher.Close()
	if a.remoteCli != nil {
		a.remoteCli.Close()
	}
}

func (a *App) RegisterHandler(handler LogicHandler) {
	a.handlers = handler
}
