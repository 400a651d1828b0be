package remote

import (
	"time"

	"miniroom/common/logs"

	"github.com/nats-io/nats.go"
)

// NatsClient 以serverId为subject订阅 同一serverId的多个进程共享一个队列组
type NatsClient struct {
	url      string
	serverId string
	conn     *nats.Conn
	sub      *nats.Subscription
	readChan chan []byte
}

func NewNatsClient(url string, serverId string, readChan chan []byte) *NatsClient {
	return &NatsClient{
		url:      url,
		serverId: serverId,
		readChan: readChan,
	}
}

func (c *NatsClient) Run() error {
	conn, err := nats.Connect(c.url,
		nats.Name(c.serverId),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logs.Warn("[nats] %s disconnected err:%v", c.serverId, err)
		}),
		nats.ReconnectHandler(func(conn *nats.Conn) {
			logs.Info("[nats] %s reconnected to %s", c.serverId, conn.ConnectedUrl())
		}),
	)
	if err != nil {
		logs.Error("connect nats server fail,err:%v", err)
		return err
	}
	c.conn = conn
	c.sub, err = conn.QueueSubscribe(c.serverId, c.serverId, func(msg *nats.Msg) {
		c.readChan <- msg.Data
	})
	if err != nil {
		logs.Error("nats sub %s err:%v", c.serverId, err)
		return err
	}
	return nil
}

// Close 先处理完已收到的消息再断开
func (c *NatsClient) Close() error {
	if c.conn == nil {
		return nil
	}
	if err := c.conn.Drain(); err != nil {
		logs.Warn("[nats] drain err:%v", err)
		c.conn.Close()
	}
	return nil
}

func (c *NatsClient) SendMsg(dst string, data []byte) error {
	if c.conn == nil {
		return nats.ErrConnectionClosed
	}
	return c.conn.Publish(dst, data)
}
