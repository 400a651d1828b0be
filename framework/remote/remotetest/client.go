// Package remotetest 记录发送内容的内存Client
package remotetest

import "sync"

type Sent struct {
	Dst  string
	Data []byte
}

// Client C只缓存最近的发送 满了之后丢弃
type Client struct {
	mu   sync.Mutex
	sent []Sent
	C    chan Sent
}

func New() *Client {
	return &Client{C: make(chan Sent, 64)}
}

func (c *Client) Run() error {
	return nil
}

func (c *Client) SendMsg(dst string, data []byte) error {
	c.mu.Lock()
	c.sent = append(c.sent, Sent{Dst: dst, Data: data})
	c.mu.Unlock()
	select {
	case c.C <- Sent{Dst: dst, Data: data}:
	default:
	}
	return nil
}

func (c *Client) Close() error {
	return nil
}

func (c *Client) Sent() []Sent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Sent(nil), c.sent...)
}
