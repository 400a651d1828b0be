package remote

// Client 房间节点与connector之间的消息通道
type Client interface {
	// Run 建立连接并开始把收到的消息写入读通道
	Run() error
	// SendMsg 发送到目标节点 dst为节点id
	SendMsg(dst string, data []byte) error
	Close() error
}
