package rpc

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"miniroom/common/logs"
)

// HealthServer 房间节点的grpc健康检查 etcd里注册的地址指向这里
// 停服时先置为NOT_SERVING 网关不再分配新房间
type HealthServer struct {
	name   string
	srv    *grpc.Server
	health *health.Server
}

func NewHealthServer(name string) *HealthServer {
	h := &HealthServer{
		name:   name,
		srv:    grpc.NewServer(),
		health: health.NewServer(),
	}
	grpc_health_v1.RegisterHealthServer(h.srv, h.health)
	h.SetServing(false)
	return h
}

// Serve 阻塞直到Stop
func (h *HealthServer) Serve(lis net.Listener) error {
	logs.Info("[rpc] health server listen %s", lis.Addr())
	return h.srv.Serve(lis)
}

func (h *HealthServer) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(h.name, status)
}

func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.srv.GracefulStop()
}
