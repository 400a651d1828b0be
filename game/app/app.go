package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"miniroom/common/config"
	"miniroom/common/discovery"
	"miniroom/common/logs"
	"miniroom/common/rpc"
	"miniroom/core/repo"
	"miniroom/core/service"
	"miniroom/framework/game"
	"miniroom/framework/node"
	"miniroom/game/admin"
	"miniroom/game/logic"
	"miniroom/game/route"
)

func Run(ctx context.Context, serverId string) error {
	//1.做一个日志库 info error fatal debug
	logs.InitLog(config.Conf.AppName)
	manager := repo.New(config.Conf.Database)
	characterService := service.NewCharacterService(manager)
	recordService := service.NewRecordService(manager)
	directoryService := service.NewRoomDirectoryService(manager, 0)

	n := node.Default(config.Conf.Nats.Url, serverId)
	chars := logic.NewCharacterManager(characterService, n.Pusher())
	field := logic.NewFieldBoard(game.Conf, chars)
	rooms := logic.NewRoomManager(config.Conf.Room, logic.Collaborators{
		Field:     field,
		World:     chars,
		Store:     characterService,
		Records:   recordService,
		Directory: directoryService,
	})
	rooms.OnHuskReleased(chars.Forget)
	n.RegisterHandler(route.Register(rooms, chars, field))
	if err := n.Run(); err != nil {
		manager.Close()
		return err
	}
	rooms.Run()

	healthServer := rpc.NewHealthServer(config.Conf.Etcd.Register.Name)
	lis, err := net.Listen("tcp", config.Conf.Grpc.Addr)
	if err != nil {
		rooms.Stop()
		n.Close()
		manager.Close()
		return err
	}
	go func() {
		if err := healthServer.Serve(lis); err != nil {
			logs.Error("health server err:%v", err)
		}
	}()
	healthServer.SetServing(true)

	register := discovery.NewRegister(rooms.Count)
	if err := register.Register(config.Conf.Etcd); err != nil {
		logs.Error("etcd register err:%v", err)
	}

	debug := strings.EqualFold(config.Conf.Log.Level, "DEBUG")
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Conf.HttpPort),
		Handler: admin.RegisterRouter(admin.NewRoomApi(rooms, recordService, directoryService), config.Conf.Jwt.Secret, debug),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logs.Fatal("admin gin run err:%v", err)
		}
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logs.Error("admin shutdown err:%v", err)
		}
		healthServer.SetServing(false)
		register.Close()
		//先关房间 暂存的物品退回并保存
		rooms.Stop()
		n.Close()
		healthServer.Stop()
		manager.Close()
		logs.Info("stop app finish")
	}
	//期望有一个优雅启停 遇到中断 退出 终止 挂断
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	for {
		select {
		case <-ctx.Done():
			stop()
			return nil
		case s := <-c:
			switch s {
			case syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT:
				stop()
				logs.Info("miniroom app quit")
				return nil
			case syscall.SIGHUP:
				stop()
				logs.Info("hang up!! miniroom app quit")
				return nil
			default:
				return nil
			}
		}
	}
}
