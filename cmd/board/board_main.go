package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"MergeIsland/internal/board/actor"
	"MergeIsland/internal/board/actors"
	"MergeIsland/internal/board/entity"
	"MergeIsland/internal/board/interfaces"
	"MergeIsland/internal/board/interfaces/handler"
	"MergeIsland/internal/shared/gameconfig/item"
	"MergeIsland/internal/shared/logs"
	"MergeIsland/internal/shared/security"
	"MergeIsland/internal/shared/serverconfig"
	"MergeIsland/internal/shared/session"
	transporthttp "MergeIsland/internal/shared/transport/http"
	"MergeIsland/internal/shared/transport/ws"
	"MergeIsland/internal/shared/utils"
	"MergeIsland/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "config file, default $MERGE_CONFIG or configs/conf.yml")
	nodeID := flag.Int64("node", 1, "id generator node")
	flag.Parse()

	conf := serverconfig.Load(*configPath)
	if err := logs.Init("board", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Info("conf", zap.String("storage", conf.Board.Storage), zap.String("policy", conf.Board.ProductionPolicy),
		zap.Int("size", conf.Board.Size), zap.Bool("is_dev", conf.IsDev))

	if err := serverconfig.Watch(*configPath, func(next serverconfig.Config, err error) {
		if err != nil {
			logs.Warn("reload config failed", zap.Error(err))
			return
		}
		logs.SetLevel(next.Log.Level)
		logs.Info("config reloaded", zap.String("log_level", next.Log.Level))
	}); err != nil {
		logs.Warn("watch config failed", zap.Error(err))
	}

	if err := run(conf, *nodeID); err != nil {
		logs.Fatal("board server exit", zap.Error(err))
	}
}

func run(conf serverconfig.Config, nodeID int64) error {
	baseLogger := logx.NewZapLogger(logs.Logger())

	catalog, warnings, err := item.Load(conf.Board.CatalogPath)
	if err != nil {
		return fmt.Errorf("load item catalog: %w", err)
	}
	for _, w := range warnings {
		logs.Warn("item catalog warning", zap.String("warning", w.String()))
	}
	logs.Info("item catalog loaded", zap.String("title", catalog.Title()), zap.Int("items", catalog.Len()))

	policy, err := entity.ParsePolicy(conf.Board.ProductionPolicy)
	if err != nil {
		return err
	}

	repo, closeRepo, err := openRepository(conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	signer, err := security.NewSigner(conf.JWTSecret, 0)
	if err != nil {
		return err
	}
	ids, err := utils.NewIDGen(nodeID)
	if err != nil {
		return err
	}

	sessMgr := session.NewManager()
	runtime := actor.NewRuntime(actors.Deps{
		Repo:       repo,
		Catalog:    catalog,
		Size:       conf.Board.Size,
		Policy:     policy,
		StartItems: startItems(conf.Board.StartItems),
		Seed:       conf.Board.Seed,
		TickEvery:  time.Duration(conf.Board.TickMillis) * time.Millisecond,
		FlushEvery: time.Duration(conf.Board.FlushMillis) * time.Millisecond,
		Logger:     baseLogger,
		Notifier:   sessMgr,
	}, time.Duration(conf.Board.AskTimeoutMillis)*time.Millisecond)
	// 先停 HTTP 再停 actor，棋盘 actor 停止前会落盘。
	defer runtime.Shutdown()

	boardModule := interfaces.New(runtime, signer, handler.Options{Dev: conf.IsDev, IDs: ids, Logger: baseLogger})

	wsRouter := ws.NewRouter(baseLogger)
	for _, m := range []ws.Registrar{boardModule} {
		m.WsRegister(wsRouter)
	}

	if !conf.IsDev {
		gin.SetMode(gin.ReleaseMode)
	}
	addr := fmt.Sprintf("%s:%d", conf.HTTPServer.Host, conf.HTTPServer.Port)
	httpServer := transporthttp.NewHttpServer(addr, nil, baseLogger)
	for _, m := range []transporthttp.Registrar{boardModule} {
		m.HttpRegister(httpServer.Group())
	}

	wsServer := ws.NewServer(wsRouter, baseLogger,
		ws.WithAuth(boardModule.Authenticator()),
		ws.WithOnOpen(sessMgr.OnOpen),
	)
	httpServer.Engine().GET("/ws", gin.WrapH(wsServer))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("board server listen", zap.String("addr", addr))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("board server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func startItems(in []serverconfig.StartItem) []entity.SnapshotEntry {
	out := make([]entity.SnapshotEntry, 0, len(in))
	for _, s := range in {
		out = append(out, entity.SnapshotEntry{ItemID: s.ItemID, Row: s.Row, Col: s.Col})
	}
	return out
}
