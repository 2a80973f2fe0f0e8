package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/talkincode/toughshop/config"
	"github.com/talkincode/toughshop/internal/adminapi"
	"github.com/talkincode/toughshop/internal/app"
	"github.com/talkincode/toughshop/internal/shopapi"
	"github.com/talkincode/toughshop/internal/webserver"
)

var version = "develop"

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println(version)
		return
	}
	if *h {
		flag.Usage()
		return
	}

	cfg := config.MustLoadConfig(*conffile)
	application := app.NewApplication(cfg)

	if *initdb {
		if err := application.Bootstrap(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "init application: %v\n", err)
			os.Exit(1)
		}
		application.InitDb()
		zap.S().Info("database initialized")
		application.Release()
		return
	}

	if err := application.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "init application: %v\n", err)
		os.Exit(1)
	}
	defer application.Release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := webserver.NewWebServer(application)
	shopapi.Init(server)
	adminapi.Init(server)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(ctx)
	})
	g.Go(func() error {
		// let running jobs finish while the server drains
		<-ctx.Done()
		<-application.Scheduler().Stop().Done()
		return nil
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("toughshop exited with error", zap.Error(err))
		application.Release()
		os.Exit(1)
	}
	zap.L().Info("toughshop stopped")
}
