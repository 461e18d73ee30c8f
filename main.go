package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ssdps/dp_search/param/conf_manager"
	"ssdps/share/base/config"
	"ssdps/share/base/logger"
	"ssdps/ssdps_config"
	"ssdps/utils"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	params := conf_manager.DefaultParams()
	manager, err := conf_manager.NewManager(params)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := manager.ParseFlagsWithArgs(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, manager.Usage())
		return 2
	}

	// 一些初始化配置
	all := config.InitConfig(params.Config)
	l := all.Logger
	ss := all.Server
	logger.InitLogger(l.Level, ssdps_config.ProjectName, l.Path, l.MaxAge, l.RotationTime, l.RotationSize, ss.SentryDsn)
	defer logger.Sync()

	manager.ApplyConfig(all.Mining)
	if params.PrintParams {
		manager.FlagsPrint(os.Stderr)
	}
	logger.Infof("parameters: %s", manager.FlagsToString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if params.Serve {
		err = serve(ctx, ss.HttpPort)
	} else {
		_, err = mineFile(ctx, params, os.Stdout, os.Stderr)
	}
	if err != nil {
		logger.Errorf("ssdps failed, err: %v", err)
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, utils.ErrParameter) {
			fmt.Fprint(os.Stderr, manager.Usage())
			return 2
		}
		return 1
	}
	return 0
}
