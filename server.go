package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"ssdps/dp_search/report"
	"ssdps/dp_search/search"
	"ssdps/share/base/config"
	"ssdps/share/base/logger"
	"ssdps/ssdps_config"
)

const shutdownTimeout = 10 * time.Second

// errLimit stops a run once the requested number of patterns has been collected
var errLimit = errors.New("pattern limit reached")

// newRouter conf is read on every request so that config reloads apply
func newRouter(m *serviceMetrics, conf func() *config.AllConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.POST(ssdps_config.MinePath, func(c *gin.Context) { start(c, m, conf()) })
	r.GET(ssdps_config.MetricsPath, gin.WrapH(m.handler()))
	return r
}

// serve runs the mining service until ctx is cancelled
func serve(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: newRouter(newServiceMetrics(), config.All),
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("ssdps service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Infof("ssdps service shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func start(c *gin.Context, m *serviceMetrics, all *config.AllConfig) {
	var requestJson MineRequest
	if err := c.ShouldBindJSON(&requestJson); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		logger.Warnf("bad mining request, err: %v", err)
		return
	}
	views, res, err := mineRequest(c.Request.Context(), &requestJson, all)
	method := search.MethodExhaustive
	if res != nil {
		method = res.Method
	}
	m.observe(method, res, err)
	if err != nil {
		logger.Errorf("mining request failed, err: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"result":   res,
		"patterns": views,
	})
}

// mineRequest loads the request matrix and collects the patterns passing its filter
func mineRequest(ctx context.Context, req *MineRequest, all *config.AllConfig) ([]report.PatternView, *search.Result, error) {
	p, err := req.params(all.Mining)
	if err != nil {
		return nil, nil, err
	}
	filter, err := report.NewFilter(p.Filter)
	if err != nil {
		return nil, nil, err
	}
	ds, stats, err := req.load(p, all.Server.DataDir)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := searchConfig(p, stats.MinCase)
	if err != nil {
		return nil, nil, err
	}

	views := make([]report.PatternView, 0)
	collect := search.EmitterFunc(func(pattern *search.Pattern) error {
		ok, err := filter.Match(pattern)
		if err != nil || !ok {
			return err
		}
		views = append(views, report.View(pattern))
		if req.Limit > 0 && len(views) >= req.Limit {
			return errLimit
		}
		return nil
	})
	res, err := search.Run(ctx, ds, cfg, collect)
	if errors.Is(err, errLimit) {
		err = nil
	}
	if err != nil {
		return nil, res, err
	}
	return views, res, nil
}
