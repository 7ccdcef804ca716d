package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/markstyle-ai/markstyle/app/core"
	"github.com/markstyle-ai/markstyle/app/response"
	"github.com/markstyle-ai/markstyle/cmd/service/handler"
	"github.com/markstyle-ai/markstyle/cmd/service/middleware"
	"github.com/markstyle-ai/markstyle/pkg/metrics"
	"github.com/markstyle-ai/markstyle/pkg/safe"
)

func serve(core *core.Core) error {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	srv := &http.Server{
		Addr:    core.Cfg().Addr,
		Handler: core.HttpEngine(),
	}

	go safe.Run(func() {
		slog.Info("http server starting", slog.String("addr", core.Cfg().Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.String("error", err.Error()))
			os.Exit(1)
		}
	})

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	return srv.Shutdown(ctx)
}

func setupHttpRouter(s *handler.HttpSrv) {
	s.Engine.Use(gin.Recovery())
	s.Engine.Use(middleware.I18n(), response.NewResponse())
	s.Engine.Use(middleware.Cors)
	s.Engine.Use(middleware.Metrics(s.Core))

	s.Engine.GET("/metrics", metrics.DefaultExportHandler())

	apiV1 := s.Engine.Group("/api/v1")
	{
		apiV1.GET("/mode", func(c *gin.Context) {
			response.APISuccess(c, s.Core.Srv().GetAIStatus())
		})

		style := apiV1.Group("/style")
		{
			style.POST("/extract", s.ExtractRules)
			style.POST("/convert", s.ConvertContent)
		}

		rule := apiV1.Group("/rules")
		{
			rule.GET("", s.ListRules)
			rule.POST("", s.CreateRules)
			rule.PUT("/:id", s.UpdateRule)
			rule.DELETE("/:id", s.DeleteRule)
		}

		ruleset := apiV1.Group("/rulesets")
		{
			ruleset.GET("", s.ListRuleSets)
			ruleset.GET("/:id", s.GetRuleSet)
			ruleset.POST("", s.CreateRuleSet)
			ruleset.PUT("/:id", s.UpdateRuleSet)
			ruleset.DELETE("/:id", s.DeleteRuleSet)
		}

		history := apiV1.Group("/history")
		{
			history.GET("", s.ListHistory)
			history.DELETE("/:id", s.DeleteHistory)
			history.DELETE("", s.ClearHistory)
		}
	}
}
