package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	tracing "github.com/jamesrr39/go-tracing"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/httpextra"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-gis/ownmapdal"
	"github.com/jamesrr39/ownmap-gis/predicate"
	"github.com/jamesrr39/ownmap-gis/styling"
	"github.com/jamesrr39/ownmap-gis/webservices"
	"github.com/jamesrr39/semaphore"
	"github.com/pkg/profile"
	"gopkg.in/alecthomas/kingpin.v2"
)

var verbose = kingpin.Flag("v", "verbose logging").Bool()

func main() {
	setupServe()
	setupBuildFilter()
	setupStyleFeatures()
	setupStyleOSM()

	kingpin.Parse()
}

func newLogger() *logpkg.Logger {
	logLevel := logpkg.LogLevelInfo
	if *verbose {
		logLevel = logpkg.LogLevelDebug
	}

	return logpkg.NewLogger(os.Stderr, logLevel)
}

// runAction prints the stack trace of a failed command
func runAction(run func() errorsx.Error) error {
	err := run()
	if err != nil {
		return fmt.Errorf("error: %q\nStack trace:\n%s", err.Error(), err.Stack())
	}
	return nil
}

func setupServe() {
	cmd := kingpin.Command("serve", "serve the style, filter and feature source APIs")
	configFilePath := cmd.Flag("config", "path to a YAML config file").String()
	addr := cmd.Flag("addr", "address to serve on, overriding the config. Ex: ':9000' listen on port 9000 to traffic from anywhere. 'localhost:9000' listen on port 9000 to traffic from localhost").String()
	shouldProfile := cmd.Flag("profile", "write a CPU profile of the server run to the trace dir").Bool()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		return runAction(func() errorsx.Error {
			logger := newLogger()

			config, err := loadConfig(*configFilePath)
			if err != nil {
				return errorsx.Wrap(err)
			}

			if *addr != "" {
				config.Addr = *addr
			}

			pathsConfig, err := config.PathsConfig()
			if err != nil {
				return errorsx.Wrap(err)
			}

			err = pathsConfig.EnsurePaths()
			if err != nil {
				return errorsx.Wrap(err)
			}

			if *shouldProfile {
				defer profile.Start(profile.ProfilePath(pathsConfig.TraceDir), profile.CPUProfile).Stop()
			}

			predicate.SetLogger(logger)

			styleSet, err := loadStylesFromDir(logger, pathsConfig.StylesDir, config.DefaultStyleID)
			if err != nil {
				return errorsx.Wrap(err)
			}

			sourceSet, err := openFeatureSources(config.Sources)
			if err != nil {
				return errorsx.Wrap(err)
			}
			defer sourceSet.Close()

			router, err := createServer(logger, config, sourceSet, styleSet, pathsConfig)
			if err != nil {
				return errorsx.Wrap(err)
			}

			server := httpextra.NewServerWithTimeouts()
			server.Addr = config.Addr
			server.Handler = router

			logger.Info("about to start serving on %q", config.Addr)

			listenErr := server.ListenAndServe()
			if listenErr != nil {
				return errorsx.Wrap(listenErr)
			}
			return nil
		})
	})
}

func loadConfig(configFilePath string) (*ownmapdal.Config, errorsx.Error) {
	if configFilePath == "" {
		return ownmapdal.DefaultConfig(), nil
	}

	return ownmapdal.LoadConfigFromFile(configFilePath)
}

func createServer(
	logger *logpkg.Logger,
	config *ownmapdal.Config,
	sourceSet *ownmapdal.FeatureSourceSet,
	styleSet *styling.StyleSet,
	pathsConfig *ownmapdal.PathsConfig,
) (chi.Router, errorsx.Error) {
	traceFilePath := filepath.Join(pathsConfig.TraceDir, fmt.Sprintf("trace_%s.pbf", time.Now().Format("2006-01-02__03_04_05")))
	logger.Info("tracing at %q", traceFilePath)

	traceFile, err := os.Create(traceFilePath)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	tracer := tracing.NewTracer(traceFile)
	sema := semaphore.NewSemaphore(config.MaxConcurrentEvaluations)

	router := chi.NewRouter()
	router.Use(middleware.DefaultLogger)
	router.Use(tracing.Middleware(tracer))
	router.Route("/api/", func(r chi.Router) {
		r.Mount("/info", webservices.NewInfoService(logger, sourceSet, styleSet))
		r.Mount("/styles/", webservices.NewStyleService(logger, styleSet, sema))
		r.Mount("/filters/", webservices.NewFilterService(logger))
		r.Mount("/sources/", webservices.NewSourceService(logger, sourceSet, styleSet, sema))
	})

	return router, nil
}
