package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/campuskit/linkboard/core"
	"github.com/campuskit/linkboard/core/activity"
	"github.com/campuskit/linkboard/core/report"
)

type (
	ServerDeps struct {
		Conf        *core.Config
		Logger      core.Logger
		ActivitySvc activity.ServiceInterface
		ReportSvc   report.ServiceInterface
		Validate    *validator.Validate
		Translator  ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps       ServerDeps
		app        *echo.Echo
		errChan    chan error
		sdSigChan  chan os.Signal
		sdSignaled bool
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:      deps,
		app:       echo.New(),
		errChan:   make(chan error, 1),
		sdSigChan: make(chan os.Signal, 1),
	}
	signal.Notify(s.sdSigChan, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf
	jwt := ConfigureAuth(conf)

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1", jwt)

	registerActivityAPI(v1, s.deps.ActivitySvc, s.deps.Validate, s.deps.Translator)
	registerReportAPI(v1, s.deps.ReportSvc, s.deps.ActivitySvc, s.deps.Validate, s.deps.Translator)
}

func (s *server) Start() {
	s.errChan <- s.app.Start(s.deps.Conf.Server.APIHost)
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errChan
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.sdSigChan
}

// signalShutdown initiates a graceful shutdown when an integrity issue is caught.
func (s *server) signalShutdown() {
	if !s.sdSignaled {
		s.sdSigChan <- syscall.SIGTERM
		s.sdSignaled = true
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Linkboard API!")
}
