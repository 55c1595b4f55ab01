package server

import (
	"context"
	goerrors "errors"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	_ "treko/docs"
	"treko/internal/config"
	"treko/internal/model"
	"treko/internal/tracking"
	"treko/internal/verify"
	"treko/pkg/log"
	"treko/pkg/str"
)

const httpXRequestId = "X-Request-Id"

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	ingestor   *tracking.Ingestor
	rollup     *tracking.Rollup
	dispatcher *verify.Dispatcher
	logger     *logrus.Entry
}

func NewServer(ctx context.Context, conf *config.Config) (*Server, error) {
	var ledger *tracking.ChunkLedger
	if model.Redis != nil {
		ledger = tracking.NewChunkLedger(model.Redis)
	}

	dispatcher, err := verify.NewDispatcher(conf.NSQ, model.Redis)
	if err != nil {
		return nil, err
	}

	s := &Server{
		conf:       conf,
		ingestor:   tracking.NewIngestor(model.DB, ledger),
		rollup:     tracking.NewRollup(model.DB, tracking.NewTaskDirectory()),
		dispatcher: dispatcher,
		logger:     log.GetLogger(ctx),
	}

	return s, nil
}

func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(httpXRequestId)
		if requestId == "" {
			requestId = str.UUIDStr()
		}
		c.Header(httpXRequestId, requestId)
		c.Next()
	}
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := time.Now()
		c.Next()
		latency := time.Since(t)
		status := c.Writer.Status()

		logrus.Info("ip: ", c.ClientIP(), " method: ", c.Request.Method, " path: ",
			c.Request.URL.Path, " status: ", status, " latency: ", latency)
	}
}

func (s *Server) Start() {
	gin.SetMode(gin.ReleaseMode)
	router := s.SetUpRouter()
	pprof.Register(router)
	s.httpServer = &http.Server{
		Addr:    s.conf.Addr,
		Handler: router,
	}

	var err error
	if s.conf.SSLCert != "" && s.conf.SSLKey != "" {
		logrus.Infof("start https server on %s", s.conf.Addr)
		err = s.httpServer.ListenAndServeTLS(s.conf.SSLCert, s.conf.SSLKey)
	} else {
		logrus.Infof("start http server on %s", s.conf.Addr)
		err = s.httpServer.ListenAndServe()
	}
	if err != nil && !goerrors.Is(err, http.ErrServerClosed) {
		logrus.Fatal(err)
	}
}

func (s *Server) Shutdown() {
	s.dispatcher.Stop()
	err := s.httpServer.Shutdown(context.Background())
	if err != nil {
		logrus.Fatalf("server forced to shutdown: %v", err)
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(c *gin.Context, code int, err error) {
	c.JSON(code, ErrorResponse{
		Error: err.Error(),
	})
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
			matched, _ := regexp.MatchString(`^\d{4}-\d{2}-\d{2}$`, fl.Field().String())
			return matched
		})
	}
}
