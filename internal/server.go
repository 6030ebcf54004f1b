package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/myniu/internal/analytics"
	"github.com/2beens/myniu/internal/config"
	"github.com/2beens/myniu/internal/db"
	"github.com/2beens/myniu/internal/middleware"
	"github.com/2beens/myniu/internal/telemetry/metrics"
	"github.com/2beens/myniu/internal/tracker"
	"github.com/2beens/myniu/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config     *config.Config
	store      tracker.Store
	closeStore func()
	now        func() time.Time

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

type NewServerParams struct {
	Config      *config.Config
	VersionInfo string
}

type HealthResponse struct {
	Status  string `json:"status"`
	Store   string `json:"store"`
	Version string `json:"version,omitempty"`
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	loc, err := time.LoadLocation(params.Config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", params.Config.Timezone, err)
	}

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("myniu", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	s := &Server{
		config:      params.Config,
		versionInfo: params.VersionInfo,
		now: func() time.Time {
			return time.Now().In(loc)
		},
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	}

	if err := s.openStore(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// openStore connects to the configured store kind and makes sure the schema exists.
func (s *Server) openStore(ctx context.Context) error {
	switch s.config.Store {
	case config.StorePostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         s.config.PostgresHost,
			DBPort:         s.config.PostgresPort,
			DBName:         s.config.PostgresDBName,
			DBUser:         s.config.PostgresUser,
			DBPassword:     s.config.PostgresPassword,
			TracingEnabled: s.config.TracingEnabled,
		})
		if err != nil {
			return fmt.Errorf("new db pool: %w", err)
		}
		if err := metrics.RegisterDBPool(s.promRegistry, dbPool, s.config.PostgresDBName); err != nil {
			log.Warnf("register db pool metrics: %s", err)
		}

		repo := tracker.NewPsqlRepo(dbPool)
		if err := repo.InitSchema(ctx); err != nil {
			dbPool.Close()
			return err
		}
		s.store = repo
		s.closeStore = dbPool.Close
	case config.StoreSqlite:
		sqliteDB, err := db.OpenSqlite(ctx, s.config.SqlitePath)
		if err != nil {
			return err
		}

		repo := tracker.NewSqliteRepo(sqliteDB)
		if err := repo.InitSchema(ctx); err != nil {
			_ = sqliteDB.Close()
			return err
		}
		s.store = repo
		s.closeStore = func() {
			if err := sqliteDB.Close(); err != nil {
				log.Errorf("close sqlite db: %s", err)
			}
		}
	default:
		return fmt.Errorf("unknown store kind: %s", s.config.Store)
	}

	log.Debugf("using %s store", s.config.Store)
	return nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("myniu-router"))

	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")

	trackerHandler := tracker.NewHandler(s.store, s.metricsManager, tracker.HandlerParams{
		DefaultListLimit: s.config.DefaultListLimit,
		Now:              s.now,
	})
	r.HandleFunc("/api/trainings", trackerHandler.HandleListTrainings).Methods("GET", "OPTIONS").Name("list-trainings")
	r.HandleFunc("/api/trainings", trackerHandler.HandleAddTraining).Methods("POST", "OPTIONS").Name("new-training")
	r.HandleFunc("/api/trainings/{id:[0-9]+}", trackerHandler.HandleGetTraining).Methods("GET", "OPTIONS").Name("get-training")
	r.HandleFunc("/api/trainings/{id:[0-9]+}", trackerHandler.HandleDeleteTraining).Methods("DELETE", "OPTIONS").Name("delete-training")
	r.HandleFunc("/api/daily/logs", trackerHandler.HandleListDailyLogs).Methods("GET", "OPTIONS").Name("list-daily-logs")
	r.HandleFunc("/api/daily/{date}", trackerHandler.HandleGetDailyLog).Methods("GET", "OPTIONS").Name("get-daily-log")
	r.HandleFunc("/api/daily/{field}", trackerHandler.HandleLogDailyField).Methods("POST", "OPTIONS").Name("log-daily-field")

	analyzer := analytics.NewAnalyzer(s.store, analytics.AnalyzerParams{
		WeeklyCaloriesGoal:   s.config.WeeklyCaloriesGoal,
		WaterGlassesGoal:     s.config.WaterGlassesGoal,
		StreakLookbackDays:   s.config.StreakLookbackDays,
		ComplianceWindowDays: s.config.ComplianceWindowDays,
		Now:                  s.now,
	})
	analyticsHandler := analytics.NewHandler(analyzer)
	r.HandleFunc("/api/dashboard", analyticsHandler.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
	r.HandleFunc("/api/stats/streaks", analyticsHandler.HandleStreaks).Methods("GET", "OPTIONS").Name("streaks")
	r.HandleFunc("/api/stats/compliance", analyticsHandler.HandleCompliance).Methods("GET", "OPTIONS").Name("compliance")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSONError(w, http.StatusNotFound, "not found", r.URL.Path)
	})

	r.Use(middleware.RequestID())
	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Store:   s.config.Store,
		Version: s.versionInfo,
	})
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	// after the http server, so in-flight requests can finish their store calls
	if s.closeStore != nil {
		log.Debugln("closing store ...")
		s.closeStore()
		log.Debugln("store closed")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
