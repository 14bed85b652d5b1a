package testutils

import (
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"testing"
	"time"

	"trove-backend/internal/config"
	"trove-backend/internal/database"
	"trove-backend/internal/database/models"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for readiness ping
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	pgUser     = "trove"
	pgPassword = "trove-test"
	pgDatabase = "trove_test"
)

// pgContainer is the single Postgres instance shared by every integration suite in a test binary.
type pgContainer struct {
	once     sync.Once
	err      error
	pool     *dockertest.Pool
	resource *dockertest.Resource
	db       *gorm.DB
	cfg      *config.Config
}

var shared pgContainer

// BaseTestSuite gives integration suites a migrated database and a config pointing at it.
type BaseTestSuite struct {
	suite.Suite
	DB     *gorm.DB
	Config *config.Config
}

// SetupTestSuite starts the shared container on first use.
func SetupTestSuite(t *testing.T) *BaseTestSuite {
	shared.once.Do(func() { shared.err = shared.start() })
	if shared.err != nil {
		t.Fatalf("postgres test container: %v", shared.err)
	}
	cfg := *shared.cfg
	return &BaseTestSuite{DB: shared.db, Config: &cfg}
}

// RunWithCleanup runs the package tests and purges the container afterwards,
// including on SIGINT/SIGTERM. The result is the exit code for os.Exit.
func RunWithCleanup(m *testing.M, pkg string) int {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		logrus.WithField("package", pkg).Warn("integration tests interrupted, purging containers")
		CleanupSharedContainer()
		os.Exit(1)
	}()

	code := m.Run()
	CleanupSharedContainer()
	return code
}

// CleanupSharedContainer closes the pool and purges the container. Safe to call twice.
func CleanupSharedContainer() {
	if shared.db != nil {
		if sqlDB, err := shared.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		shared.db = nil
	}
	if shared.pool == nil || shared.resource == nil {
		return
	}
	if err := shared.pool.Purge(shared.resource); err != nil {
		logrus.WithError(err).Warn("could not purge postgres test container")
	}
	shared.pool, shared.resource = nil, nil
}

func (s *BaseTestSuite) SetupTest()    { s.CleanTestDB() }
func (s *BaseTestSuite) TearDownTest() { s.CleanTestDB() }

// TeardownTestSuite only empties the tables; the container outlives the suite.
func (s *BaseTestSuite) TeardownTestSuite() { s.CleanTestDB() }

// CleanTestDB empties every trove table. The join table goes first.
func (s *BaseTestSuite) CleanTestDB() {
	if s.DB == nil {
		return
	}
	tables := []string{
		models.ResourceAuthorMap{}.TableName(),
		models.ResourceAuthor{}.TableName(),
		models.Resource{}.TableName(),
	}
	for _, t := range tables {
		s.DB.Exec(fmt.Sprintf(`TRUNCATE TABLE %q CASCADE`, t))
	}
}

func (c *pgContainer) start() error {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return fmt.Errorf("connect to docker: %w", err)
	}
	pool.MaxWait = 2 * time.Minute

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=" + pgUser,
			"POSTGRES_PASSWORD=" + pgPassword,
			"POSTGRES_DB=" + pgDatabase,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return fmt.Errorf("start postgres: %w", err)
	}
	c.pool, c.resource = pool, resource
	_ = resource.Expire(600)

	port := resource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("postgres://%s:%s@127.0.0.1:%s/%s?sslmode=disable", pgUser, pgPassword, port, pgDatabase)

	if err := pool.Retry(func() error {
		std, err := sql.Open("pgx", dsn)
		if err != nil {
			return err
		}
		defer std.Close()
		return std.Ping()
	}); err != nil {
		return fmt.Errorf("postgres never became ready: %w", err)
	}

	db, err := database.Initialize(dsn, &database.Options{LogLevel: gormlogger.Silent})
	if err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	c.db = db

	c.cfg = &config.Config{
		Environment:       "test",
		Port:              "8787",
		LogLevel:          "debug",
		DatabaseURL:       dsn,
		APIKey:            "test-api-key",
		MetadataTimeout:   2 * time.Second,
		MetadataMaxBytes:  64 * 1024,
		MetadataUserAgent: "Trove/1.0 (metadata fetcher)",
	}

	logrus.WithField("port", port).Info("postgres test container ready")
	return nil
}
