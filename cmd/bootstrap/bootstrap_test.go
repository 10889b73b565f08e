package bootstrap

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wmhn-clinic-api/config"
	"wmhn-clinic-api/internal/delivery/dto"
	"wmhn-clinic-api/internal/domain/entity"
	"wmhn-clinic-api/internal/infrastructure/monitoring"
	"wmhn-clinic-api/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryApp() *App {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &App{
		Config: &config.Config{
			App:   config.AppConfig{Port: "0"},
			DB:    config.DBConfig{Driver: DriverMemory},
			JWT:   config.JWTConfig{Secret: "secret", AccessExpiry: time.Hour},
			Cache: config.CacheConfig{DirectoryTTL: time.Minute},
		},
		Log: log,
	}
}

func TestSetupLogger_Level(t *testing.T) {
	log := setupLogger(config.AppConfig{LogLevel: "debug"})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = setupLogger(config.AppConfig{LogLevel: "chatty"})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestInitStore_MemorySeedsDirectory(t *testing.T) {
	app := memoryApp()
	infra := &infrastructure{metrics: monitoring.NewMetrics()}

	require.NoError(t, app.initStore(context.Background(), infra))

	doctors, err := infra.doctorRepo.FindAll(context.Background(), entity.DoctorFilter{})
	require.NoError(t, err)
	assert.Len(t, doctors, 6)
	assert.Nil(t, app.DB)
}

func TestInitStore_UnknownDriver(t *testing.T) {
	app := memoryApp()
	app.Config.DB.Driver = "mysql"

	err := app.initStore(context.Background(), &infrastructure{})
	assert.ErrorContains(t, err, "mysql")
}

func TestInitOptionalBackends_Unconfigured(t *testing.T) {
	app := memoryApp()
	infra := &infrastructure{metrics: monitoring.NewMetrics()}

	require.NoError(t, app.initRedis(infra))
	app.initSearch(infra)
	app.initMessaging(infra)

	assert.Nil(t, app.RedisClient)
	assert.NotNil(t, infra.cache)
	assert.NotNil(t, infra.revocations)
	assert.Nil(t, infra.index)
	assert.Nil(t, infra.producer)
}

func TestInitializeServer_ServesSeededDirectory(t *testing.T) {
	app := memoryApp()
	infra := &infrastructure{metrics: monitoring.NewMetrics()}
	require.NoError(t, app.initStore(context.Background(), infra))
	require.NoError(t, app.initRedis(infra))

	syncService := service.NewDirectorySyncService(infra.cache, nil, nil, infra.metrics, app.Log)
	server := initializeServer(app.Config, app.Log, infra, syncService)

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data dto.DoctorListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data.Doctors, 6)
	assert.Equal(t, "sarah-mitchell", env.Data.Doctors[0].Slug)
}
