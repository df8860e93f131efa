package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetlab/cleaners-booking/internal/availability"
	appconfig "github.com/streetlab/cleaners-booking/internal/config"
	"github.com/streetlab/cleaners-booking/internal/notify"
	"github.com/streetlab/cleaners-booking/internal/wizard"
	"github.com/streetlab/cleaners-booking/pkg/logging"
)

func TestSetupMetricsExposesBookingMetrics(t *testing.T) {
	handler, bm := setupMetrics(nil)
	require.NotNil(t, handler)
	require.NotNil(t, bm)

	bm.ObserveOpened()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "streetlab_booking_sessions_opened_total 1")
}

func TestConnectPostgresPoolEmptyURLReturnsNil(t *testing.T) {
	logger := logging.New("error")
	assert.Nil(t, connectPostgresPool(context.Background(), "", logger))
}

func TestSetupAvailabilitySourceFallsBackToSeed(t *testing.T) {
	source := setupAvailabilitySource(nil, logging.New("error"))
	_, ok := source.(*availability.StaticTable)
	assert.True(t, ok, "expected static seed table, got %T", source)
}

func TestSetupDraftStore(t *testing.T) {
	logger := logging.New("error")
	ctx := context.Background()

	t.Run("memory without redis", func(t *testing.T) {
		store, client := setupDraftStore(ctx, &appconfig.Config{DraftTTL: time.Hour}, logger)
		assert.Nil(t, client)
		assert.IsType(t, &wizard.MemoryStore{}, store)
	})

	t.Run("redis when reachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, client := setupDraftStore(ctx, &appconfig.Config{RedisAddr: mr.Addr(), DraftTTL: time.Hour}, logger)
		require.NotNil(t, client)
		t.Cleanup(func() { _ = client.Close() })
		assert.IsType(t, &wizard.RedisStore{}, store)
		assert.NoError(t, healthCheck(nil, client)(ctx))
	})

	t.Run("memory when redis is down", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		store, client := setupDraftStore(ctx, &appconfig.Config{RedisAddr: addr, DraftTTL: time.Hour}, logger)
		assert.Nil(t, client)
		assert.IsType(t, &wizard.MemoryStore{}, store)
	})
}

func TestSetupEmailSender(t *testing.T) {
	logger := logging.New("error")
	ctx := context.Background()
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")

	stub := setupEmailSender(ctx, &appconfig.Config{EmailProvider: "stub"}, logger)
	assert.IsType(t, &notify.StubEmailSender{}, stub)

	missingKey := setupEmailSender(ctx, &appconfig.Config{EmailProvider: "sendgrid"}, logger)
	assert.IsType(t, &notify.StubEmailSender{}, missingKey)

	sendgrid := setupEmailSender(ctx, &appconfig.Config{
		EmailProvider:     "sendgrid",
		SendGridAPIKey:    "SG.test",
		SendGridFromEmail: "noreply@streetlab.ro",
	}, logger)
	assert.IsType(t, &notify.SendGridSender{}, sendgrid)

	ses := setupEmailSender(ctx, &appconfig.Config{
		EmailProvider:       "ses",
		AWSRegion:           "eu-central-1",
		AWSAccessKeyID:      "test",
		AWSSecretAccessKey:  "test",
		AWSEndpointOverride: "http://localhost:4566",
		SESFromEmail:        "noreply@streetlab.ro",
	}, logger)
	assert.IsType(t, &notify.SESSender{}, ses)
}

func TestSetupSMSSender(t *testing.T) {
	logger := logging.New("error")

	assert.IsType(t, &notify.StubSMSSender{}, setupSMSSender(&appconfig.Config{}, logger))

	twilio := setupSMSSender(&appconfig.Config{
		TwilioAccountSID: "AC123",
		TwilioAuthToken:  "token",
		TwilioFromNumber: "+40700000000",
	}, logger)
	assert.IsType(t, &notify.TwilioSender{}, twilio)
}

func TestHealthCheckNilWithoutBackends(t *testing.T) {
	assert.Nil(t, healthCheck(nil, nil))
}

func TestPrintAdminTokenRequiresSecret(t *testing.T) {
	err := printAdminToken(&appconfig.Config{}, "owner", time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_JWT_SECRET")

	require.NoError(t, printAdminToken(&appconfig.Config{AdminJWTSecret: "secret"}, "owner", time.Hour))
}
