package redisdraft_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"settlement/internal/adapters/out/redisdraft"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/ports"
	"settlement/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RedisDraftStoreIntegrationTestSuite verifies draft persistence behavior
// against a real Redis instance.
type RedisDraftStoreIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
	store     *redisdraft.RedisDraftStore
}

func (suite *RedisDraftStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	host, err := container.Host(ctx)
	suite.Require().NoError(err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	suite.Require().NoError(err)

	suite.client = redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	suite.Require().NoError(suite.client.Ping(ctx).Err())
}

func (suite *RedisDraftStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushAll(context.Background()).Err())

	store, err := redisdraft.NewRedisDraftStore(suite.client, time.Hour)
	suite.Require().NoError(err)
	suite.store = store
}

func (suite *RedisDraftStoreIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.Require().NoError(suite.client.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RedisDraftStoreIntegrationTestSuite) TestSaveAndGet_RoundTripsDraft() {
	ctx := context.Background()
	sessionID := kernel.NewUUID()

	draft := suite.createTestDraft(sessionID)
	suite.Require().NoError(suite.store.Save(ctx, sessionID, draft))

	retrieved, err := suite.store.Get(ctx, sessionID)
	suite.Require().NoError(err)

	suite.Equal(draft.SessionID, retrieved.SessionID)
	suite.Equal(draft.TotalCollected, retrieved.TotalCollected)
	suite.Require().Len(retrieved.Outcomes, len(draft.Outcomes))
	suite.Equal(draft.Outcomes[0].OrderID, retrieved.Outcomes[0].OrderID)
	suite.True(retrieved.Outcomes[0].Delivered)
	suite.Equal("customer unreachable", retrieved.Outcomes[1].FailureReason)
	suite.True(draft.SavedAt.Equal(retrieved.SavedAt))
}

func (suite *RedisDraftStoreIntegrationTestSuite) TestSave_ReplacesPreviousDraft() {
	ctx := context.Background()
	sessionID := kernel.NewUUID()

	first := suite.createTestDraft(sessionID)
	suite.Require().NoError(suite.store.Save(ctx, sessionID, first))

	second := first
	second.TotalCollected = "750000"
	suite.Require().NoError(suite.store.Save(ctx, sessionID, second))

	retrieved, err := suite.store.Get(ctx, sessionID)
	suite.Require().NoError(err)
	suite.Equal("750000", retrieved.TotalCollected)
}

func (suite *RedisDraftStoreIntegrationTestSuite) TestGet_MissingDraft_ReturnsNotFoundError() {
	_, err := suite.store.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *RedisDraftStoreIntegrationTestSuite) TestDelete_RemovesDraft() {
	ctx := context.Background()
	sessionID := kernel.NewUUID()

	suite.Require().NoError(suite.store.Save(ctx, sessionID, suite.createTestDraft(sessionID)))
	suite.Require().NoError(suite.store.Delete(ctx, sessionID))

	_, err := suite.store.Get(ctx, sessionID)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *RedisDraftStoreIntegrationTestSuite) TestDelete_MissingDraft_IsNotAnError() {
	suite.Require().NoError(suite.store.Delete(context.Background(), kernel.NewUUID()))
}

func (suite *RedisDraftStoreIntegrationTestSuite) TestSave_AppliesTTL() {
	ctx := context.Background()
	sessionID := kernel.NewUUID()

	suite.Require().NoError(suite.store.Save(ctx, sessionID, suite.createTestDraft(sessionID)))

	ttl, err := suite.client.TTL(ctx, "reconciliation:draft:"+sessionID.String()).Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, time.Duration(0))
	suite.LessOrEqual(ttl, time.Hour)
}

func (suite *RedisDraftStoreIntegrationTestSuite) createTestDraft(sessionID kernel.UUID) ports.ReconciliationDraft {
	return ports.ReconciliationDraft{
		SessionID: sessionID.String(),
		Outcomes: []ports.DraftOutcome{
			{OrderID: kernel.NewUUID().String(), Delivered: true},
			{OrderID: kernel.NewUUID().String(), Delivered: false, FailureReason: "customer unreachable"},
		},
		TotalCollected: "800000",
		SavedAt:        time.Now().UTC().Truncate(time.Second),
	}
}

func TestRedisDraftStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RedisDraftStoreIntegrationTestSuite))
}
