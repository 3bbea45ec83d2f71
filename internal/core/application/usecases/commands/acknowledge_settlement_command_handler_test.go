package commands_test

import (
	"testing"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcknowledgeSettlementCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	target := pendingSettlement(t, kernel.NewUUID(), kernel.NewUUID(), 500_000)
	cmd, err := commands.NewAcknowledgeSettlementCommand(target.ID())
	require.NoError(t, err)

	settlementRepo := new(MockSettlementRepository)
	uow := new(MockSettlementUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SettlementRepository").Return(settlementRepo).Once(),
		settlementRepo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		settlementRepo.On("Update", mock.Anything, target).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcknowledgeSettlementCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.NotNil(t, target.AcknowledgedAt())
}
