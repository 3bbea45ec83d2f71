package cmd

import (
	"strconv"
	"time"

	"settlement/internal/adapters/out/postgres"
	"settlement/internal/adapters/out/redisdraft"
	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/services"
	"settlement/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	resolver   services.FeeResolver
	reconciler services.Reconciler
	draftStore *redisdraft.RedisDraftStore
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client) (CompositionRoot, error) {
	fallbackRate, err := kernel.NewMoneyFromString(config.DefaultShippingFee)
	if err != nil {
		return CompositionRoot{}, err
	}

	resolver, err := services.NewFeeResolver(fallbackRate)
	if err != nil {
		return CompositionRoot{}, err
	}

	draftTTL := time.Duration(0)
	if hours, convErr := strconv.Atoi(config.DraftTTLHours); convErr == nil {
		draftTTL = time.Duration(hours) * time.Hour
	}

	draftStore, err := redisdraft.NewRedisDraftStore(redisClient, draftTTL)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		resolver:   resolver,
		reconciler: services.NewReconciler(),
		draftStore: draftStore,
	}, nil
}

func (c *CompositionRoot) UnitOfWorkFactory() ports.UnitOfWorkFactory {
	return &c.uowFactory
}

func (c *CompositionRoot) DraftStore() ports.DraftStore {
	return c.draftStore
}

func (c *CompositionRoot) CreateDispatchSessionCommandHandler() commands.CreateDispatchSessionCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDispatchSessionCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkDispatchedCommandHandler() commands.MarkDispatchedCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkDispatchedCommandHandler(f, c.resolver)
}

func (c *CompositionRoot) CreateAbandonSessionCommandHandler() commands.AbandonSessionCommandHandler {
	var f commands.SessionUoWFactory = FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAbandonSessionCommandHandler(f)
}

func (c *CompositionRoot) CreateReconcileSessionCommandHandler() commands.ReconcileSessionCommandHandler {
	var f commands.ReconcileUoWFactory = FuncReconcileUoWFactory(func() commands.ReconcileUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileSessionCommandHandler(f, c.reconciler)
}

func (c *CompositionRoot) CreateRegisterPaymentCommandHandler() commands.RegisterPaymentCommandHandler {
	var f commands.PaymentUoWFactory = FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterPaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateAcknowledgeSettlementCommandHandler() commands.AcknowledgeSettlementCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcknowledgeSettlementCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateAdjustmentCommandHandler() commands.CreateAdjustmentCommandHandler {
	var f commands.AdjustmentUoWFactory = FuncAdjustmentUoWFactory(func() commands.AdjustmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateAdjustmentCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateZoneCommandHandler() commands.CreateZoneCommandHandler {
	var f commands.CarrierUoWFactory = FuncCarrierUoWFactory(func() commands.CarrierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateZoneCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateZoneCommandHandler() commands.UpdateZoneCommandHandler {
	var f commands.CarrierUoWFactory = FuncCarrierUoWFactory(func() commands.CarrierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateZoneCommandHandler(f)
}

func (c *CompositionRoot) CreateDeleteZoneCommandHandler() commands.DeleteZoneCommandHandler {
	var f commands.CarrierUoWFactory = FuncCarrierUoWFactory(func() commands.CarrierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteZoneCommandHandler(f)
}

func (c *CompositionRoot) CreateGetPendingReconciliationQueryHandler() queries.GetPendingReconciliationQueryHandler {
	return queries.NewGetPendingReconciliationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersForReconciliationQueryHandler() queries.GetOrdersForReconciliationQueryHandler {
	return queries.NewGetOrdersForReconciliationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCalculateFeeQueryHandler() queries.CalculateFeeQueryHandler {
	return queries.NewCalculateFeeQueryHandler(c.gormDB, c.resolver)
}

func (c *CompositionRoot) CreateGetBalancesQueryHandler() queries.GetBalancesQueryHandler {
	return queries.NewGetBalancesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMovementsQueryHandler() queries.GetMovementsQueryHandler {
	return queries.NewGetMovementsQueryHandler(c.gormDB)
}

type FuncCarrierUoWFactory func() commands.CarrierUoW

func (f FuncCarrierUoWFactory) Create() commands.CarrierUoW {
	return f()
}

type FuncSessionUoWFactory func() commands.SessionUoW

func (f FuncSessionUoWFactory) Create() commands.SessionUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncReconcileUoWFactory func() commands.ReconcileUoW

func (f FuncReconcileUoWFactory) Create() commands.ReconcileUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

type FuncAdjustmentUoWFactory func() commands.AdjustmentUoW

func (f FuncAdjustmentUoWFactory) Create() commands.AdjustmentUoW {
	return f()
}
