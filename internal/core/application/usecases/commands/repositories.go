// Package commands contains the write-side use cases of the settlement
// engine. Every command is a constructor-guarded struct; its handler owns
// the transaction boundary: validate, begin, mutate, commit.
package commands

import (
	"context"

	"settlement/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each composition names exactly the repositories a handler
// touches, so mocks stay small and intent stays visible.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CarrierRepoFactory provides access to the carrier repository within a transaction.
	CarrierRepoFactory interface {
		CarrierRepository() ports.CarrierRepository
	}

	// SessionRepoFactory provides access to the session repository within a transaction.
	SessionRepoFactory interface {
		SessionRepository() ports.SessionRepository
	}

	// LedgerRepoFactory provides access to the ledger repository within a transaction.
	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// SettlementRepoFactory provides access to the settlement repository within a transaction.
	SettlementRepoFactory interface {
		SettlementRepository() ports.SettlementRepository
	}

	// PaymentRepoFactory provides access to the payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// CarrierUoW manages transactions for carrier-only operations
	// (zone management).
	CarrierUoW interface {
		TxManager
		CarrierRepoFactory
	}

	// CarrierUoWFactory creates carrier unit of work instances.
	CarrierUoWFactory interface {
		Create() CarrierUoW
	}

	// SessionUoW manages transactions for session-only operations.
	SessionUoW interface {
		TxManager
		SessionRepoFactory
	}

	// SessionUoWFactory creates session unit of work instances.
	SessionUoWFactory interface {
		Create() SessionUoW
	}

	// DispatchUoW manages transactions spanning sessions and carriers.
	// Used when creating or dispatching a session, where the carrier must
	// be loaded for validation and fee resolution.
	DispatchUoW interface {
		TxManager
		SessionRepoFactory
		CarrierRepoFactory
	}

	// DispatchUoWFactory creates dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// ReconcileUoW manages the reconciliation transaction: session, carrier,
	// settlement and ledger move together or not at all.
	ReconcileUoW interface {
		TxManager
		SessionRepoFactory
		CarrierRepoFactory
		SettlementRepoFactory
		LedgerRepoFactory
	}

	// ReconcileUoWFactory creates reconcile unit of work instances.
	ReconcileUoWFactory interface {
		Create() ReconcileUoW
	}

	// PaymentUoW manages the payment transaction: the payment record, the
	// settlement it applies to, the offsetting ledger movement and the
	// session advanced when the settlement closes.
	PaymentUoW interface {
		TxManager
		PaymentRepoFactory
		SettlementRepoFactory
		LedgerRepoFactory
		SessionRepoFactory
	}

	// PaymentUoWFactory creates payment unit of work instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// SettlementUoW manages transactions for settlement-only operations.
	SettlementUoW interface {
		TxManager
		SettlementRepoFactory
	}

	// SettlementUoWFactory creates settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}

	// AdjustmentUoW manages transactions for manual ledger adjustments.
	// The carrier repository is used to reject adjustments against unknown
	// carriers.
	AdjustmentUoW interface {
		TxManager
		CarrierRepoFactory
		LedgerRepoFactory
	}

	// AdjustmentUoWFactory creates adjustment unit of work instances.
	AdjustmentUoWFactory interface {
		Create() AdjustmentUoW
	}
)
