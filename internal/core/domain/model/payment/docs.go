// Package payment contains the CarrierPayment record: money that actually
// changed hands against a carrier's outstanding balance. A payment produces
// offsetting ledger movements (payment_in for cash received from the carrier,
// payment_out for cash paid to the carrier) and advances the settlement it
// closes out, fully or partially.
package payment
