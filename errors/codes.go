// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Asset and payment errors
	CodeInvalidAsset      Code = "INVALID_ASSET"
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"
	CodeInvalidAmount     Code = "INVALID_AMOUNT"

	// Proof and token errors
	CodeInvalidProofCardinality Code = "INVALID_PROOF_CARDINALITY"
	CodeInvalidProof            Code = "INVALID_PROOF"

	// Ticket lifecycle errors
	CodeTicketNotPlayable   Code = "TICKET_NOT_PLAYABLE"
	CodeTicketStillPlayable Code = "TICKET_STILL_PLAYABLE"
	CodeTicketNotRedeemable Code = "TICKET_NOT_REDEEMABLE"
	CodeTicketLevelInvalid  Code = "TICKET_LEVEL_INVALID"

	// Authorization errors
	CodeUnauthorized Code = "UNAUTHORIZED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"

	// Query errors
	CodeFilterInvalid Code = "FILTER_INVALID"

	// Configuration errors
	CodeConfigInvalid Code = "CONFIG_INVALID"

	// Internal faults (randomness supply, storage engine)
	CodeInternal Code = "INTERNAL"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - malformed or mismatched input
	case CodeInvalidAsset,
		CodeInvalidAmount,
		CodeInvalidProofCardinality,
		CodeInvalidProof,
		CodeFilterInvalid,
		CodeConfigInvalid:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow the operation
	case CodeInsufficientFunds,
		CodeTicketNotPlayable,
		CodeTicketStillPlayable,
		CodeTicketNotRedeemable:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	// PermissionDenied - missing capability tier
	case CodeUnauthorized:
		return codes.PermissionDenied

	default:
		return codes.Internal
	}
}
