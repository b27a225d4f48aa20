package i18n

// Error codes must match the codes defined in the errors package.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown                 = "UNKNOWN"
	CodeInvalidAsset            = "INVALID_ASSET"
	CodeInsufficientFunds       = "INSUFFICIENT_FUNDS"
	CodeInvalidAmount           = "INVALID_AMOUNT"
	CodeInvalidProofCardinality = "INVALID_PROOF_CARDINALITY"
	CodeInvalidProof            = "INVALID_PROOF"
	CodeTicketNotPlayable       = "TICKET_NOT_PLAYABLE"
	CodeTicketStillPlayable     = "TICKET_STILL_PLAYABLE"
	CodeTicketNotRedeemable     = "TICKET_NOT_REDEEMABLE"
	CodeTicketLevelInvalid      = "TICKET_LEVEL_INVALID"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeNotFound                = "NOT_FOUND"
	CodeFilterInvalid           = "FILTER_INVALID"
	CodeConfigInvalid           = "CONFIG_INVALID"
	CodeInternal                = "INTERNAL"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeUnknown: "An unexpected error occurred",

		// Asset and payment errors
		CodeInvalidAsset:      "Payment or token is of the wrong resource kind",
		CodeInsufficientFunds: "Insufficient funds to complete the operation",
		CodeInvalidAmount:     "Amount {{.Value}} is not a valid quantity",

		// Proof and token errors
		CodeInvalidProofCardinality: "Exactly one ticket must be presented",
		CodeInvalidProof:            "Proof does not match the expected ticket resource",

		// Ticket lifecycle errors
		CodeTicketNotPlayable:   "Ticket at level {{.Level}} cannot play a round",
		CodeTicketStillPlayable: "Ticket at level {{.Level}} is still playable",
		CodeTicketNotRedeemable: "Ticket at level {{.Level}} is not redeemable",
		CodeTicketLevelInvalid:  "Ticket level {{.Level}} is outside the valid range",

		// Authorization errors
		CodeUnauthorized: "Caller lacks the capability required for {{.Operation}}",

		// Storage errors
		CodeNotFound: "The requested resource was not found",

		// Query errors
		CodeFilterInvalid: "Filter expression is invalid",

		// Configuration errors
		CodeConfigInvalid: "Configuration is invalid",

		CodeInternal: "An internal error occurred",
	},
}
