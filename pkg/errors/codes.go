package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.  Codes
// are grouped by a module prefix ("CFG_001") so ModuleForCode can derive the
// owning component for logging and metrics labels.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Sentinel pseudo-codes.
const (
	CodeOK      ErrorCode = "OK"
	CodeUnknown ErrorCode = "UNKNOWN"
)

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeMessagingError     ErrorCode = "COMMON_014"
	ErrCodeFeatureDisabled    ErrorCode = "COMMON_015"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
)

// Configuration Error Codes.  Fatal, raised while building registries or
// loading configuration.
const (
	ErrCodeConfigInvalid       ErrorCode = "CFG_001"
	ErrCodeReactionMissing     ErrorCode = "CFG_002"
	ErrCodeAnnotatorMissing    ErrorCode = "CFG_003"
	ErrCodeReactionDuplicate   ErrorCode = "CFG_004"
	ErrCodeImplementationLack  ErrorCode = "CFG_005"
	ErrCodeSubstrateCatalogBad ErrorCode = "CFG_006"
)

// Structural Generation Failure Codes.  Local to one plan or one reaction.
const (
	ErrCodeResidueUnavailable  ErrorCode = "GEN_001"
	ErrCodeBondFailed          ErrorCode = "GEN_002"
	ErrCodeReactionSiteMissing ErrorCode = "GEN_003"
	ErrCodeCyclizationFailed   ErrorCode = "GEN_004"
	ErrCodeTemplateInvalid     ErrorCode = "GEN_005"
	ErrCodeSMILESInvalid       ErrorCode = "GEN_006"
)

// Enumeration Limit Codes.  Never returned as failures; used to tag truncated
// diagnostics.
const (
	ErrCodePermutationLimit ErrorCode = "LIM_001"
	ErrCodeCyclizationLimit ErrorCode = "LIM_002"
	ErrCodePlanLimit        ErrorCode = "LIM_003"
	ErrCodeScaffoldLimit    ErrorCode = "LIM_004"
)

// Ledger (input) Error Codes.
const (
	ErrCodeLedgerInvalid      ErrorCode = "LEDGER_001"
	ErrCodeUnknownDomainType  ErrorCode = "LEDGER_002"
	ErrCodeUnknownSubstrate   ErrorCode = "LEDGER_003"
	ErrCodeInvalidCoordinates ErrorCode = "LEDGER_004"
	ErrCodeDuplicateORF       ErrorCode = "LEDGER_005"
	ErrCodeLedgerFormat       ErrorCode = "LEDGER_006"
)

// ErrorClass groups codes by recovery behaviour.
type ErrorClass string

const (
	ClassUnknown    ErrorClass = "unknown"
	ClassCommon     ErrorClass = "common"
	ClassConfig     ErrorClass = "config"
	ClassGeneration ErrorClass = "generation"
	ClassLimit      ErrorClass = "limit"
	ClassLedger     ErrorClass = "ledger"
)

// ClassForCode maps a code to its class using the module prefix.
func ClassForCode(code ErrorCode) ErrorClass {
	switch ModuleForCode(code) {
	case "CFG":
		return ClassConfig
	case "GEN":
		return ClassGeneration
	case "LIM":
		return ClassLimit
	case "LEDGER":
		return ClassLedger
	case "COMMON":
		return ClassCommon
	default:
		return ClassUnknown
	}
}

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeMessagingError:     http.StatusInternalServerError,
	ErrCodeFeatureDisabled:    http.StatusForbidden,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeConfigInvalid:       http.StatusInternalServerError,
	ErrCodeReactionMissing:     http.StatusInternalServerError,
	ErrCodeAnnotatorMissing:    http.StatusInternalServerError,
	ErrCodeReactionDuplicate:   http.StatusInternalServerError,
	ErrCodeImplementationLack:  http.StatusInternalServerError,
	ErrCodeSubstrateCatalogBad: http.StatusInternalServerError,

	ErrCodeResidueUnavailable:  http.StatusUnprocessableEntity,
	ErrCodeBondFailed:          http.StatusUnprocessableEntity,
	ErrCodeReactionSiteMissing: http.StatusUnprocessableEntity,
	ErrCodeCyclizationFailed:   http.StatusUnprocessableEntity,
	ErrCodeTemplateInvalid:     http.StatusUnprocessableEntity,
	ErrCodeSMILESInvalid:       http.StatusBadRequest,

	ErrCodePermutationLimit: http.StatusOK,
	ErrCodeCyclizationLimit: http.StatusOK,
	ErrCodePlanLimit:        http.StatusOK,
	ErrCodeScaffoldLimit:    http.StatusOK,

	ErrCodeLedgerInvalid:      http.StatusBadRequest,
	ErrCodeUnknownDomainType:  http.StatusBadRequest,
	ErrCodeUnknownSubstrate:   http.StatusBadRequest,
	ErrCodeInvalidCoordinates: http.StatusBadRequest,
	ErrCodeDuplicateORF:       http.StatusBadRequest,
	ErrCodeLedgerFormat:       http.StatusBadRequest,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",
	ErrCodeMessagingError:     "messaging error",
	ErrCodeFeatureDisabled:    "feature disabled",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeConfigInvalid:       "invalid configuration",
	ErrCodeReactionMissing:     "no reaction registered for domain type",
	ErrCodeAnnotatorMissing:    "no annotator registered for domain type",
	ErrCodeReactionDuplicate:   "domain type bound to more than one reaction",
	ErrCodeImplementationLack:  "reaction kind has no implementation",
	ErrCodeSubstrateCatalogBad: "invalid substrate catalogue entry",

	ErrCodeResidueUnavailable:  "residue could not be built",
	ErrCodeBondFailed:          "bond could not be formed",
	ErrCodeReactionSiteMissing: "reaction site not found",
	ErrCodeCyclizationFailed:   "cyclization could not be formed",
	ErrCodeTemplateInvalid:     "invalid residue template",
	ErrCodeSMILESInvalid:       "invalid SMILES",

	ErrCodePermutationLimit: "permutation limit reached",
	ErrCodeCyclizationLimit: "cyclization limit reached",
	ErrCodePlanLimit:        "plan limit reached",
	ErrCodeScaffoldLimit:    "scaffold limit reached",

	ErrCodeLedgerInvalid:      "invalid domain ledger",
	ErrCodeUnknownDomainType:  "unknown domain type",
	ErrCodeUnknownSubstrate:   "unknown substrate",
	ErrCodeInvalidCoordinates: "invalid genomic coordinates",
	ErrCodeDuplicateORF:       "duplicate ORF name",
	ErrCodeLedgerFormat:       "unsupported ledger format",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	s := string(code)
	if i := strings.LastIndex(s, "_"); i > 0 {
		return s[:i]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
