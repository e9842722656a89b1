package normalize

// Severity classes used for display styling.
const (
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
	SeverityInfo    = "info"
)

// Canonical lifecycle states.
const (
	StatusReceived        = "RECEIVED"
	StatusPending         = "PENDING"
	StatusBrandValidation = "BRAND_VALIDATION"
	StatusFraudValidation = "FRAUD_VALIDATION"
	StatusDebit           = "DEBIT"
	StatusCredit          = "CREDIT"
	StatusCompleted       = "COMPLETED"
	StatusError           = "ERROR"
	StatusRejected        = "REJECTED"
	StatusFraud           = "FRAUD"
)

// statusCodes maps every raw spelling the processor emits to a canonical
// state. Canonical names map to themselves, so CanonicalStatus is idempotent.
var statusCodes = map[string]string{
	"REC":        StatusReceived,
	"RECIBIDA":   StatusReceived,
	"PEN":        StatusPending,
	"PENDIENTE":  StatusPending,
	"VMA":        StatusBrandValidation,
	"VFR":        StatusFraudValidation,
	"DEB":        StatusDebit,
	"CRE":        StatusCredit,
	"COM":        StatusCompleted,
	"COMPLETADA": StatusCompleted,
	"ERR":        StatusError,
	"FALLIDA":    StatusError,
	"RECHAZADA":  StatusRejected,
	"FRA":        StatusFraud,
	"FRAUDE":     StatusFraud,

	StatusReceived:        StatusReceived,
	StatusPending:         StatusPending,
	StatusBrandValidation: StatusBrandValidation,
	StatusFraudValidation: StatusFraudValidation,
	StatusDebit:           StatusDebit,
	StatusCredit:          StatusCredit,
	StatusCompleted:       StatusCompleted,
	StatusError:           StatusError,
	StatusRejected:        StatusRejected,
	StatusFraud:           StatusFraud,
}

// displayNames carries the labels the dashboard renders per canonical state.
var displayNames = map[string]string{
	StatusReceived:        "RECIBIDA",
	StatusPending:         "PENDIENTE",
	StatusBrandValidation: "VALIDACIÓN MARCA",
	StatusFraudValidation: "VALIDACIÓN FRAUDE",
	StatusDebit:           "DÉBITO",
	StatusCredit:          "CRÉDITO",
	StatusCompleted:       "COMPLETADA",
	StatusError:           "ERROR",
	StatusRejected:        "RECHAZADA",
	StatusFraud:           "FRAUDE",
}

// CanonicalStatus maps a raw status code to its canonical state. Unknown
// codes pass through unchanged so no information is dropped.
func CanonicalStatus(code string) string {
	if canonical, ok := statusCodes[code]; ok {
		return canonical
	}
	return code
}

// DisplayName returns the label to render for a raw or canonical code.
// Unknown codes are their own display name.
func DisplayName(code string) string {
	if name, ok := displayNames[CanonicalStatus(code)]; ok {
		return name
	}
	return code
}

// Severity classifies a status code into one display class.
func Severity(code string) string {
	switch CanonicalStatus(code) {
	case StatusCompleted:
		return SeveritySuccess
	case StatusPending, StatusBrandValidation, StatusFraudValidation, StatusDebit, StatusCredit:
		return SeverityWarning
	case StatusError, StatusRejected, StatusFraud:
		return SeverityDanger
	default:
		return SeverityInfo
	}
}
