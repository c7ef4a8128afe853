package constants

// Field names as displayed to claim handlers.
const (
	FieldPolicyNumber = "Numero polizza"
	FieldEventDate    = "Data evento"
	FieldDate         = "Data" // date found without event keywords nearby
	FieldTaxCode      = "Codice Fiscale"
	FieldVATNumber    = "Partita IVA"
	FieldEmail        = "Email"
	FieldCategory     = "Causale"
	FieldAmount       = "Importo"
)

// DateLayout is the display format of extracted dates.
const DateLayout = "02-01-2006"
