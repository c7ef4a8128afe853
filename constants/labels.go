package constants

// LabelConfidenceThreshold is the exclusive lower bound for keeping an image label.
const LabelConfidenceThreshold = 0.7

// LabelTranslations is the allow-list of classifier labels with their Italian names.
// Labels not listed here are never surfaced.
var LabelTranslations = map[string]string{
	"Bathroom":          "Bagno",
	"Bedrock":           "Basamento",
	"Building":          "Edificio",
	"Building material": "Materiale da costruzione",
	"Ceiling":           "Soffitto",
	"Floor":             "Pavimento",
	"Flooring":          "Pavimentazione",
	"House":             "Abitazione",
	"Plaster":           "Intonaco",
	"Plumbing":          "Tubature",
	"Plumbing fixture":  "Impianto idraulico",
	"Toilet":            "Gabinetto",
	"Window":            "Finestra",
}
