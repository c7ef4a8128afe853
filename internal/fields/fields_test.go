package fields

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/document"
)

var fixedNow = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{Windows: DefaultWindows(), Now: func() time.Time { return fixedNow }}
}

func TestExtractorsReturnEmptyWithoutMatches(t *testing.T) {
	doc := document.FromText("nessun dato rilevante in questo testo\n")

	assert.Equal(t, "", TaxCode(doc))
	assert.Equal(t, "", VATNumber(doc, 10))
	assert.Equal(t, "", PolicyNumber(doc, 15))
	assert.Equal(t, "", Email(doc))
	_, ok := EventDate(doc, 20, fixedNow)
	assert.False(t, ok)
	_, ok = Amount(doc, 30)
	assert.False(t, ok)

	empty := document.FromText("")
	assert.NotPanics(t, func() {
		Claim(empty, testOptions())
		Invoice(empty, testOptions())
	})
}

func TestTaxCodeFirstMatchPerLine(t *testing.T) {
	doc := document.FromLines([]string{
		"Assicurato: rssmra85t10a562s\n",
		"CF RSSMRA85T10A562S nato a Roma\n",
		"CF VRDGPP80A01F205X\n",
	})

	first := TaxCode(doc)
	assert.Equal(t, "RSSMRA85T10A562S", first)
	assert.Equal(t, first, TaxCode(doc))
}

func TestVATPrefersKeywordAdjacentNumber(t *testing.T) {
	doc := document.FromText("codice 12345678901 iva: 98765432109")
	assert.Equal(t, "98765432109", VATNumber(doc, 10))

	doc = document.FromText("codice 12345678901 e 98765432109")
	assert.Equal(t, "12345678901", VATNumber(doc, 10))
}

func TestPolicyNumber(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"strict with marker", []string{"Polizza n. 2021/05/1234567\n"}, "2021/05/1234567"},
		{"strict with dashes", []string{"rif #2020-01-7654321\n"}, "2020-01-7654321"},
		{"loose near keyword", []string{"Numero polizza: 12345678\n"}, "12345678"},
		{"loose split across lines", []string{"polizza\n", "n.45/123456\n"}, "45/123456"},
		{"loose without keyword", []string{"riferimento 12345678\n"}, ""},
		{"strict wins over loose", []string{"polizza 7654321\n", "rif 2020-01-7654321\n"}, "2020-01-7654321"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PolicyNumber(document.FromLines(tt.lines), 15))
		})
	}
}

func TestEventDateLabels(t *testing.T) {
	d, ok := EventDate(document.FromText("il sinistro è avvenuto il 14/03/2023 per rottura tubazione"), 20, fixedNow)
	require.True(t, ok)
	assert.Equal(t, constants.FieldEventDate, d.Label)
	assert.Equal(t, "14-03-2023", d.Value)

	d, ok = EventDate(document.FromText("documento del 14/03/2023"), 20, fixedNow)
	require.True(t, ok)
	assert.Equal(t, constants.FieldDate, d.Label)
	assert.Equal(t, "14-03-2023", d.Value)
}

func TestEventDatePrefersKeywordOverOrder(t *testing.T) {
	text := "lettera del 02/01/2024. l'evento si è verificato il 28/12/2023 in casa"
	d, ok := EventDate(document.FromText(text), 20, fixedNow)
	require.True(t, ok)
	assert.Equal(t, "28-12-2023", d.Value)
	assert.Equal(t, 1, d.Score)
}

func TestEventDateFormats(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"accaduto il 05 marzo 2024", "05-03-2024"},
		{"sinistro del 12 gen. 24", "12-01-2024"},
		{"data evento 2024-03-14", "14-03-2024"},
		{"avvenuto il 07.11.2019", "07-11-2019"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d, ok := EventDate(document.FromText(tt.text), 20, fixedNow)
			require.True(t, ok)
			assert.Equal(t, tt.want, d.Value)
		})
	}
}

func TestEventDateDiscardsInvalidDates(t *testing.T) {
	for _, text := range []string{
		"nato il 01/01/1990",
		"sinistro del 31/02/2024",
		"scadenza 01/01/2030",
	} {
		_, ok := EventDate(document.FromText(text), 20, fixedNow)
		assert.False(t, ok, text)
	}
}

func TestAmountScoreDominatesMagnitude(t *testing.T) {
	text := "acconto 100 € ricevuto da tempo e poi ancora molto altro testo. totale liquidato 250 € oppure 80 € finale"
	a, ok := Amount(document.FromText(text), 30)
	require.True(t, ok)
	assert.Equal(t, 250.0, a.Value)
	assert.Equal(t, 1, a.Score)
}

func TestAmountLargestWithoutKeywords(t *testing.T) {
	a, ok := Amount(document.FromText("spesa 100 € e 300 € e 200 €"), 30)
	require.True(t, ok)
	assert.Equal(t, 300.0, a.Value)
	assert.Equal(t, 0, a.Score)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"250", 250},
		{"1.234,56", 1234.56},
		{"1,234.56", 1234.56},
		{"1.500", 1500},
		{"12,50", 12.5},
		{"1.234.567", 1234567},
		{"100.", 100},
		{" 99,9 ", 99.9},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAmount(tt.in)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, ok := ParseAmount("€")
	assert.False(t, ok)
}

func TestEmailSkipsInsurerAddresses(t *testing.T) {
	doc := document.FromText("contattaci: realemutua@assicurazione.it oppure mario.rossi@example.com")
	assert.Equal(t, "mario.rossi@example.com", Email(doc))

	doc = document.FromLines([]string{"sinistri@compagnia.it\n", "Scrivere a anna.bianchi@mail.it\n"})
	assert.Equal(t, "anna.bianchi@mail.it", Email(doc))
}

func TestClaimAssemblesFieldsInOrder(t *testing.T) {
	doc := document.FromLines([]string{
		"Spett.le Compagnia,\n",
		"Il sinistro è avvenuto il 14/03/2023 per rottura tubazione.\n",
		"Assicurato RSSMRA85T10A562S, partita iva 12345678901\n",
		"Recapito: mario.rossi@example.com - polizza n. 2021/05/1234567\n",
	})

	res := Claim(doc, testOptions())

	assert.Equal(t, constants.KindClaim, res.Kind)
	assert.Equal(t, []Field{
		{Name: constants.FieldPolicyNumber, Value: "2021/05/1234567"},
		{Name: constants.FieldEventDate, Value: "14-03-2023"},
		{Name: constants.FieldTaxCode, Value: "RSSMRA85T10A562S"},
		{Name: constants.FieldVATNumber, Value: "12345678901"},
		{Name: constants.FieldEmail, Value: "mario.rossi@example.com"},
		{Name: constants.FieldCategory, Value: string(constants.WaterDamage)},
	}, res.Fields)
}

func TestClaimWithoutDateKeepsEventDateField(t *testing.T) {
	res := Claim(document.FromText("testo senza date"), testOptions())
	v, ok := res.Get(constants.FieldEventDate)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestInvoice(t *testing.T) {
	doc := document.FromLines([]string{
		"Fattura P.IVA 12345678901\n",
		"Imponibile 1.000,00 €\n",
		"Totale 1.220,00 €\n",
	})

	res := Invoice(doc, testOptions())
	assert.Equal(t, map[string]string{
		constants.FieldTaxCode:   "",
		constants.FieldVATNumber: "12345678901",
		constants.FieldAmount:    "1220.00",
	}, res.Map())

	res, ok := Extract(constants.KindInvoice, document.FromText("niente"), testOptions())
	require.True(t, ok)
	assert.Equal(t, Empty(constants.KindInvoice), res)

	_, ok = Extract(constants.KindImages, doc, testOptions())
	assert.False(t, ok)
}
