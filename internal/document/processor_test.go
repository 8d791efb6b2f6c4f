package document

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

func TestProcessPlainText(t *testing.T) {
	p := NewProcessor(0, nil)
	text := "PART II: VALUE ADDED TAX\nVAT on digital marketplace services."

	res, err := p.Process("bill.txt", encode([]byte(text)))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, text, res.Content)
	assert.Contains(t, res.MIMEType, "text/plain")
	assert.Len(t, res.ProfessionImpacts, 10)
	assert.Contains(t, res.ProfessionImpacts["driver"], "Fuel cost")
}

func TestProcessDataURL(t *testing.T) {
	res, err := NewProcessor(0, nil).Process("bill.txt", "data:text/plain;base64,"+encode([]byte("Finance Bill text")))
	require.NoError(t, err)
	assert.Equal(t, "Finance Bill text", res.Content)
}

func TestProcessPDFUsesKeyProvisions(t *testing.T) {
	pdf := []byte("%PDF-1.7\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

	res, err := NewProcessor(0, nil).Process("finance_bill_2025.pdf", encode(pdf))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", res.MIMEType)
	assert.Equal(t, KeyProvisions, res.Content)
}

func TestProcessProfessionImpactsIsACopy(t *testing.T) {
	p := NewProcessor(0, nil)
	res, err := p.Process("a.txt", encode([]byte("some bill text")))
	require.NoError(t, err)
	res.ProfessionImpacts["driver"] = "changed"

	again, err := p.Process("a.txt", encode([]byte("some bill text")))
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again.ProfessionImpacts["driver"])
}

func TestProcessErrorsAreScopedToFile(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	tests := []struct {
		name    string
		payload string
		want    error
	}{
		{"empty", "", ErrEmptyFile},
		{"not base64", "%%%not-base64%%%", ErrBadEncoding},
		{"image", encode(png), ErrUnsupportedType},
		{"too large", encode(make([]byte, 64)), ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProcessor(32, nil)
			_, err := p.Process("upload.bin", tt.payload)

			var docErr *Error
			require.ErrorAs(t, err, &docErr)
			assert.Equal(t, "upload.bin", docErr.FileName)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), `"upload.bin"`)
		})
	}
}
