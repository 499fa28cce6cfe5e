package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docrelay/internal/model"
)

func TestDeriveFilename(t *testing.T) {
	tests := []struct {
		name     string
		original string
		recordID string
		docType  model.DocumentType
		want     string
	}{
		{
			name:     "plain pdf",
			original: "passport.pdf",
			recordID: "rec123",
			docType:  model.DocumentIdentity,
			want:     "rec123_Identity.pdf",
		},
		{
			name:     "duplicated extension collapsed",
			original: "contract.pdf.pdf",
			recordID: "rec123",
			docType:  model.DocumentOffer,
			want:     "rec123_Offer.pdf",
		},
		{
			name:     "duplicated extension collapsed case-insensitively",
			original: "contract.PDF.pdf",
			recordID: "rec123",
			docType:  model.DocumentOffer,
			want:     "rec123_Offer.pdf",
		},
		{
			name:     "compound extension is not collapsed",
			original: "archive.tar.gz",
			recordID: "recF",
			docType:  model.DocumentAddress,
			want:     "recF_Address.gz",
		},
		{
			name:     "uppercase extension lowered",
			original: "scan.JPG",
			recordID: "recA",
			docType:  model.DocumentAddress,
			want:     "recA_Address.jpg",
		},
		{
			name:     "unsafe characters stripped before extension check",
			original: "my résumé?.png",
			recordID: "recB",
			docType:  model.DocumentIdentity,
			want:     "recB_Identity.png",
		},
		{
			name:     "no extension falls back to bin",
			original: "offer",
			recordID: "recC",
			docType:  model.DocumentOffer,
			want:     "recC_Offer.bin",
		},
		{
			name:     "empty original falls back to bin",
			original: "",
			recordID: "recD",
			docType:  model.DocumentAddress,
			want:     "recD_Address.bin",
		},
		{
			name:     "trailing dot has no extension",
			original: "letter.",
			recordID: "recE",
			docType:  model.DocumentOffer,
			want:     "recE_Offer.bin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveFilename(tt.original, tt.recordID, tt.docType))
		})
	}
}
