package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrelay/internal/model"
)

func testFile(name string, size int64) *model.IncomingFile {
	return &model.IncomingFile{Filename: name, Size: size}
}

func TestValidateFile(t *testing.T) {
	const limit = int64(5 << 20)

	tests := []struct {
		name       string
		file       *model.IncomingFile
		docType    model.DocumentType
		wantReason RejectReason // "" means accept
	}{
		{
			name:    "identity pdf accepted",
			file:    testFile("passport.pdf", 1024),
			docType: model.DocumentIdentity,
		},
		{
			name:    "address jpg accepted",
			file:    testFile("bill.jpg", 1024),
			docType: model.DocumentAddress,
		},
		{
			name:       "missing file",
			file:       nil,
			docType:    model.DocumentIdentity,
			wantReason: ReasonMissingFile,
		},
		{
			name:       "offer letter rejects jpg even though proofs allow it",
			file:       testFile("offer.jpg", 1024),
			docType:    model.DocumentOffer,
			wantReason: ReasonUnsupportedExtension,
		},
		{
			name:       "extension case is ignored",
			file:       testFile("scan.PNG", 1024),
			docType:    model.DocumentAddress,
			wantReason: "",
		},
		{
			name:       "no extension rejected",
			file:       testFile("passport", 1024),
			docType:    model.DocumentIdentity,
			wantReason: ReasonUnsupportedExtension,
		},
		{
			name:       "exactly at the limit accepted",
			file:       testFile("id.pdf", limit),
			docType:    model.DocumentIdentity,
			wantReason: "",
		},
		{
			name:       "one byte over the limit rejected",
			file:       testFile("id.pdf", limit+1),
			docType:    model.DocumentIdentity,
			wantReason: ReasonTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rej := ValidateFile(tt.file, tt.docType, PolicyFor(tt.docType, limit))
			if tt.wantReason == "" {
				assert.Nil(t, rej)
				return
			}
			require.NotNil(t, rej)
			assert.Equal(t, tt.wantReason, rej.Reason)
			assert.Equal(t, tt.docType, rej.DocType)
			assert.NotEmpty(t, rej.Detail)
		})
	}
}

func TestPolicyFor(t *testing.T) {
	proof := PolicyFor(model.DocumentIdentity, 100)
	assert.True(t, proof.AllowedExtensions["jpeg"])
	assert.Equal(t, int64(100), proof.MaxBytes)

	offer := PolicyFor(model.DocumentOffer, 100)
	assert.True(t, offer.AllowedExtensions["pdf"])
	assert.False(t, offer.AllowedExtensions["jpg"])
}
