package model

import "io"

// DocumentType identifies one of the three fixed document slots every
// submission carries.
type DocumentType string

const (
	DocumentIdentity DocumentType = "Identity"
	DocumentAddress  DocumentType = "Address"
	DocumentOffer    DocumentType = "Offer"
)

// DocumentTypes lists the slots in their canonical order.
var DocumentTypes = []DocumentType{DocumentIdentity, DocumentAddress, DocumentOffer}

// FormField returns the multipart form field name for the slot.
func (d DocumentType) FormField() string {
	switch d {
	case DocumentIdentity:
		return "identityProof"
	case DocumentAddress:
		return "addressProof"
	case DocumentOffer:
		return "offerLetter"
	}
	return ""
}

// RecordField returns the record-store attachment field the slot maps to.
func (d DocumentType) RecordField() string {
	switch d {
	case DocumentIdentity:
		return "Identity Proof"
	case DocumentAddress:
		return "Address Proof"
	case DocumentOffer:
		return "Offer Letter"
	}
	return ""
}

// IncomingFile is one uploaded blob as parsed from the multipart body.
// It is ephemeral: Open yields the content, and Release frees any temporary
// representation. Release must run on both the success and failure path
// before the request returns.
type IncomingFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
	Release     func() error
}

// UploadedAttachment is the durable result of one successful upload:
// the derived stored filename plus a URL the record store can fetch.
type UploadedAttachment struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}
