package s3

type Document struct {
	// Name is the artifact file name, e.g. Jane_Doe_faktuur_29-08-2026.pdf
	Name string       `json:"name"`
	Data []byte       `json:"data"`
	Kind DocumentKind `json:"kind"`
	Type DocumentType `json:"type"`
}

type DocumentKind string

const (
	DocumentKindPdf DocumentKind = "pdf"
)

type DocumentType string

const (
	DocumentTypeInvoice DocumentType = "invoice"
)

func NewPdfDocument(name string, data []byte, docType DocumentType) *Document {
	return &Document{
		Name: name,
		Data: data,
		Kind: DocumentKindPdf,
		Type: docType,
	}
}
