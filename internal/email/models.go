package email

// SendInvoiceEmailRequest is a request to deliver one rendered invoice to a
// parent address, with the PDF attached.
type SendInvoiceEmailRequest struct {
	ToAddress   string `json:"to_address" validate:"required"`
	StudentName string `json:"student_name" validate:"required"`
	InvoiceRef  string `json:"invoice_ref"`
	FileName    string `json:"file_name" validate:"required"`
	Attachment  []byte `json:"-"`
}

// SendEmailResponse represents the response from sending an email
type SendEmailResponse struct {
	MessageID string
	Success   bool
	Error     string
}
