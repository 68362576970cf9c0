package services

import (
	"bytes"
	"fmt"
	"sort"

	"finser-backend/internal/adapters/persistence/models"
	"finser-backend/internal/core/domain"

	"github.com/jung-kurt/gofpdf"
)

// InvoiceService renders a submitted form into a downloadable PDF.
// Formatting convenience only: values are stringified for legibility,
// no round-trip guarantee.
type InvoiceService struct{}

// NewInvoiceService creates a new invoice service
func NewInvoiceService() *InvoiceService {
	return &InvoiceService{}
}

// InvoiceFileName is the suggested download name for an invoice
const InvoiceFileName = "FormSubmissionInvoice.pdf"

// Render produces the invoice PDF for a form: form kind, flattened field
// values in catalog order, and the submission token.
func (s *InvoiceService) Render(form *models.Form) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Form Submission Invoice", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	title := form.FormType
	if ft, ok := domain.FormTypeByID(form.FormType); ok {
		title = ft.Title
	}

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Form Type: %s", title), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Form Data:", "", 1, "L", false, 0, "")

	for _, line := range flattenFields(form) {
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.CellFormat(0, 8, fmt.Sprintf("Token: %s", form.Token), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// flattenFields stringifies field values, catalog field order first, then
// any unrecognized keys sorted by name.
func flattenFields(form *models.Form) []string {
	var lines []string
	printed := make(map[string]bool, len(form.FormData))

	if ft, ok := domain.FormTypeByID(form.FormType); ok {
		for _, field := range ft.Fields {
			value, present := form.FormData[field.Name]
			if !present {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s: %v", field.Label, value))
			printed[field.Name] = true
		}
	}

	var extras []string
	for name := range form.FormData {
		if !printed[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		lines = append(lines, fmt.Sprintf("%s: %v", name, form.FormData[name]))
	}

	return lines
}
