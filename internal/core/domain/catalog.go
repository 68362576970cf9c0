package domain

// Field input kinds
const (
	FieldText   = "text"
	FieldNumber = "number"
	FieldDate   = "date"
	FieldSelect = "select"
)

// FormField describes one input of a form template
type FormField struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"` // select only
}

// FormType describes one intake template
type FormType struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Fields []FormField `json:"fields"`
}

// FormTypes is the static intake catalog. Immutable at runtime; the order of
// fields is the order they are rendered and exported.
var FormTypes = []FormType{
	{
		ID:    "credit_form",
		Title: "Credit Form",
		Fields: []FormField{
			{Name: "creditAmount", Label: "Credit Amount", Type: FieldNumber},
			{Name: "creditReason", Label: "Reason for Credit", Type: FieldText},
			{Name: "accountNumber", Label: "Account Number", Type: FieldNumber},
			{Name: "transactionDate", Label: "Transaction Date", Type: FieldDate},
		},
	},
	{
		ID:    "debit_form",
		Title: "Debit Form",
		Fields: []FormField{
			{Name: "debitAmount", Label: "Debit Amount", Type: FieldNumber},
			{Name: "debitReason", Label: "Reason for Debit", Type: FieldText},
			{Name: "accountNumber", Label: "Account Number", Type: FieldNumber},
			{Name: "transactionDate", Label: "Transaction Date", Type: FieldDate},
		},
	},
	{
		ID:    "loan_form",
		Title: "Loan Form",
		Fields: []FormField{
			{Name: "loanAmount", Label: "Loan Amount", Type: FieldNumber},
			{Name: "loanPurpose", Label: "Purpose of Loan", Type: FieldText},
			{Name: "employmentStatus", Label: "Employment Status", Type: FieldSelect,
				Options: []string{"Employed", "Self-Employed", "Unemployed", "Retired"}},
			{Name: "monthlyIncome", Label: "Monthly Income", Type: FieldNumber},
		},
	},
	{
		ID:    "account_opening",
		Title: "Account Opening",
		Fields: []FormField{
			{Name: "fullName", Label: "Full Name", Type: FieldText},
			{Name: "dateOfBirth", Label: "Date of Birth", Type: FieldDate},
			{Name: "accountType", Label: "Account Type", Type: FieldSelect,
				Options: []string{"Savings", "Checking", "Fixed Deposit"}},
			{Name: "initialDeposit", Label: "Initial Deposit", Type: FieldNumber},
		},
	},
	{
		ID:    "loan_application",
		Title: "Loan Application",
		Fields: []FormField{
			{Name: "loanAmount", Label: "Loan Amount", Type: FieldNumber},
			{Name: "loanTermMonths", Label: "Loan Term (Months)", Type: FieldNumber},
			{Name: "employmentStatus", Label: "Employment Status", Type: FieldSelect,
				Options: []string{"Employed", "Self-Employed", "Unemployed", "Retired"}},
			{Name: "monthlyIncome", Label: "Monthly Income", Type: FieldNumber},
			{Name: "collateral", Label: "Collateral Description", Type: FieldText},
		},
	},
}

// FormTypeByID looks up a template by its catalog id
func FormTypeByID(id string) (*FormType, bool) {
	for i := range FormTypes {
		if FormTypes[i].ID == id {
			return &FormTypes[i], true
		}
	}
	return nil, false
}
