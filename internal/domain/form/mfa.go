package form

// PersonalDetails identifies one spouse
type PersonalDetails struct {
	Name       string `json:"name" validate:"required"`
	Gender     string `json:"gender" validate:"required"`
	FatherName string `json:"father_name" validate:"required"`
	MotherName string `json:"mother_name" validate:"required"`
	DOB        string `json:"dob" validate:"required"`
	Address    string `json:"address" validate:"required"`
}

type EmploymentDetails struct {
	Occupation   string `json:"occupation" validate:"required"`
	Employer     string `json:"employer" validate:"required"`
	AnnualIncome string `json:"annual_income" validate:"required"`
}

type RealEstate struct {
	Address      string  `json:"address" validate:"required"`
	Value        *Amount `json:"value" validate:"required"`
	IsPreMarital *bool   `json:"is_pre_marital" validate:"required"`
}

type BankAccount struct {
	BankName      string  `json:"bank_name" validate:"required"`
	AccountNumber string  `json:"account_number" validate:"required"`
	Balance       *Amount `json:"balance" validate:"required"`
}

type Investment struct {
	Type         string  `json:"type" validate:"required"`
	Company      string  `json:"company" validate:"required"`
	Value        *Amount `json:"value" validate:"required"`
	IsPreMarital *bool   `json:"is_pre_marital" validate:"required"`
}

type Loan struct {
	Type   string  `json:"type" validate:"required"`
	Amount *Amount `json:"amount" validate:"required"`
	Bank   string  `json:"bank" validate:"required"`
}

// Assets of one spouse; bank accounts are mandatory, the rest optional
type Assets struct {
	RealEstate  []RealEstate  `json:"real_estate" validate:"omitempty,dive"`
	BankAccount []BankAccount `json:"bank_account" validate:"required,dive"`
	Investment  []Investment  `json:"investment" validate:"omitempty,dive"`
}

type Liabilities struct {
	Loans []Loan `json:"loans" validate:"omitempty,dive"`
}

// PartyInfo is everything declared by one spouse
type PartyInfo struct {
	Personal    PersonalDetails   `json:"personal" validate:"required"`
	Employment  EmploymentDetails `json:"employment" validate:"required"`
	Assets      Assets            `json:"assets" validate:"required"`
	Liabilities *Liabilities      `json:"liabilities" validate:"required"`
}

// MFASubmit is the marital financial arrangement request
type MFASubmit struct {
	PartyOne         PartyInfo `json:"partyOne" validate:"required"`
	PartyTwo         PartyInfo `json:"partyTwo" validate:"required"`
	ExecutionDate    Date      `json:"execution_date" validate:"required"`
	MarriageDate     Date      `json:"marriage_date" validate:"required"`
	PlaceOfExecution string    `json:"place_of_execution" validate:"required"`
}

func (*MFASubmit) Kind() string { return KindMFA }
