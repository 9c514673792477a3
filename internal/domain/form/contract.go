package form

type NDASubmit struct {
	ExecutionDate                string `json:"execution_date" validate:"required"`
	PlaceOfExecution             string `json:"place_of_execution" validate:"required"`
	DisclosingPartyName          string `json:"disclosing_party_name" validate:"required"`
	DisclosingPartyAddress       string `json:"disclosing_party_address" validate:"required"`
	ReceivingPartyName           string `json:"receiving_party_name" validate:"required"`
	ReceivingPartyAddress        string `json:"receiving_party_address" validate:"required"`
	PurposeOfDisclosure          string `json:"purpose_of_disclosure" validate:"required"`
	ConfidentialityDurationYears string `json:"confidentiality_duration_years" validate:"required"`
	JurisdictionCity             string `json:"jurisdiction_city" validate:"required"`
}

func (*NDASubmit) Kind() string { return KindNDA }

type EmploymentSubmit struct {
	ExecutionDate         string `json:"execution_date" validate:"required"`
	PlaceOfExecution      string `json:"place_of_execution" validate:"required"`
	EmployerName          string `json:"employer_name" validate:"required"`
	EmployerAddress       string `json:"employer_address" validate:"required"`
	EmployeeName          string `json:"employee_name" validate:"required"`
	EmployeeAddress       string `json:"employee_address" validate:"required"`
	Designation           string `json:"designation" validate:"required"`
	StartDate             string `json:"start_date" validate:"required"`
	ProbationPeriodMonths string `json:"probation_period_months" validate:"required"`
	SalaryAmount          string `json:"salary_amount" validate:"required"`
	SalaryAmountInWords   string `json:"salary_amount_in_words"`
	NoticePeriodDays      string `json:"notice_period_days" validate:"required"`
}

func (*EmploymentSubmit) Kind() string { return KindEmployment }

type Partner struct {
	Name                  string `json:"name" validate:"required"`
	Address               string `json:"address" validate:"required"`
	CapitalContribution   string `json:"capital_contribution" validate:"required"`
	ProfitSharePercentage string `json:"profit_share_percentage" validate:"required"`
}

type PartnershipSubmit struct {
	ExecutionDate    string    `json:"execution_date" validate:"required"`
	PlaceOfExecution string    `json:"place_of_execution" validate:"required"`
	FirmName         string    `json:"firm_name" validate:"required"`
	FirmAddress      string    `json:"firm_address" validate:"required"`
	BusinessActivity string    `json:"business_activity" validate:"required"`
	StartDate        string    `json:"start_date" validate:"required"`
	Partners         []Partner `json:"partners" validate:"required,dive"`
}

func (*PartnershipSubmit) Kind() string { return KindPartnership }

type FreelancerSubmit struct {
	ExecutionDate     string `json:"execution_date" validate:"required"`
	PlaceOfExecution  string `json:"place_of_execution" validate:"required"`
	ClientName        string `json:"client_name" validate:"required"`
	ClientAddress     string `json:"client_address" validate:"required"`
	FreelancerName    string `json:"freelancer_name" validate:"required"`
	FreelancerAddress string `json:"freelancer_address" validate:"required"`
	ScopeOfWork       string `json:"scope_of_work" validate:"required"`
	TotalFee          string `json:"total_fee" validate:"required"`
	TotalFeeInWords   string `json:"total_fee_in_words"`
	DeadlineDate      string `json:"deadline_date" validate:"required"`
}

func (*FreelancerSubmit) Kind() string { return KindFreelancer }

type ServiceSubmit struct {
	ExecutionDate          string `json:"execution_date" validate:"required"`
	PlaceOfExecution       string `json:"place_of_execution" validate:"required"`
	ClientName             string `json:"client_name" validate:"required"`
	ClientAddress          string `json:"client_address" validate:"required"`
	ServiceProviderName    string `json:"service_provider_name" validate:"required"`
	ServiceProviderAddress string `json:"service_provider_address" validate:"required"`
	ServicesDescription    string `json:"services_description" validate:"required"`
	PaymentTerms           string `json:"payment_terms" validate:"required"`
	TerminationNoticeDays  string `json:"termination_notice_days" validate:"required"`
}

func (*ServiceSubmit) Kind() string { return KindService }

// PoASubmit is the power of attorney request
type PoASubmit struct {
	ExecutionDate       string   `json:"execution_date" validate:"required"`
	PlaceOfExecution    string   `json:"place_of_execution" validate:"required"`
	PrincipalName       string   `json:"principal_name" validate:"required"`
	PrincipalAge        string   `json:"principal_age" validate:"required"`
	PrincipalFatherName string   `json:"principal_father_name" validate:"required"`
	PrincipalAddress    string   `json:"principal_address" validate:"required"`
	AttorneyName        string   `json:"attorney_name" validate:"required"`
	AttorneyAge         string   `json:"attorney_age" validate:"required"`
	AttorneyFatherName  string   `json:"attorney_father_name" validate:"required"`
	AttorneyAddress     string   `json:"attorney_address" validate:"required"`
	PurposeOfPoA        string   `json:"purpose_of_poa" validate:"required"`
	SpecificPowers      []string `json:"specific_powers" validate:"required,dive,required"`
}

func (*PoASubmit) Kind() string { return KindPoA }
