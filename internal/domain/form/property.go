package form

// Party is a named person with a parent and an address
type Party struct {
	Name       string `json:"name" validate:"required"`
	ParentName string `json:"parent_name" validate:"required"`
	Address    string `json:"address" validate:"required"`
}

// Boundaries of a premises or property
type Boundaries struct {
	North string `json:"north" validate:"required"`
	South string `json:"south" validate:"required"`
	East  string `json:"east" validate:"required"`
	West  string `json:"west" validate:"required"`
}

// --- Will ---

type Relation struct {
	Name         string `json:"name" validate:"required"`
	Relationship string `json:"relationship" validate:"required"`
	Address      string `json:"address" validate:"required"`
}

type Bequest struct {
	AssetDescription string `json:"asset_description" validate:"required"`
	BeneficiaryName  string `json:"beneficiary_name" validate:"required"`
}

type WillSubmit struct {
	TestatorName             string     `json:"testator_name" validate:"required"`
	TestatorFatherName       string     `json:"testator_father_name" validate:"required"`
	TestatorAge              string     `json:"testator_age" validate:"required"`
	TestatorAddress          string     `json:"testator_address" validate:"required"`
	Executors                []Relation `json:"executors" validate:"required,dive"`
	Beneficiaries            []Relation `json:"beneficiaries" validate:"required,dive"`
	Bequests                 []Bequest  `json:"bequests" validate:"required,dive"`
	ResiduaryBeneficiaryName string     `json:"residuary_beneficiary_name" validate:"required"`
	Guardian                 *Relation  `json:"guardian" validate:"omitempty"`
	ExecutionDate            string     `json:"execution_date" validate:"required"`
	PlaceOfExecution         string     `json:"place_of_execution" validate:"required"`
}

func (*WillSubmit) Kind() string { return KindWill }

// --- Commercial rental agreement ---

// Tenant is either an individual or an organization, told apart by TenantType
type Tenant struct {
	TenantType string `json:"tenant_type" validate:"required,oneof=individual organization"`

	// individual
	Name       string `json:"name,omitempty" validate:"required_if=TenantType individual"`
	ParentName string `json:"parent_name,omitempty" validate:"required_if=TenantType individual"`

	// organization
	OrganizationName    string  `json:"organization_name,omitempty" validate:"required_if=TenantType organization"`
	AuthorizedSignatory string  `json:"authorized_signatory,omitempty" validate:"required_if=TenantType organization"`
	RegistrationNumber  *string `json:"registration_number,omitempty"`

	Address string `json:"address" validate:"required"`
}

type CRASubmit struct {
	ExecutionDate                   string     `json:"execution_date" validate:"required"`
	PlaceOfExecution                string     `json:"place_of_execution" validate:"required"`
	Landlord                        Party      `json:"landlord" validate:"required"`
	Tenant                          Tenant     `json:"tenant" validate:"required"`
	PremisesAddress                 string     `json:"premises_address" validate:"required"`
	PremisesBoundaries              Boundaries `json:"premises_boundaries" validate:"required"`
	StartDate                       string     `json:"start_date" validate:"required"`
	EndDate                         string     `json:"end_date" validate:"required"`
	RentAmount                      string     `json:"rent_amount" validate:"required"`
	RentAmountInWords               string     `json:"rent_amount_in_words"`
	RentDueDay                      *int       `json:"rent_due_day" validate:"required"`
	SecurityDepositAmount           string     `json:"security_deposit_amount" validate:"required"`
	SecurityDepositInWords          string     `json:"security_deposit_in_words"`
	SecurityDepositRefundPeriodDays *int       `json:"security_deposit_refund_period_days" validate:"required"`
	PermittedBusinessUse            string     `json:"permitted_business_use" validate:"required"`
	LockInPeriodMonths              *int       `json:"lock_in_period_months" validate:"required"`
	NoticePeriodMonths              *int       `json:"notice_period_months" validate:"required"`
}

func (*CRASubmit) Kind() string { return KindCRA }

// --- Sale deed ---

type PaymentDetail struct {
	Amount  string `json:"amount" validate:"required"`
	Mode    string `json:"mode" validate:"required"`
	Details string `json:"details" validate:"required"`
}

type SDSubmit struct {
	ExecutionDate             string          `json:"execution_date" validate:"required"`
	PlaceOfExecution          string          `json:"place_of_execution" validate:"required"`
	Vendor                    Party           `json:"vendor" validate:"required"`
	Vendee                    Party           `json:"vendee" validate:"required"`
	PropertyAddress           string          `json:"property_address" validate:"required"`
	PropertyBoundaries        Boundaries      `json:"property_boundaries" validate:"required"`
	TotalConsideration        string          `json:"total_consideration" validate:"required"`
	TotalConsiderationInWords string          `json:"total_consideration_in_words"`
	PaymentDetails            []PaymentDetail `json:"payment_details" validate:"required,dive"`
	VendorAcquisitionMethod   string          `json:"vendor_acquisition_method" validate:"required"`
}

func (*SDSubmit) Kind() string { return KindSaleDeed }

// --- Residential rental agreement ---

type ResiRent struct {
	PlaceOfExecution      string `json:"place_of_execution" validate:"required"`
	ExecutionDate         string `json:"execution_date" validate:"required"`
	OwnerName             string `json:"owner_name" validate:"required"`
	OwnerFather           string `json:"owner_father" validate:"required"`
	OwnerAddress          string `json:"owner_address" validate:"required"`
	TenantName            string `json:"tenant_name" validate:"required"`
	TenantFather          string `json:"tenant_father" validate:"required"`
	TenantAddress         string `json:"tenant_address" validate:"required"`
	PremisesAddress       string `json:"premises_address" validate:"required"`
	RentAmount            string `json:"rent_amount" validate:"required"`
	RentAmountInWords     string `json:"rent_amount_in_words"`
	StartDate             string `json:"start_date" validate:"required"`
	EndDate               string `json:"end_date" validate:"required"`
	SecurityDepositAmount string `json:"security_deposit_amount" validate:"required"`
	SecurityAmountWords   string `json:"security_amount_words"`
	FirstWitness          string `json:"first_witness" validate:"required"`
	SecondWitness         string `json:"second_witness" validate:"required"`
}

func (*ResiRent) Kind() string { return KindRental }
