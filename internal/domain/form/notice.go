package form

type GeneralAffidavitSubmit struct {
	PlaceOfExecution    string   `json:"place_of_execution" validate:"required"`
	DeponentName        string   `json:"deponent_name" validate:"required"`
	DeponentFatherName  string   `json:"deponent_father_name" validate:"required"`
	DeponentAge         string   `json:"deponent_age" validate:"required"`
	DeponentAddress     string   `json:"deponent_address" validate:"required"`
	StatementParagraphs []string `json:"statement_paragraphs" validate:"required,dive,required"`
	VerificationDate    string   `json:"verification_date" validate:"required"`
}

func (*GeneralAffidavitSubmit) Kind() string { return KindAffidavit }

type NameChangeSubmit struct {
	PlaceOfExecution   string `json:"place_of_execution" validate:"required"`
	DeponentOldName    string `json:"deponent_old_name" validate:"required"`
	DeponentNewName    string `json:"deponent_new_name" validate:"required"`
	DeponentFatherName string `json:"deponent_father_name" validate:"required"`
	DeponentAge        string `json:"deponent_age" validate:"required"`
	DeponentAddress    string `json:"deponent_address" validate:"required"`
	ReasonForChange    string `json:"reason_for_change" validate:"required"`
	VerificationDate   string `json:"verification_date" validate:"required"`
}

func (*NameChangeSubmit) Kind() string { return KindNameChange }

type CeaseDesistSubmit struct {
	DateOfNotice        string `json:"date_of_notice" validate:"required"`
	SenderName          string `json:"sender_name" validate:"required"`
	SenderAddress       string `json:"sender_address" validate:"required"`
	RecipientName       string `json:"recipient_name" validate:"required"`
	RecipientAddress    string `json:"recipient_address" validate:"required"`
	InfringingActivity  string `json:"infringing_activity" validate:"required"`
	LegalRightsViolated string `json:"legal_rights_violated" validate:"required"`
	DemandAction        string `json:"demand_action" validate:"required"`
	DeadlineDays        string `json:"deadline_days" validate:"required"`
}

func (*CeaseDesistSubmit) Kind() string { return KindCeaseDesist }

// LegalNoticeSubmit is a notice for recovery of outstanding dues
type LegalNoticeSubmit struct {
	DateOfNotice             string `json:"date_of_notice" validate:"required"`
	SenderName               string `json:"sender_name" validate:"required"`
	SenderAddress            string `json:"sender_address" validate:"required"`
	RecipientName            string `json:"recipient_name" validate:"required"`
	RecipientAddress         string `json:"recipient_address" validate:"required"`
	TransactionDetails       string `json:"transaction_details" validate:"required"`
	OutstandingAmount        string `json:"outstanding_amount" validate:"required"`
	OutstandingAmountInWords string `json:"outstanding_amount_in_words"`
	PaymentDeadlineDays      string `json:"payment_deadline_days" validate:"required"`
}

func (*LegalNoticeSubmit) Kind() string { return KindLegalNotice }
