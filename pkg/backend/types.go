package backend

import (
	"encoding/json"
	"time"
)

// User is an account as the backend reports it.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthResult is returned by Login and Register.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Application statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Application is a borrower's loan application.
type Application struct {
	ID           string    `json:"id"`
	BorrowerID   string    `json:"borrower_id"`
	BorrowerName string    `json:"borrower_name,omitempty"`
	BusinessName string    `json:"business_name,omitempty"`
	Amount       float64   `json:"amount"`
	TermMonths   int       `json:"term_months"`
	Purpose      string    `json:"purpose"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status"`
	Terms        *Terms    `json:"terms,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ApplicationInput is the payload of a new loan application.
type ApplicationInput struct {
	Amount      float64 `json:"amount"`
	TermMonths  int     `json:"term_months"`
	Purpose     string  `json:"purpose"`
	Description string  `json:"description,omitempty"`
}

// Terms are the conditions a lender offers when accepting an application.
type Terms struct {
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	TermMonths   int     `json:"term_months"`
	Notes        string  `json:"notes,omitempty"`
}

// ApplicationFilter narrows ListApplications.
type ApplicationFilter struct {
	Status string
	Mine   bool
}

// BusinessProfile describes the borrower's business.
type BusinessProfile struct {
	BusinessName     string  `json:"business_name"`
	Industry         string  `json:"industry"`
	YearsInOperation int     `json:"years_in_operation"`
	AnnualRevenue    float64 `json:"annual_revenue"`
	Employees        int     `json:"employees"`
	Phone            string  `json:"phone,omitempty"`
	Address          string  `json:"address,omitempty"`
	Description      string  `json:"description,omitempty"`
}

// ExplainRequest asks for a plain-language explanation of one analysed value.
type ExplainRequest struct {
	Key   string   `json:"key"`
	Value any      `json:"value"`
	Path  []string `json:"path"`
}

// Analysis is the raw JSON document produced by contract analysis.
type Analysis = json.RawMessage
