package marketplace

import (
	"github.com/a-h/templ"

	"github.com/microfin-hq/microfin/handler"
	"github.com/microfin-hq/microfin/pkg/backend"
	"github.com/microfin-hq/microfin/pkg/session"
	"github.com/microfin-hq/microfin/pkg/validator"
	"github.com/microfin-hq/microfin/svc/contracts"
)

// Element ids patched by datastar requests.
const (
	TargetLoginForm    = "#login-form"
	TargetRegisterForm = "#register-form"
	TargetApplyForm    = "#apply-form"
	TargetProfileForm  = "#profile-form"
	TargetAcceptForm   = "#accept-form"
	TargetContractForm = "#contract-form"
	TargetExplanation  = "#explanation"

	// SignalExplaining is true while an explanation is being streamed.
	SignalExplaining = "explaining"
)

// Page is the layout data every page receives.
type Page struct {
	Title     string
	Principal *session.Principal
	Flashes   []session.Flash
}

// FormParams contains data for rendering a form and the page around it.
type FormParams struct {
	Page
	Action string
	Values validator.Record
	Errors validator.ErrorMap
	Next   string
}

// ApplicationsParams contains data for the borrower and lender application lists.
type ApplicationsParams struct {
	Page
	Applications []backend.Application
}

// AcceptParams contains data for the lender's accept form.
type AcceptParams struct {
	FormParams
	Application backend.Application
}

// ContractsParams contains data for the contract analysis index.
type ContractsParams struct {
	Page
	Analyses []*contracts.Analysis
	Form     FormParams
}

// AnalysisParams contains data for one analysis. Tree is the rendered
// result with clickable leaves.
type AnalysisParams struct {
	Page
	Analysis *contracts.Analysis
	Tree     templ.Component
}

// ExplanationParams describes the explanation panel. Error is set instead of
// the explanation text when the provider could not answer.
type ExplanationParams struct {
	Explanation contracts.Explanation
	Error       string
}

// Views holds the components the module renders. Pages wrap forms; forms are
// patched on their own for datastar requests.
type Views struct {
	LoginPage    func(FormParams) templ.Component
	LoginForm    func(FormParams) templ.Component
	RegisterPage func(FormParams) templ.Component
	RegisterForm func(FormParams) templ.Component

	ApplicationsPage func(ApplicationsParams) templ.Component
	ApplyPage        func(FormParams) templ.Component
	ApplyForm        func(FormParams) templ.Component
	ProfilePage      func(FormParams) templ.Component
	ProfileForm      func(FormParams) templ.Component

	MarketPage func(ApplicationsParams) templ.Component
	AcceptPage func(AcceptParams) templ.Component
	AcceptForm func(AcceptParams) templ.Component

	ContractsPage func(ContractsParams) templ.Component
	ContractForm  func(FormParams) templ.Component
	AnalysisPage  func(AnalysisParams) templ.Component
	Explanation   func(ExplanationParams) templ.Component

	ErrorPage  func(handler.ErrorPageParams) templ.Component
	ErrorToast func(handler.ErrorToastParams) templ.Component
}

func (v *Views) withDefaults() *Views {
	d := DefaultViews()
	out := *v
	fill(&out.LoginPage, d.LoginPage)
	fill(&out.LoginForm, d.LoginForm)
	fill(&out.RegisterPage, d.RegisterPage)
	fill(&out.RegisterForm, d.RegisterForm)
	fill(&out.ApplicationsPage, d.ApplicationsPage)
	fill(&out.ApplyPage, d.ApplyPage)
	fill(&out.ApplyForm, d.ApplyForm)
	fill(&out.ProfilePage, d.ProfilePage)
	fill(&out.ProfileForm, d.ProfileForm)
	fill(&out.MarketPage, d.MarketPage)
	fill(&out.AcceptPage, d.AcceptPage)
	fill(&out.AcceptForm, d.AcceptForm)
	fill(&out.ContractsPage, d.ContractsPage)
	fill(&out.ContractForm, d.ContractForm)
	fill(&out.AnalysisPage, d.AnalysisPage)
	fill(&out.Explanation, d.Explanation)
	fill(&out.ErrorPage, d.ErrorPage)
	fill(&out.ErrorToast, d.ErrorToast)
	return &out
}

func fill[P any](dst *func(P) templ.Component, def func(P) templ.Component) {
	if *dst == nil {
		*dst = def
	}
}
