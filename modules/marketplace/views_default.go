package marketplace

import (
	"context"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/microfin-hq/microfin/handler"
	"github.com/microfin-hq/microfin/pkg/backend"
	"github.com/microfin-hq/microfin/pkg/jsontree"
	"github.com/microfin-hq/microfin/pkg/session"
)

// DatastarScript is the client bundle loaded by the default layout.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// DefaultViews returns plain, unstyled views. Applications usually replace
// them with their own templ components.
func DefaultViews() *Views {
	return &Views{
		LoginPage:    func(p FormParams) templ.Component { return layout(p.Page, loginForm(p)) },
		LoginForm:    loginForm,
		RegisterPage: func(p FormParams) templ.Component { return layout(p.Page, registerForm(p)) },
		RegisterForm: registerForm,

		ApplicationsPage: func(p ApplicationsParams) templ.Component {
			return layout(p.Page, applicationsTable(p.Applications, false))
		},
		ApplyPage:   func(p FormParams) templ.Component { return layout(p.Page, applyForm(p)) },
		ApplyForm:   applyForm,
		ProfilePage: func(p FormParams) templ.Component { return layout(p.Page, profileForm(p)) },
		ProfileForm: profileForm,

		MarketPage: func(p ApplicationsParams) templ.Component {
			return layout(p.Page, applicationsTable(p.Applications, true))
		},
		AcceptPage: func(p AcceptParams) templ.Component { return layout(p.Page, acceptForm(p)) },
		AcceptForm: acceptForm,

		ContractsPage: contractsPage,
		ContractForm:  contractForm,
		AnalysisPage:  analysisPage,
		Explanation:   explanation,

		ErrorPage:  errorPage,
		ErrorToast: errorToast,
	}
}

type writeFunc func(ctx context.Context, b *strings.Builder) error

func component(fn writeFunc) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		if err := fn(ctx, &b); err != nil {
			return err
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func text(b *strings.Builder, s string) {
	b.WriteString(templ.EscapeString(s))
}

func layout(p Page, body templ.Component) templ.Component {
	return component(func(ctx context.Context, b *strings.Builder) error {
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		text(b, p.Title)
		b.WriteString(` · Microfin</title><script type="module" src="` + DatastarScript + `"></script></head><body><nav>`)
		writeNav(b, p.Principal)
		b.WriteString(`</nav><div id="toast-container"></div>`)
		for _, f := range p.Flashes {
			b.WriteString(`<div class="flash flash-` + string(f.Kind) + `">`)
			text(b, f.Message)
			b.WriteString(`</div>`)
		}
		b.WriteString(`<main><h1>`)
		text(b, p.Title)
		b.WriteString(`</h1>`)
		if err := body.Render(ctx, b); err != nil {
			return err
		}
		b.WriteString(`</main></body></html>`)
		return nil
	})
}

func writeNav(b *strings.Builder, p *session.Principal) {
	if p == nil {
		b.WriteString(`<a href="/login">Sign in</a> <a href="/register">Register</a>`)
		return
	}
	if p.Can(session.RoleBorrower) {
		b.WriteString(`<a href="/loans">My loans</a> <a href="/loans/apply">Apply</a> <a href="/profile">Profile</a> `)
	}
	if p.Can(session.RoleLender) {
		b.WriteString(`<a href="/market">Market</a> `)
	}
	b.WriteString(`<a href="/contracts">Contracts</a> <form method="post" action="/logout" class="inline"><button type="submit">Sign out `)
	text(b, p.Name)
	b.WriteString(`</button></form>`)
}

type field struct {
	name, label, kind string
	options           []string
}

func writeForm(b *strings.Builder, id string, p FormParams, submit string, fields ...field) {
	b.WriteString(`<form method="post"`)
	b.WriteString(` id="` + strings.TrimPrefix(id, "#") + `" action="`)
	text(b, p.Action)
	b.WriteString(`" data-on-submit__prevent="@post('`)
	text(b, p.Action)
	b.WriteString(`', {contentType: 'form'})">`)
	if p.Next != "" {
		b.WriteString(`<input type="hidden" name="next" value="`)
		text(b, p.Next)
		b.WriteString(`">`)
	}
	for _, f := range fields {
		value := p.Values.String(f.name)
		b.WriteString(`<label>`)
		text(b, f.label)
		switch f.kind {
		case "textarea":
			b.WriteString(`<textarea name="` + f.name + `">`)
			text(b, value)
			b.WriteString(`</textarea>`)
		case "select":
			b.WriteString(`<select name="` + f.name + `"><option value="">Choose…</option>`)
			for _, o := range f.options {
				b.WriteString(`<option value="` + o + `"`)
				if o == value {
					b.WriteString(` selected`)
				}
				b.WriteString(`>`)
				text(b, jsontree.FormatKey(o))
				b.WriteString(`</option>`)
			}
			b.WriteString(`</select>`)
		default:
			b.WriteString(`<input type="` + f.kind + `" name="` + f.name + `" value="`)
			if f.kind != "password" {
				text(b, value)
			}
			b.WriteString(`">`)
		}
		b.WriteString(`</label>`)
		if msg := p.Errors.Get(f.name); msg != "" {
			b.WriteString(`<p class="field-error" data-field="` + f.name + `">`)
			text(b, msg)
			b.WriteString(`</p>`)
		}
	}
	b.WriteString(`<button type="submit">`)
	text(b, submit)
	b.WriteString(`</button></form>`)
}

func formComponent(id string, p FormParams, submit string, fields ...field) templ.Component {
	return component(func(_ context.Context, b *strings.Builder) error {
		writeForm(b, id, p, submit, fields...)
		return nil
	})
}

func loginForm(p FormParams) templ.Component {
	return formComponent(TargetLoginForm, p, "Sign in",
		field{name: "email", label: "Email", kind: "email"},
		field{name: "password", label: "Password", kind: "password"},
	)
}

func registerForm(p FormParams) templ.Component {
	return formComponent(TargetRegisterForm, p, "Create account",
		field{name: "name", label: "Name", kind: "text"},
		field{name: "email", label: "Email", kind: "email"},
		field{name: "password", label: "Password", kind: "password"},
		field{name: "password_confirm", label: "Confirm password", kind: "password"},
		field{name: "role", label: "I want to", kind: "select", options: []string{"borrower", "lender"}},
	)
}

func applyForm(p FormParams) templ.Component {
	return formComponent(TargetApplyForm, p, "Submit application",
		field{name: "amount", label: "Loan amount", kind: "number"},
		field{name: "term_months", label: "Term (months)", kind: "number"},
		field{name: "purpose", label: "Purpose", kind: "select",
			options: []string{"inventory", "equipment", "working_capital", "expansion", "other"}},
		field{name: "description", label: "Description", kind: "textarea"},
	)
}

func profileForm(p FormParams) templ.Component {
	return formComponent(TargetProfileForm, p, "Save profile",
		field{name: "business_name", label: "Business name", kind: "text"},
		field{name: "industry", label: "Industry", kind: "text"},
		field{name: "years_in_operation", label: "Years in operation", kind: "number"},
		field{name: "annual_revenue", label: "Annual revenue", kind: "number"},
		field{name: "employees", label: "Employees", kind: "number"},
		field{name: "phone", label: "Phone", kind: "tel"},
		field{name: "address", label: "Address", kind: "text"},
		field{name: "description", label: "About the business", kind: "textarea"},
	)
}

func acceptForm(p AcceptParams) templ.Component {
	return component(func(_ context.Context, b *strings.Builder) error {
		b.WriteString(`<section class="application"><h2>`)
		text(b, p.Application.BusinessName)
		b.WriteString(`</h2><p>`)
		text(b, p.Application.BorrowerName+" requests "+money(p.Application.Amount)+
			" over "+strconv.Itoa(p.Application.TermMonths)+" months for "+jsontree.FormatKey(p.Application.Purpose))
		b.WriteString(`</p></section>`)
		writeForm(b, TargetAcceptForm, p.FormParams, "Accept application",
			field{name: "amount", label: "Amount offered", kind: "number"},
			field{name: "interest_rate", label: "Interest rate (% per year)", kind: "number"},
			field{name: "term_months", label: "Term (months)", kind: "number"},
			field{name: "notes", label: "Notes for the borrower", kind: "textarea"},
		)
		return nil
	})
}

func applicationsTable(apps []backend.Application, market bool) templ.Component {
	return component(func(_ context.Context, b *strings.Builder) error {
		if len(apps) == 0 {
			b.WriteString(`<p class="empty">No applications yet.</p>`)
			return nil
		}
		b.WriteString(`<table class="applications"><thead><tr><th>Business</th><th>Amount</th><th>Term</th><th>Purpose</th><th>Status</th><th></th></tr></thead><tbody>`)
		for _, a := range apps {
			b.WriteString(`<tr><td>`)
			text(b, a.BusinessName)
			b.WriteString(`</td><td>`)
			text(b, money(a.Amount))
			b.WriteString(`</td><td>`)
			text(b, strconv.Itoa(a.TermMonths)+" months")
			b.WriteString(`</td><td>`)
			text(b, jsontree.FormatKey(a.Purpose))
			b.WriteString(`</td><td>`)
			text(b, jsontree.FormatKey(a.Status))
			b.WriteString(`</td><td>`)
			switch {
			case market && a.Status == backend.StatusPending:
				b.WriteString(`<a href="/market/`)
				text(b, a.ID)
				b.WriteString(`/accept">Review</a>`)
			case a.Terms != nil:
				text(b, jsontree.FormatLeaf(a.Terms.InterestRate)+" for "+strconv.Itoa(a.Terms.TermMonths)+" months")
			}
			b.WriteString(`</td></tr>`)
		}
		b.WriteString(`</tbody></table>`)
		return nil
	})
}

var printer = message.NewPrinter(language.English)

func money(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

func contractForm(p FormParams) templ.Component {
	return formComponent(TargetContractForm, p, "Analyse contract",
		field{name: "title", label: "Title", kind: "text"},
		field{name: "text", label: "Contract text", kind: "textarea"},
	)
}

func contractsPage(p ContractsParams) templ.Component {
	return layout(p.Page, component(func(ctx context.Context, b *strings.Builder) error {
		if err := contractForm(p.Form).Render(ctx, b); err != nil {
			return err
		}
		if len(p.Analyses) == 0 {
			return nil
		}
		b.WriteString(`<ul class="analyses">`)
		for _, a := range p.Analyses {
			b.WriteString(`<li><a href="/contracts/` + a.ID.String() + `">`)
			text(b, a.Title)
			b.WriteString(`</a> <time>`)
			text(b, a.CreatedAt.Format("2 Jan 2006 15:04"))
			b.WriteString(`</time></li>`)
		}
		b.WriteString(`</ul>`)
		return nil
	}))
}

func analysisPage(p AnalysisParams) templ.Component {
	return layout(p.Page, component(func(ctx context.Context, b *strings.Builder) error {
		b.WriteString(`<p class="hint">Select any value to see what it means.</p><div class="analysis" data-signals="{explaining: false}">`)
		if err := p.Tree.Render(ctx, b); err != nil {
			return err
		}
		b.WriteString(`<p class="loading" data-show="$explaining">Explaining…</p><aside id="explanation"></aside></div><p><a href="/contracts/` + p.Analysis.ID.String() + `/raw">Download JSON</a></p>`)
		b.WriteString(`<form method="post" action="/contracts/` + p.Analysis.ID.String() + `/delete"><button type="submit">Delete analysis</button></form>`)
		return nil
	}))
}

func explanation(p ExplanationParams) templ.Component {
	return component(func(_ context.Context, b *strings.Builder) error {
		ex := p.Explanation
		b.WriteString(`<aside id="explanation" data-path="`)
		text(b, ex.Event.Path.Pointer())
		b.WriteString(`"><h2>`)
		text(b, ex.Label)
		b.WriteString(`</h2><p class="value">`)
		text(b, ex.Display)
		b.WriteString(`</p>`)
		if p.Error != "" {
			b.WriteString(`<p class="error">`)
			text(b, p.Error)
			b.WriteString(`</p></aside>`)
			return nil
		}
		b.WriteString(`<p>`)
		text(b, ex.Text)
		b.WriteString(`</p></aside>`)
		return nil
	})
}

func errorPage(p handler.ErrorPageParams) templ.Component {
	title := "Something went wrong"
	if p.StatusCode < 500 {
		title = "We could not complete your request"
	}
	return layout(Page{Title: title}, component(func(_ context.Context, b *strings.Builder) error {
		b.WriteString(`<p class="error">`)
		text(b, p.Error)
		b.WriteString(`</p>`)
		if p.RequestID != "" {
			b.WriteString(`<p class="request-id">Reference: `)
			text(b, p.RequestID)
			b.WriteString(`</p>`)
		}
		if p.RetryURL != "" {
			b.WriteString(`<a href="`)
			text(b, p.RetryURL)
			b.WriteString(`">Try again</a>`)
		}
		return nil
	}))
}

func errorToast(p handler.ErrorToastParams) templ.Component {
	return component(func(_ context.Context, b *strings.Builder) error {
		b.WriteString(`<div class="toast toast-`)
		text(b, p.Type)
		b.WriteString(`" role="alert">`)
		text(b, p.Message)
		if len(p.Fields) > 0 {
			b.WriteString(`<ul>`)
			for _, name := range slices.Sorted(maps.Keys(p.Fields)) {
				b.WriteString(`<li>`)
				text(b, p.Fields[name])
				b.WriteString(`</li>`)
			}
			b.WriteString(`</ul>`)
		}
		b.WriteString(`</div>`)
		return nil
	})
}
