package marketplace

import (
	"net/http"
	"strconv"

	"github.com/microfin-hq/microfin/handler"
	"github.com/microfin-hq/microfin/pkg/backend"
	"github.com/microfin-hq/microfin/pkg/session"
	"github.com/microfin-hq/microfin/pkg/validator"
)

func (m *Module) myApplications(ctx handler.Context, _ formRequest) handler.Response {
	apps, err := m.loans.MyApplications(ctx, principal(ctx))
	if err != nil {
		return fail(err)
	}
	return handler.Templ(m.views.ApplicationsPage(ApplicationsParams{
		Page:         m.page(ctx, "My applications"),
		Applications: apps,
	}))
}

func (m *Module) apply(ctx handler.Context, req formRequest) handler.Response {
	params := FormParams{
		Page:   m.page(ctx, "Apply for a loan"),
		Action: "/loans/apply",
		Values: req.Record,
	}
	if ctx.Request().Method != http.MethodPost {
		return handler.Templ(m.views.ApplyPage(params))
	}

	_, err := m.loans.Apply(ctx, principal(ctx), req.Record)
	if errs, ok := fieldErrors(err); ok {
		params.Errors = errs
		return invalid(m.views.ApplyForm(params), m.views.ApplyPage(params), TargetApplyForm)
	}
	if err != nil {
		return fail(err)
	}
	m.flash(ctx, session.FlashSuccess, "Your application was submitted")
	return handler.Redirect("/loans")
}

func (m *Module) profile(ctx handler.Context, req formRequest) handler.Response {
	p := principal(ctx)
	params := FormParams{
		Page:   m.page(ctx, "Business profile"),
		Action: "/profile",
		Values: req.Record,
	}
	if ctx.Request().Method != http.MethodPost {
		prof, err := m.loans.Profile(ctx, p)
		if err != nil {
			return fail(err)
		}
		params.Values = profileRecord(prof)
		return handler.Templ(m.views.ProfilePage(params))
	}

	_, err := m.loans.SaveProfile(ctx, p, req.Record)
	if errs, ok := fieldErrors(err); ok {
		params.Errors = errs
		return invalid(m.views.ProfileForm(params), m.views.ProfilePage(params), TargetProfileForm)
	}
	if err != nil {
		return fail(err)
	}
	m.flash(ctx, session.FlashSuccess, "Profile saved")
	return handler.Redirect("/profile")
}

func (m *Module) market(ctx handler.Context, _ formRequest) handler.Response {
	apps, err := m.loans.OpenApplications(ctx, principal(ctx))
	if err != nil {
		return fail(err)
	}
	return handler.Templ(m.views.MarketPage(ApplicationsParams{
		Page:         m.page(ctx, "Open applications"),
		Applications: apps,
	}))
}

func (m *Module) accept(ctx handler.Context, req formRequest) handler.Response {
	p := principal(ctx)
	app, err := m.loans.Application(ctx, p, req.ID)
	if err != nil {
		return fail(err)
	}
	params := AcceptParams{
		FormParams: FormParams{
			Page:   m.page(ctx, "Offer terms"),
			Action: "/market/" + app.ID + "/accept",
			Values: req.Record,
		},
		Application: app,
	}
	if ctx.Request().Method != http.MethodPost {
		params.Values = validator.Record{
			"amount":      strconv.FormatFloat(app.Amount, 'f', -1, 64),
			"term_months": strconv.Itoa(app.TermMonths),
		}
		return handler.Templ(m.views.AcceptPage(params))
	}

	_, err = m.loans.Accept(ctx, p, req.ID, req.Record)
	if errs, ok := fieldErrors(err); ok {
		params.Errors = errs
		return invalid(m.views.AcceptForm(params), m.views.AcceptPage(params), TargetAcceptForm)
	}
	if err != nil {
		return fail(err)
	}
	m.flash(ctx, session.FlashSuccess, "You accepted the application from "+app.BusinessName)
	return handler.Redirect("/market")
}

func profileRecord(p backend.BusinessProfile) validator.Record {
	rec := validator.Record{
		"business_name": p.BusinessName,
		"industry":      p.Industry,
		"phone":         p.Phone,
		"address":       p.Address,
		"description":   p.Description,
	}
	if p.YearsInOperation > 0 {
		rec["years_in_operation"] = strconv.Itoa(p.YearsInOperation)
	}
	if p.AnnualRevenue > 0 {
		rec["annual_revenue"] = strconv.FormatFloat(p.AnnualRevenue, 'f', -1, 64)
	}
	if p.Employees > 0 {
		rec["employees"] = strconv.Itoa(p.Employees)
	}
	return rec
}
