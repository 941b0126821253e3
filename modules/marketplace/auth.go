package marketplace

import (
	"net/http"

	"github.com/microfin-hq/microfin/handler"
	"github.com/microfin-hq/microfin/pkg/logger"
	"github.com/microfin-hq/microfin/pkg/session"
)

func (m *Module) login(ctx handler.Context, req formRequest) handler.Response {
	next := req.Next
	if next == "" {
		next = req.Record.String("next")
	}
	params := FormParams{
		Page:   m.page(ctx, "Sign in"),
		Action: "/login",
		Values: withoutSecrets(req.Record),
		Next:   next,
	}
	if ctx.Request().Method != http.MethodPost {
		return handler.Templ(m.views.LoginPage(params))
	}

	p, err := m.loans.Login(ctx, req.Record)
	if errs, ok := fieldErrors(err); ok {
		params.Errors = errs
		return invalid(m.views.LoginForm(params), m.views.LoginPage(params), TargetLoginForm)
	}
	if err != nil {
		return fail(err)
	}
	return m.signIn(ctx, p, next, "Welcome back, "+p.Name)
}

func (m *Module) register(ctx handler.Context, req formRequest) handler.Response {
	params := FormParams{
		Page:   m.page(ctx, "Create an account"),
		Action: "/register",
		Values: withoutSecrets(req.Record),
	}
	if ctx.Request().Method != http.MethodPost {
		return handler.Templ(m.views.RegisterPage(params))
	}

	p, err := m.loans.Register(ctx, req.Record)
	if errs, ok := fieldErrors(err); ok {
		params.Errors = errs
		return invalid(m.views.RegisterForm(params), m.views.RegisterPage(params), TargetRegisterForm)
	}
	if err != nil {
		return fail(err)
	}
	return m.signIn(ctx, p, "", "Your account is ready")
}

func (m *Module) signIn(ctx handler.Context, p session.Principal, next, greeting string) handler.Response {
	_, err := m.sessions.SignIn(ctx, ctx.ResponseWriter(), ctx.Request(), p,
		session.Flash{Kind: session.FlashSuccess, Message: greeting},
	)
	if err != nil {
		return fail(err)
	}
	if next == "" || !handler.IsSafeRedirect(next, ctx.Request()) {
		next = homePath(p)
	}
	return handler.Redirect(next)
}

func (m *Module) logout(ctx handler.Context, _ formRequest) handler.Response {
	p, _ := ctx.Principal()
	if err := m.sessions.SignOut(ctx, ctx.ResponseWriter(), ctx.Request()); err != nil {
		return fail(err)
	}
	if p.UserID != "" {
		m.log.InfoContext(ctx, "user signed out", logger.UserID(p.UserID))
	}
	return handler.Redirect("/login")
}
