package marketplace

import (
	"net/http"
	"net/url"
	"time"

	"github.com/microfin-hq/microfin/handler"
	"github.com/microfin-hq/microfin/pkg/jsontree"
	"github.com/microfin-hq/microfin/pkg/logger"
	"github.com/microfin-hq/microfin/pkg/session"
	"github.com/microfin-hq/microfin/svc/contracts"
)

func (m *Module) contractsIndex(ctx handler.Context, req formRequest) handler.Response {
	p := principal(ctx)
	params := ContractsParams{
		Page:     m.page(ctx, "Contract analysis"),
		Analyses: m.contracts.List(p),
		Form: FormParams{
			Action: "/contracts",
			Values: req.Record,
		},
	}
	if ctx.Request().Method != http.MethodPost {
		return handler.Templ(m.views.ContractsPage(params))
	}

	a, err := m.contracts.Analyze(ctx, p, req.Record)
	if errs, ok := fieldErrors(err); ok {
		params.Form.Errors = errs
		return invalid(m.views.ContractForm(params.Form), m.views.ContractsPage(params), TargetContractForm)
	}
	if err != nil {
		return fail(err)
	}
	return handler.Redirect("/contracts/" + a.ID.String())
}

func (m *Module) analysis(ctx handler.Context, req formRequest) handler.Response {
	a, err := m.contracts.Get(principal(ctx), req.ID)
	if err != nil {
		return fail(err)
	}
	id := a.ID.String()
	tree := a.View(
		jsontree.WithID("analysis-tree"),
		jsontree.WithLeafAction(func(p jsontree.Path) string {
			return "@post('/contracts/" + id + "/explain?path=" + url.QueryEscape(p.Pointer()) + "')"
		}),
	)
	return handler.Templ(m.views.AnalysisPage(AnalysisParams{
		Page:     m.page(ctx, a.Title),
		Analysis: a,
		Tree:     tree.Component(),
	}))
}

func (m *Module) analysisJSON(ctx handler.Context, req formRequest) handler.Response {
	a, err := m.contracts.Get(principal(ctx), req.ID)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(a.Raw, handler.WithJSONMeta(map[string]any{
		"id":         a.ID,
		"title":      a.Title,
		"provider":   a.Provider,
		"created_at": a.CreatedAt.Format(time.RFC3339),
	}))
}

func (m *Module) deleteAnalysis(ctx handler.Context, req formRequest) handler.Response {
	if err := m.contracts.Delete(ctx, principal(ctx), req.ID); err != nil {
		return fail(err)
	}
	m.flash(ctx, session.FlashInfo, "Analysis deleted")
	return handler.Redirect("/contracts")
}

// explain answers a leaf click in the analysis tree with an explanation
// patched into the page.
func (m *Module) explain(ctx handler.Context, req formRequest) handler.Response {
	if req.Path == "" {
		return fail(contracts.ErrAnalysisNotFound)
	}
	p := principal(ctx)
	if !handler.IsDataStar(ctx.Request()) {
		ex, err := m.contracts.Explain(ctx, p, req.ID, req.Path)
		if err != nil {
			return fail(err)
		}
		return handler.Templ(m.views.Explanation(ExplanationParams{Explanation: ex}), handler.WithTarget(TargetExplanation))
	}

	// Datastar clients get a busy signal while the provider answers.
	return handler.SSE(func(stream handler.StreamContext) error {
		if err := stream.SendSignal(SignalExplaining, true); err != nil {
			return err
		}
		ex, err := m.contracts.Explain(stream, p, req.ID, req.Path)
		params := ExplanationParams{Explanation: ex}
		if err != nil {
			err = mapError(err)
			if handler.StatusCode(err) >= http.StatusInternalServerError {
				m.log.ErrorContext(stream, "contract explanation failed",
					logger.AnalysisID(req.ID),
					logger.Path(req.Path),
					logger.Error(err),
				)
			}
			params.Error = handler.PublicMessage(err)
		}
		if err := stream.SendComponent(m.views.Explanation(params), handler.WithTarget(TargetExplanation)); err != nil {
			return err
		}
		return stream.SendSignal(SignalExplaining, false)
	})
}
