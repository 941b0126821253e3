// Package marketplace serves the microfinance marketplace web pages.
//
// Borrowers apply for loans and keep a business profile, lenders review open
// applications and accept them with their own terms, and every signed-in user
// can have a contract analysed and click through the result for plain
// language explanations. Pages render through the Views struct; forms are
// patched in place for datastar requests and re-rendered with status 422 for
// plain form posts.
//
// The module expects the session middleware to run in front of it:
//
//	mod := marketplace.New(loanSvc, contractSvc, sessions, marketplace.WithLogger(log))
//	r.Use(sessions.Middleware)
//	r.Mount("/", mod.Handle())
//
// POST /api/validate/{form} checks a record against one of the named forms
// and answers {"data": {"valid": bool, "errors": {...}}} without submitting it.
package marketplace
