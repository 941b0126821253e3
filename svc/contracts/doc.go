// Package contracts analyses loan contracts and explains individual values
// of the result.
//
// A Provider turns contract text into a JSON document. Two providers exist:
// BackendProvider forwards to the marketplace backend and Claude calls the
// Anthropic Messages API directly. The Service validates submissions, keeps
// analyses in a bounded in-memory store scoped to their owner, and answers
// leaf selections from the tree view with cached explanations:
//
//	svc := contracts.NewService(contracts.NewBackendProvider(client), cfg,
//		contracts.WithObserver(collector),
//	)
//	a, err := svc.Analyze(ctx, principal, validator.Record{"text": text})
//	...
//	ex, err := svc.Explain(ctx, principal, a.ID.String(), "/loan_terms/interest_rate")
//
// Analyses live only in process memory. The least recently used analysis is
// dropped once the store is full, together with its explanations.
package contracts
