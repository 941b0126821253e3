// Package loans implements the borrower and lender workflows of the
// marketplace: sign-in and registration, loan applications, business
// profiles and acceptance of applications on custom terms.
//
// Every submission is a validator.Record checked against the named rule set
// from rules.yaml before anything is sent to the backend. Checks spanning
// several fields, such as an offer not exceeding the requested amount, run
// afterwards as validator.Apply rules.
package loans
