// Package invoker turns an ActionRequest into exactly one POST against the
// transaction-construction service, or into no request at all when a
// precondition fails.
//
// Preconditions are checked in order: the action is registered, a client key
// is configured, the account is set, and the parameters satisfy the action
// schema. Every outcome, including transport failures, is reported as a
// domain.ActionResult; Invoke never returns an error and never panics on
// remote input.
//
// The Invoker holds read-only configuration only and is safe for concurrent use.
// Observers (metrics, journals) subscribe through domain.LifecycleHooks.
package invoker
