// Package catalog declares every supported DeFi action as data.
//
// Each Action pairs an ordered parameter list with a static URL template on a
// protocol's Blink host (https://<protocol>.dial.to). The invoker never branches on
// an action name: it validates parameters against Action.Schema, formats the template
// with BuildURL and posts to the result.
//
// Template placeholders:
//
//	{base}    the protocol base URL (overridable through Endpoints)
//	{bin}     the configured fallback identifier
//	{<param>} a declared parameter, path-escaped before '?' and query-escaped after
package catalog
