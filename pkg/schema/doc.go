// Package schema validates the parameters of a catalog action before any request is built.
//
// A Schema maps parameter names to types. Besides plain strings and enums, the numeric
// types carry the bounds an action declares (strictly positive, percentage in (0, 100],
// minimum leverage). Numbers are normalized through shopspring/decimal so that the value
// checked is exactly the value later written into the URL.
//
// Basic usage:
//
//	s := schema.Schema{
//	    "token":  schema.String(),
//	    "amount": schema.Positive(),
//	    "side":   schema.Enum("long", "short"),
//	}
//
//	if err := schema.Validate(s, map[string]any{"token": "USDC", "amount": 100.0, "side": "long"}); err != nil {
//	    // err is an *AggregateError listing every failing field
//	}
//
// Types can also be parsed from their names, which is how custom action files declare them:
//
//	t, err := schema.ParseType("percentage")
package schema
