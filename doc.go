/*
Package blinks exposes DeFi actions (swaps, perpetuals, lending, liquidity,
staking and DAO votes) as typed, validated calls against the Dialect Blinks
transaction-construction service.

Every action is a declarative descriptor: a protocol, a list of typed
parameters and a URL template. An invocation validates the parameters, formats
the URL, POSTs the caller's account to it and returns the unsigned transaction
payload, or a normalized error. Blinks never signs or submits transactions.

# Architecture

  - pkg/catalog: the built-in action descriptors and URL formatting.
  - pkg/registry: thread-safe action lookup, extendable from a YAML/JSON file.
  - pkg/invoker: the single-call executor with lifecycle hooks.
  - pkg/adapters/mcp, pkg/adapters/http: tool and REST surfaces.
  - pkg/observability: Prometheus metrics, log and journal hooks.

# Usage

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}

	client, err := blinks.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	res := client.Invoke(ctx, domain.ActionRequest{
		Action:  "marginfi_supply",
		Params:  map[string]any{"token": "USDC", "amount": 100},
		Account: "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
	})
	if !res.Success {
		log.Fatal(res.Error)
	}

The client key is read from BLINK_CLIENT_KEY. Without it every invocation fails
with a configuration error and no request is sent.
*/
package blinks
