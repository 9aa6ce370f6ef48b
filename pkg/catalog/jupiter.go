package catalog

import "github.com/aretw0/blinks/pkg/schema"

func jupiterActions() []Action {
	perp := func(name, sideDesc, description, query string, last Param, prompts ...string) Action {
		return Action{
			Name:        name,
			Protocol:    ProtocolJupiter,
			Description: description,
			Params: []Param{
				side(sideDesc),
				str("paying_token", "Token the position was opened with", "USDC"),
				str("perp_token", "Token market of the perpetual", "SOL"),
				last,
			},
			Template: "{base}/perps/{position_type}/{paying_token}-{perp_token}?" + query,
			Prompts:  prompts,
		}
	}

	return []Action{
		{
			Name:        "jupiter_swap",
			Protocol:    ProtocolJupiter,
			Description: "Swap one token for another on Jupiter.",
			Params: []Param{
				str("token_in", "Symbol of the token to sell (e.g. SOL)", "SOL"),
				str("token_out", "Symbol of the token to buy (e.g. DARK)", "DARK"),
				positive("amount", "Amount of token_in to swap", "0.1"),
			},
			Template:    "{base}/swap/{token_in}-{token_out}/{amount}?_bin={bin}",
			ViaBlinkAPI: true,
			Prompts: []string{
				"Swap 0.1 SOL for DARK tokens",
				"Exchange USDC for SOL using my wallet address",
			},
		},
		{
			Name:        "jupiter_perps",
			Protocol:    ProtocolJupiter,
			Description: "Open a perpetual position on a Jupiter market sized in USD.",
			Params: []Param{
				str("market", "Market identifier (e.g. SOL-PERP)", "SOL-PERP"),
				enum("side", "Position side", "long", "short"),
				positive("size", "Position size in USD", "100"),
				num("leverage", schema.AtLeast(1), "Leverage, at least 1 (5 means 5x)", "5"),
			},
			Template: "{base}/perps/{market}/{side}?size={size}&leverage={leverage}",
			Prompts: []string{
				"Open a 5x long position on SOL-PERP with 100 USD",
				"Create a short position on BTC-PERP with 10x leverage",
			},
		},
		{
			Name:        "jupiter_perps_open",
			Protocol:    ProtocolJupiter,
			Description: "Open a perps position on Jupiter Perps.",
			Params: []Param{
				side("Position to open"),
				str("paying_token", "Token used to open the position", "USDC"),
				str("perp_token", "Token market of the perpetual", "SOL"),
				positive("amount", "Amount to deposit", "25"),
				num("leverage", schema.GreaterThan(1), "Leverage multiplier, greater than 1", "10"),
			},
			Template: "{base}/perps/{position_type}/{paying_token}-{perp_token}?action=open&amount={amount}&leverage={leverage}",
			Prompts: []string{
				"Open a long position in SOL with 25 USDC at 10x leverage",
				"Create a short position in BTC with 100 USDC at 5x leverage",
			},
		},
		perp("jupiter_perps_close", "Position to close",
			"Close an existing perps position on Jupiter Perps.",
			"action=close&amount={amount}",
			positive("amount", "Amount to close", "25"),
			"Close a long position in SOL with 25 USDC",
			"Close a short position in BTC with 100 USDC",
		),
		perp("jupiter_perps_add_collateral", "Position to add collateral to",
			"Add collateral to an existing perps position on Jupiter Perps.",
			"action=add-collateral&amount={amount}",
			positive("amount", "Amount of collateral to add", "25"),
			"Add 25 USDC collateral to a long position in SOL",
			"Add 100 USDC collateral to a short position in BTC",
		),
		perp("jupiter_perps_remove_collateral", "Position to remove collateral from",
			"Remove collateral from an existing perps position on Jupiter Perps.",
			"action=remove-collateral&amount={amount}",
			positive("amount", "Amount of collateral to remove", "25"),
			"Remove 25 USDC collateral from a long position in SOL",
			"Remove 100 USDC collateral from a short position in BTC",
		),
		perp("jupiter_perps_take_profit", "Position to set take profit for",
			"Set a take profit price on an existing perps position on Jupiter Perps.",
			"action=tp&price={price}",
			positive("price", "Price at which the take profit executes", "136"),
			"Set take profit at $136 for a long position in SOL",
			"Create a take profit strategy at $50,000 for a short position in BTC",
		),
		{
			Name:        "jupiter_dao_vote",
			Protocol:    ProtocolJupiter,
			Description: "Vote on a Jupiter DAO proposal.",
			Params: []Param{
				str("proposal_id", "Proposal identifier", "123"),
				enum("vote_type", "Vote direction", "for", "against"),
			},
			Template: "{base}/dao/vote/{proposal_id}/{vote_type}",
			Prompts:  []string{"Vote for proposal 123 on Jupiter DAO"},
		},
		{
			Name:        "jupiter_dao_claim",
			Protocol:    ProtocolJupiter,
			Description: "Claim Active Staking Rewards (ASR) from the Jupiter DAO.",
			Template:    "{base}/dao/asr?action=claim",
			Prompts: []string{
				"Claim my ASR rewards from Jupiter DAO",
				"Claim my Jupiter DAO rewards",
			},
		},
		{
			Name:        "jupiter_dao_stake",
			Protocol:    ProtocolJupiter,
			Description: "Stake JUP in the Jupiter DAO.",
			Params: []Param{
				positive("amount", "Amount of JUP to stake", "25"),
			},
			Template: "{base}/dao?action=stake&amount={amount}",
			Prompts: []string{
				"Stake 25 JUP tokens in Jupiter DAO",
				"Stake 1000 JUP tokens in Jupiter DAO",
			},
		},
	}
}
