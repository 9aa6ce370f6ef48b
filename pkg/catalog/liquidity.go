package catalog

import "github.com/aretw0/blinks/pkg/schema"

// Liquidity pools, concentrated positions, staking and token launches: Meteora and Raydium.
func liquidityActions() []Action {
	staking := func(verb string, prompts ...string) Action {
		return Action{
			Name:        "raydium_" + verb,
			Protocol:    ProtocolRaydium,
			Description: "Raydium staking: " + verb + " RAY.",
			Params: []Param{
				positive("amount", "Amount of RAY to "+verb, "25"),
			},
			Template: "{base}/staking?action=" + verb + "&amount={amount}",
			Prompts:  prompts,
		}
	}

	return []Action{
		{
			Name:        "meteora_add_liquidity",
			Protocol:    ProtocolMeteora,
			Description: "Add liquidity to a Meteora DLMM pool.",
			Params: []Param{
				str("dlmm_pool", "DLMM pool address", "5rCf1DM8LjKTw4YqhnoLcngyZYeNnQqztScTogYHAS6"),
				positive("amount", "Amount of the base mint to deposit", "5"),
			},
			Template: "{base}/api/actions/dlmm/{dlmm_pool}/add-liquidity/{amount}",
			Prompts: []string{
				"Add 5 tokens of liquidity to Meteora DLMM pool",
				"Add liquidity to Meteora pool 5rCf1DM8LjKTw4YqhnoLcngyZYeNnQqztScTogYHAS6",
			},
		},
		{
			Name:        "meteora_remove_liquidity",
			Protocol:    ProtocolMeteora,
			Description: "Remove a percentage of liquidity from a Meteora DLMM pool.",
			Params: []Param{
				str("dlmm_pool", "DLMM pool address", "5rCf1DM8LjKTw4YqhnoLcngyZYeNnQqztScTogYHAS6"),
				num("amount", schema.Percentage(), "Percentage of liquidity to remove (50 means 50%)", "50"),
			},
			Template: "{base}/api/actions/dlmm/{dlmm_pool}?action=remove-liquidity&amount={amount}",
			Prompts: []string{
				"Remove 50% of my liquidity from Meteora DLMM pool",
				"Remove liquidity from Meteora pool 5rCf1DM8LjKTw4YqhnoLcngyZYeNnQqztScTogYHAS6",
			},
		},
		{
			Name:        "meteora_launch_token",
			Protocol:    ProtocolMeteora,
			Description: "Launch a token on Meteora against a base token.",
			Params: []Param{
				str("token_mint", "Mint address of the token to launch", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"),
				str("base_token_mint", "Mint address of the base token (e.g. USDC)", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"),
				positive("initial_price", "Initial price of the token", "0.1"),
			},
			Template: "{base}/api/actions/launch-token?tokenMint={token_mint}&baseTokenMint={base_token_mint}&initialPrice={initial_price}",
			Prompts: []string{
				"Launch my token on Meteora with initial price of 0.1 USDC",
				"Create a new token pool on Meteora",
			},
		},
		{
			Name:        "raydium_add_liquidity",
			Protocol:    ProtocolRaydium,
			Description: "Add liquidity to a Raydium pool.",
			Params: []Param{
				str("pool_id", "Raydium pool address", "58oQChx4yWmvKdwLLZzBi4ChoCc2fqCUWBkwMihLYQo2"),
				positive("amount_a", "Amount of token A", "10"),
				positive("amount_b", "Amount of token B", "10"),
			},
			Template: "{base}/liquidity/add/{pool_id}?amountA={amount_a}&amountB={amount_b}",
			Prompts: []string{
				"Add liquidity to Raydium pool",
				"Add 100 USDC and 10 SOL to Raydium pool",
			},
		},
		{
			Name:        "raydium_create_position",
			Protocol:    ProtocolRaydium,
			Description: "Create a position in a Raydium concentrated liquidity pool. price_lower must be below price_upper.",
			Params: []Param{
				str("pool_id", "Raydium CLMM pool address", "58oQChx4yWmvKdwLLZzBi4ChoCc2fqCUWBkwMihLYQo2"),
				positive("price_lower", "Lower price bound", "10"),
				positive("price_upper", "Upper price bound", "20"),
				positive("amount_a", "Amount of token A", "10"),
				positive("amount_b", "Amount of token B", "10"),
			},
			Template: "{base}/clmm/create-position/{pool_id}?priceLower={price_lower}&priceUpper={price_upper}&amountA={amount_a}&amountB={amount_b}",
			Check:    LessThan("price_lower", "price_upper"),
			Prompts: []string{
				"Create a position in Raydium concentrated liquidity pool",
				"Create a position with price range 10-20 USDC for SOL-USDC pool",
			},
		},
		staking("stake", "Stake 25 RAY on Raydium", "Stake 100 RAY tokens"),
		staking("unstake", "Unstake 25 RAY from Raydium", "Unstake 100 RAY tokens"),
		{
			Name:        "raydium_claim",
			Protocol:    ProtocolRaydium,
			Description: "Claim Raydium staking rewards.",
			Template:    "{base}/staking?action=claim",
			Prompts: []string{
				"Claim my RAY staking rewards",
				"Claim rewards from Raydium staking",
			},
		},
	}
}
