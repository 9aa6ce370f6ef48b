package catalog

import "github.com/aretw0/blinks/pkg/schema"

func driftActions() []Action {
	return []Action{
		{
			Name:        "drift_perps_open",
			Protocol:    ProtocolDrift,
			Description: "Open a perps position on the Drift perps DEX.",
			Params: []Param{
				str("perp_token", "Token market of the perpetual", "SOL"),
				side("Position to open"),
				str("paying_token", "Token used to open the position", "USDC"),
				positive("amount", "Amount to deposit", "25"),
				num("leverage", schema.Positive(), "Leverage multiplier", "10"),
			},
			Template: "{base}/perps/{perp_token}-PERP/open?positionType={position_type}&payingToken={paying_token}&amount={amount}&leverage={leverage}",
			Prompts: []string{
				"Open a long SOL position with 10x leverage using 25 USDC",
				"Open a short SOL position with 20x leverage using 100 USDC",
			},
		},
		{
			Name:        "drift_perps_close",
			Protocol:    ProtocolDrift,
			Description: "Close a perps position on the Drift perps DEX.",
			Params: []Param{
				str("perp_token", "Token market of the perpetual", "SOL"),
				positive("amount", "Amount to close", "25"),
			},
			Template: "{base}/perps/{perp_token}-PERP/close?amount={amount}",
			Prompts: []string{
				"Close my SOL position with 25 units",
				"Close my SOL position with 100 units",
			},
		},
		{
			Name:        "drift_vault_deposit",
			Protocol:    ProtocolDrift,
			Description: "Deposit into a Drift strategy or insurance fund vault.",
			Params: []Param{
				enum("vault_type", "Vault family", "strategy-vaults", "insurance-fund-vaults"),
				str("vault_id", "Vault identifier", "FbaXoNjvii97vwqM6m6rgdEarekTJ3ZAdsc1JH5Ym9Gb"),
				positive("amount", "Amount to deposit", "25"),
			},
			Template: "{base}/vaults/{vault_type}/{vault_id}?action=deposit&amount={amount}",
			Prompts: []string{
				"Deposit 25 tokens in Drift strategy vault",
				"Deposit 100 tokens in Drift insurance fund vault",
			},
		},
		{
			Name:        "drift_vault_withdraw",
			Protocol:    ProtocolDrift,
			Description: "Withdraw from a Drift vault.",
			Params: []Param{
				str("vault_id", "Vault identifier", "DxXdAyU3kCjnyggvHmY5nAwg5cRbbmdyX3npfDMjjMek"),
				positive("amount", "Amount to withdraw", "500"),
			},
			Template: "{base}/vaults/{vault_id}/withdraw/{amount}",
			Prompts:  []string{"Withdraw 500 USDC from Drift Vault"},
		},
	}
}
