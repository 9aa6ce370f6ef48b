package catalog

// Lending markets and reserves: Kamino, Lulo, MarginFi and Save.
func lendingActions() []Action {
	kamino := func(name, verb, path string, prompts ...string) Action {
		return Action{
			Name:        name,
			Protocol:    ProtocolKamino,
			Description: verb + " Kamino lending market reserve. With amount_type=percentage the amount is a share in (0, 100].",
			Params: []Param{
				str("market", "Lending market address", "DxXdAyU3kCjnyggvHmY5nAwg5cRbbmdyX3npfDMjjMek"),
				str("reserve", "Reserve address", "Ga4rZytCpq1unD4DbEJ5bkHeUz9g3oh9AAFEi6vSauXp"),
				enum("amount_type", "Whether amount is a percentage or an absolute amount", "percentage", "amount"),
				positive("amount", "Percentage or absolute amount", "25"),
			},
			Template: "{base}/lending/reserve/{market}/{reserve}" + path + "/{amount_type}/{amount}",
			Check:    PercentageWhen("amount_type", "percentage", "amount"),
			Prompts:  prompts,
		}
	}
	reserve := func(name, verb string, prompts ...string) Action {
		return Action{
			Name:        "save_" + name,
			Protocol:    ProtocolSave,
			Description: verb + " Save protocol reserve.",
			Params: []Param{
				str("reserve_address", "Reserve address", "8PbodeaosQP19SjYFx855UMqWxH2HynZLdBXmsrbac36"),
				str("token_mint", "Token mint address", "So11111111111111111111111111111111111111112"),
				positive("amount", "Amount of the token", "25"),
			},
			Template: "{base}/reserves?action=" + name + "&reserveAddress={reserve_address}&tokenMint={token_mint}&amount={amount}",
			Prompts:  prompts,
		}
	}

	return []Action{
		kamino("kamino_deposit", "Deposit into a", "",
			"Deposit 25% into Kamino reserve",
			"Deposit into Kamino lending market",
		),
		kamino("kamino_withdraw", "Withdraw from a", "/withdraw",
			"Withdraw 25% from Kamino reserve",
			"Withdraw from Kamino lending market",
		),
		{
			Name:        "lulo_withdraw",
			Protocol:    ProtocolLulo,
			Description: "Withdraw funds from Lulo.",
			Params: []Param{
				str("symbol", "Symbol of the token to withdraw (e.g. USDC)", "USDC"),
				positive("amount", "Amount to withdraw", "100"),
			},
			Template: "{base}/api/actions/withdraw/{symbol}/{amount}",
			Prompts: []string{
				"Withdraw 100 USDC from Lulo",
				"Withdraw 1 SOL from my Lulo account",
			},
		},
		{
			Name:        "marginfi_supply",
			Protocol:    ProtocolMarginFi,
			Description: "Supply assets to MarginFi.",
			Params: []Param{
				str("token", "Symbol of the token to supply (e.g. USDC)", "USDC"),
				positive("amount", "Amount to supply", "100"),
			},
			Template: "{base}/supply/{token}/{amount}",
			Prompts: []string{
				"Supply 100 USDC to MarginFi",
				"Supply 1 SOL to MarginFi lending pool",
			},
		},
		{
			Name:        "marginfi_withdraw",
			Protocol:    ProtocolMarginFi,
			Description: "Withdraw assets from MarginFi.",
			Params: []Param{
				str("token", "Symbol of the token to withdraw (e.g. USDC)", "USDC"),
				positive("amount", "Amount to withdraw", "100"),
			},
			Template: "{base}/withdraw/{token}/{amount}",
			Prompts: []string{
				"Withdraw 100 USDC from MarginFi",
				"Withdraw 1 SOL from MarginFi lending pool",
			},
		},
		reserve("deposit", "Deposit into a",
			"Deposit 25 SOL into Save Protocol",
			"Deposit 100 tokens into Save Protocol reserve",
		),
		reserve("withdraw", "Withdraw from a",
			"Withdraw 25 SOL from Save Protocol",
			"Withdraw 100 tokens from Save Protocol reserve",
		),
	}
}
