package api

type CalculateSettlementsRequest struct {
	GroupId string `json:"group_id"`
	// Algorithm is minCashFlow, greedy or friendPreference. Empty uses the
	// caller's preference, then the server default.
	Algorithm         string `json:"algorithm,omitempty"`
	WorkingCurrency   string `json:"working_currency,omitempty"`
	PreferredCurrency string `json:"preferred_currency,omitempty"`
}

type CalculateSettlementsResponse struct {
	PlanId          string       `json:"plan_id"`
	GroupId         string       `json:"group_id"`
	Algorithm       string       `json:"algorithm"`
	WorkingCurrency string       `json:"working_currency"`
	Settlements     []Settlement `json:"settlements"`
	// Cached is true when the plan was served from the plan cache.
	Cached bool `json:"cached"`
}

type CompareAlgorithmsRequest struct {
	GroupId         string `json:"group_id"`
	WorkingCurrency string `json:"working_currency,omitempty"`
}

type CompareAlgorithmsResponse struct {
	GroupId         string            `json:"group_id"`
	WorkingCurrency string            `json:"working_currency"`
	Results         []AlgorithmResult `json:"results"`
	Recommended     string            `json:"recommended"`
	Cached          bool              `json:"cached"`
}

type SimplifyDebtsRequest struct {
	GroupId string `json:"group_id"`
}

type SimplifyDebtsResponse struct {
	GroupId       string `json:"group_id"`
	Debts         []Debt `json:"debts"`
	OriginalCount int    `json:"original_count"`
}

type GetBalancesRequest struct {
	GroupId         string `json:"group_id"`
	WorkingCurrency string `json:"working_currency,omitempty"`
}

type GetBalancesResponse struct {
	GroupId         string    `json:"group_id"`
	WorkingCurrency string    `json:"working_currency"`
	Balances        []Balance `json:"balances"`
}

type PutExchangeRatesRequest struct {
	// Rates maps "BASE_QUOTE" to a decimal rate: quote = base * rate.
	Rates map[string]string `json:"rates"`
}

type PutExchangeRatesResponse struct {
	Count int `json:"count"`
}

type SetPreferenceRequest struct {
	Algorithm string `json:"algorithm,omitempty"`
	Currency  string `json:"currency,omitempty"`
}

type SetPreferenceResponse struct {
	Preference *Preference `json:"preference"`
}

type GetPreferenceRequest struct{}

type GetPreferenceResponse struct {
	Preference *Preference `json:"preference"`
}
