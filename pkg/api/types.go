package api

// Group is a set of members sharing expenses.
type Group struct {
	Id              string   `json:"id"`
	Name            string   `json:"name"`
	DefaultCurrency string   `json:"default_currency"`
	Members         []string `json:"members"`
	CreatedAt       int64    `json:"created_at"`
}

// Debt means From owes To Amount in Currency.
type Debt struct {
	Id          string `json:"id,omitempty"`
	From        string `json:"from"`
	To          string `json:"to"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

// Settlement is one payment of a plan. The Original* fields are set when the
// payment was moved out of the working currency.
type Settlement struct {
	PayerId          string `json:"payer_id"`
	ReceiverId       string `json:"receiver_id"`
	Amount           string `json:"amount"`
	Currency         string `json:"currency"`
	OriginalAmount   string `json:"original_amount,omitempty"`
	OriginalCurrency string `json:"original_currency,omitempty"`
	ExchangeRate     string `json:"exchange_rate,omitempty"`
}

// Balance is a user's net position; positive means the user is owed money.
type Balance struct {
	UserId string `json:"user_id"`
	Amount string `json:"amount"`
}

// Item is one line of an itemized expense.
type Item struct {
	Description  string   `json:"description"`
	Amount       string   `json:"amount"`
	Participants []string `json:"participants"`
}

// Preference is a caller's stored settlement defaults.
type Preference struct {
	UserId    string `json:"user_id"`
	Algorithm string `json:"algorithm,omitempty"`
	Currency  string `json:"currency,omitempty"`
	UpdatedAt int64  `json:"updated_at"`
}

// AlgorithmResult is one algorithm's plan in a comparison.
type AlgorithmResult struct {
	Algorithm             string       `json:"algorithm"`
	Settlements           []Settlement `json:"settlements"`
	TransactionCount      int          `json:"transaction_count"`
	TotalAmount           string       `json:"total_amount"`
	FriendshipUtilization string       `json:"friendship_utilization"`
}
