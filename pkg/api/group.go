package api

type CreateGroupRequest struct {
	Name            string   `json:"name"`
	DefaultCurrency string   `json:"default_currency,omitempty"`
	Members         []string `json:"members"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupId string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
	Debts []Debt `json:"debts"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupId string `json:"group_id"`
}

type DeleteGroupResponse struct{}

type RecordDebtRequest struct {
	GroupId string `json:"group_id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Amount  string `json:"amount"`
	// Currency defaults to the group currency.
	Currency    string `json:"currency,omitempty"`
	Description string `json:"description,omitempty"`
}

type RecordDebtResponse struct {
	Debt *Debt `json:"debt"`
}

type DeleteDebtRequest struct {
	GroupId string `json:"group_id"`
	DebtId  string `json:"debt_id"`
}

type DeleteDebtResponse struct{}

// RecordExpenseRequest splits a paid expense into debts owed to the payer.
// Without items the total is split evenly among participants.
type RecordExpenseRequest struct {
	GroupId      string   `json:"group_id"`
	Title        string   `json:"title,omitempty"`
	PayerId      string   `json:"payer_id"`
	Currency     string   `json:"currency,omitempty"`
	Total        string   `json:"total"`
	Subtotal     string   `json:"subtotal,omitempty"`
	Items        []Item   `json:"items,omitempty"`
	Participants []string `json:"participants"`
}

type RecordExpenseResponse struct {
	Debts []Debt `json:"debts"`
}

type SetFriendshipRequest struct {
	GroupId  string `json:"group_id"`
	UserA    string `json:"user_a"`
	UserB    string `json:"user_b"`
	Strength string `json:"strength"`
}

type SetFriendshipResponse struct{}
