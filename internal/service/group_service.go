package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/cache"
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// defaultGroupCurrency applies to groups created without a currency.
const defaultGroupCurrency = "USD"

// GroupService implements the Connect GroupService
type GroupService struct {
	store storage.Store
	cache cache.Cache
}

// NewGroupService creates a new GroupService with the given storage backend.
// Mutations drop the group's cached plans from c.
func NewGroupService(store storage.Store, c cache.Cache) *GroupService {
	if c == nil {
		c = cache.NewMemory()
	}
	return &GroupService{store: store, cache: c}
}

// CreateGroup creates a new group.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)
	if req.Msg.Name == "" {
		return nil, invalidArgument("group name required")
	}
	currency, err := parseCurrency("default_currency", req.Msg.DefaultCurrency)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if currency == "" {
		currency = defaultGroupCurrency
	}

	group := &models.Group{
		Name:            req.Msg.Name,
		DefaultCurrency: currency,
		Members:         req.Msg.Members,
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group with its debts.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupId)

	in, err := loadInputs(ctx, s.store, req.Msg.GroupId, need{})
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	debts := make([]api.Debt, len(in.debts))
	for i, r := range in.debts {
		debts[i] = toAPIDebtRecord(r)
	}

	slog.Info("GetGroup successful", "group_id", in.group.ID, "name", in.group.Name)
	return connect.NewResponse(&api.GetGroupResponse{
		Group: toAPIGroup(in.group),
		Debts: debts,
	}), nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Group, len(groups))
	for i, g := range groups {
		out[i] = toAPIGroup(g)
	}

	slog.Info("ListGroups successful", "count", len(out))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// DeleteGroup deletes a group and everything recorded in it.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupId)

	if err := s.store.DeleteGroup(ctx, req.Msg.GroupId); err != nil {
		slog.Error("DeleteGroup failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}
	invalidate(ctx, s.cache, cache.GroupPrefixes(req.Msg.GroupId)...)

	slog.Info("Group deleted", "group_id", req.Msg.GroupId)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// RecordDebt records one debt. Unknown users join the group.
func (s *GroupService) RecordDebt(ctx context.Context, req *connect.Request[api.RecordDebtRequest]) (*connect.Response[api.RecordDebtResponse], error) {
	slog.Info("RecordDebt request received",
		"group_id", req.Msg.GroupId,
		"from", req.Msg.From,
		"to", req.Msg.To,
		"amount", req.Msg.Amount,
	)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, toConnectError(err)
	}
	amount, err := parseAmount("amount", req.Msg.Amount)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	currency, err := parseCurrency("currency", req.Msg.Currency)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if currency == "" {
		currency = group.DefaultCurrency
	}

	record := &models.DebtRecord{
		GroupID:     group.ID,
		From:        req.Msg.From,
		To:          req.Msg.To,
		Amount:      amount,
		Currency:    currency,
		Description: req.Msg.Description,
	}
	if err := record.Debt().Validate(0); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.AddGroupMembers(ctx, group.ID, []string{record.From, record.To}); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.AddDebt(ctx, record); err != nil {
		slog.Error("RecordDebt failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}
	invalidate(ctx, s.cache, cache.GroupPrefixes(group.ID)...)

	slog.Info("Debt recorded", "group_id", group.ID, "debt_id", record.ID)
	debt := toAPIDebtRecord(record)
	return connect.NewResponse(&api.RecordDebtResponse{Debt: &debt}), nil
}

// DeleteDebt removes one debt of a group.
func (s *GroupService) DeleteDebt(ctx context.Context, req *connect.Request[api.DeleteDebtRequest]) (*connect.Response[api.DeleteDebtResponse], error) {
	slog.Info("DeleteDebt request received", "group_id", req.Msg.GroupId, "debt_id", req.Msg.DebtId)

	if err := s.store.DeleteDebt(ctx, req.Msg.GroupId, req.Msg.DebtId); err != nil {
		slog.Error("DeleteDebt failed", "debt_id", req.Msg.DebtId, "error", err)
		return nil, toConnectError(err)
	}
	invalidate(ctx, s.cache, cache.GroupPrefixes(req.Msg.GroupId)...)

	return connect.NewResponse(&api.DeleteDebtResponse{}), nil
}

// RecordExpense splits an expense and records the resulting debts to the payer.
func (s *GroupService) RecordExpense(ctx context.Context, req *connect.Request[api.RecordExpenseRequest]) (*connect.Response[api.RecordExpenseResponse], error) {
	slog.Info("RecordExpense request received",
		"group_id", req.Msg.GroupId,
		"title", req.Msg.Title,
		"payer_id", req.Msg.PayerId,
		"total", req.Msg.Total,
		"items_count", len(req.Msg.Items),
		"participants_count", len(req.Msg.Participants),
	)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, toConnectError(err)
	}
	expense, err := toExpense(req.Msg, group.DefaultCurrency)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	debts, err := calculator.SplitExpense(expense)
	if err != nil {
		slog.Error("RecordExpense split failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	members := append([]string{expense.PayerID}, expense.Participants...)
	if err := s.store.AddGroupMembers(ctx, group.ID, members); err != nil {
		return nil, toConnectError(err)
	}

	out := make([]api.Debt, 0, len(debts))
	for _, d := range debts {
		record := &models.DebtRecord{
			GroupID:     group.ID,
			From:        d.From,
			To:          d.To,
			Amount:      d.Amount,
			Currency:    d.Currency,
			Description: expense.Title,
		}
		if err := s.store.AddDebt(ctx, record); err != nil {
			slog.Error("RecordExpense failed", "group_id", group.ID, "error", err)
			return nil, toConnectError(err)
		}
		out = append(out, toAPIDebtRecord(record))
	}
	invalidate(ctx, s.cache, cache.GroupPrefixes(group.ID)...)

	slog.Info("Expense recorded", "group_id", group.ID, "debts", len(out))
	return connect.NewResponse(&api.RecordExpenseResponse{Debts: out}), nil
}

// SetFriendship sets how strongly two members prefer paying each other.
func (s *GroupService) SetFriendship(ctx context.Context, req *connect.Request[api.SetFriendshipRequest]) (*connect.Response[api.SetFriendshipResponse], error) {
	slog.Info("SetFriendship request received",
		"group_id", req.Msg.GroupId,
		"user_a", req.Msg.UserA,
		"user_b", req.Msg.UserB,
		"strength", req.Msg.Strength,
	)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, toConnectError(err)
	}
	if req.Msg.UserA == req.Msg.UserB {
		return nil, invalidArgument("friendship needs two different users")
	}
	for _, u := range []string{req.Msg.UserA, req.Msg.UserB} {
		if !group.IsMember(u) {
			return nil, invalidArgument("user %q is not a member of group %s", u, group.ID)
		}
	}
	strength, err := decimal.NewFromString(req.Msg.Strength)
	if err != nil {
		return nil, invalidArgument("strength %q is not a decimal", req.Msg.Strength)
	}
	check := models.FriendshipStrengths{}
	check.Set(req.Msg.UserA, req.Msg.UserB, strength)
	if err := check.Validate(); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.SetFriendship(ctx, group.ID, req.Msg.UserA, req.Msg.UserB, strength); err != nil {
		slog.Error("SetFriendship failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}
	invalidate(ctx, s.cache, cache.GroupPrefixes(group.ID)...)

	return connect.NewResponse(&api.SetFriendshipResponse{}), nil
}

// toExpense parses an expense request; currency falls back to fallback.
func toExpense(req *api.RecordExpenseRequest, fallback string) (models.Expense, error) {
	total, err := parseAmount("total", req.Total)
	if err != nil {
		return models.Expense{}, err
	}
	subtotal := decimal.Zero
	if req.Subtotal != "" {
		if subtotal, err = parseAmount("subtotal", req.Subtotal); err != nil {
			return models.Expense{}, err
		}
	}
	currency, err := parseCurrency("currency", req.Currency)
	if err != nil {
		return models.Expense{}, err
	}
	if currency == "" {
		currency = fallback
	}

	items := make([]models.Item, len(req.Items))
	for i, item := range req.Items {
		amount, err := parseAmount("item amount", item.Amount)
		if err != nil {
			return models.Expense{}, err
		}
		items[i] = models.Item{
			Description:  item.Description,
			Amount:       amount,
			Participants: item.Participants,
		}
	}
	if len(items) > 0 && subtotal.IsZero() {
		for _, item := range items {
			subtotal = subtotal.Add(item.Amount)
		}
	}

	return models.Expense{
		Title:        req.Title,
		PayerID:      req.PayerId,
		Currency:     currency,
		Total:        total,
		Subtotal:     subtotal,
		Items:        items,
		Participants: req.Participants,
	}, nil
}
