package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:    "Roommates",
		Members: []string{"Alice", "Bob", "Charlie"},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	group := resp.Msg.Group
	if group == nil {
		t.Fatal("expected group in response")
	}
	if group.Id == "" {
		t.Error("expected non-empty group ID")
	}
	if group.Name != "Roommates" {
		t.Errorf("name: expected 'Roommates', got '%s'", group.Name)
	}
	if group.DefaultCurrency != "USD" {
		t.Errorf("default currency: expected USD, got %s", group.DefaultCurrency)
	}
	if len(group.Members) != 3 {
		t.Errorf("members: expected 3, got %d", len(group.Members))
	}
	if group.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}
}

func TestCreateGroupValidation(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name string
		req  *api.CreateGroupRequest
	}{
		{name: "missing name", req: &api.CreateGroupRequest{Members: []string{"Alice"}}},
		{name: "bad currency", req: &api.CreateGroupRequest{Name: "Trip", DefaultCurrency: "EURO"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.groups.CreateGroup(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestGetGroup(t *testing.T) {
	ts := setupTestServer(t)
	group := ts.createGroup(t, "Work Lunch", "Diana", "Eve")
	ts.recordDebt(t, group.Id, "Diana", "Eve", "12.5", "")

	resp, err := ts.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}

	if resp.Msg.Group.Name != "Work Lunch" {
		t.Errorf("name: expected 'Work Lunch', got '%s'", resp.Msg.Group.Name)
	}
	if len(resp.Msg.Debts) != 1 {
		t.Fatalf("debts: expected 1, got %d", len(resp.Msg.Debts))
	}
	debt := resp.Msg.Debts[0]
	if debt.Amount != "12.50" || debt.Currency != "USD" {
		t.Errorf("debt: expected 12.50 USD, got %s %s", debt.Amount, debt.Currency)
	}
}

func TestGetGroupNotFound(t *testing.T) {
	ts := setupTestServer(t)

	_, err := ts.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupId: "missing"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestListAndDeleteGroups(t *testing.T) {
	ts := setupTestServer(t)
	first := ts.createGroup(t, "First", "Alice")
	ts.createGroup(t, "Second", "Bob")

	resp, err := ts.groups.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 2 {
		t.Fatalf("groups: expected 2, got %d", len(resp.Msg.Groups))
	}

	if _, err := ts.groups.DeleteGroup(context.Background(), connect.NewRequest(&api.DeleteGroupRequest{GroupId: first.Id})); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	_, err = ts.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupId: first.Id}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = ts.groups.DeleteGroup(context.Background(), connect.NewRequest(&api.DeleteGroupRequest{GroupId: first.Id}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestRecordDebtAddsMembers(t *testing.T) {
	ts := setupTestServer(t)
	group := ts.createGroup(t, "Trip", "Alice")

	debt := ts.recordDebt(t, group.Id, "Bob", "Alice", "20", "eur")
	if debt.Id == "" {
		t.Error("expected non-empty debt ID")
	}
	if debt.Currency != "EUR" {
		t.Errorf("currency: expected EUR, got %s", debt.Currency)
	}

	resp, err := ts.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	members := resp.Msg.Group.Members
	if len(members) != 2 || members[0] != "Alice" || members[1] != "Bob" {
		t.Errorf("members: expected [Alice Bob], got %v", members)
	}
}

func TestRecordDebtValidation(t *testing.T) {
	ts := setupTestServer(t)
	group := ts.createGroup(t, "Trip", "Alice", "Bob")

	tests := []struct {
		name string
		req  *api.RecordDebtRequest
		code connect.Code
	}{
		{
			name: "self debt",
			req:  &api.RecordDebtRequest{GroupId: group.Id, From: "Alice", To: "Alice", Amount: "5"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "zero amount",
			req:  &api.RecordDebtRequest{GroupId: group.Id, From: "Alice", To: "Bob", Amount: "0"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "not a number",
			req:  &api.RecordDebtRequest{GroupId: group.Id, From: "Alice", To: "Bob", Amount: "ten"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "missing user",
			req:  &api.RecordDebtRequest{GroupId: group.Id, From: "Alice", Amount: "5"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "unknown group",
			req:  &api.RecordDebtRequest{GroupId: "missing", From: "Alice", To: "Bob", Amount: "5"},
			code: connect.CodeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.groups.RecordDebt(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, tt.code)
		})
	}
}

func TestDeleteDebt(t *testing.T) {
	ts := setupTestServer(t)
	group := ts.createGroup(t, "Trip", "Alice", "Bob")
	debt := ts.recordDebt(t, group.Id, "Alice", "Bob", "10", "")

	_, err := ts.groups.DeleteDebt(context.Background(), connect.NewRequest(&api.DeleteDebtRequest{GroupId: group.Id, DebtId: debt.Id}))
	if err != nil {
		t.Fatalf("DeleteDebt failed: %v", err)
	}

	resp, err := ts.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(resp.Msg.Debts) != 0 {
		t.Errorf("debts: expected 0, got %d", len(resp.Msg.Debts))
	}

	_, err = ts.groups.DeleteDebt(context.Background(), connect.NewRequest(&api.DeleteDebtRequest{GroupId: group.Id, DebtId: debt.Id}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestRecordExpense(t *testing.T) {
	ts := setupTestServer(t)
	group := ts.createGroup(t, "Dinner", "Alice")

	// $30 pizza shared by Alice and Bob, $20 salad for Bob, 10% tax
	resp, err := ts.groups.RecordExpense(context.Background(), connect.NewRequest(&api.RecordExpenseRequest{
		GroupId: group.Id,
		Title:   "Dinner",
		PayerId: "Alice",
		Total:   "55",
		Items: []api.Item{
			{Description: "Pizza", Amount: "30", Participants: []string{"Alice", "Bob"}},
			{Description: "Salad", Amount: "20", Participants: []string{"Bob"}},
		},
		Participants: []string{"Alice", "Bob"},
	}))
	if err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}

	if len(resp.Msg.Debts) != 1 {
		t.Fatalf("debts: expected 1, got %d", len(resp.Msg.Debts))
	}
	debt := resp.Msg.Debts[0]
	if debt.From != "Bob" || debt.To != "Alice" {
		t.Errorf("direction: expected Bob -> Alice, got %s -> %s", debt.From, debt.To)
	}
	if debt.Amount != "38.50" {
		t.Errorf("amount: expected 38.50, got %s", debt.Amount)
	}
	if debt.Description != "Dinner" {
		t.Errorf("description: expected Dinner, got %q", debt.Description)
	}

	group2, err := ts.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(group2.Msg.Group.Members) != 2 {
		t.Errorf("members: expected Bob to join, got %v", group2.Msg.Group.Members)
	}
}

func TestRecordExpenseEqualSplit(t *testing.T) {
	ts := setupTestServer(t)
	group := ts.createGroup(t, "Cab", "Alice", "Bob", "Carol")

	resp, err := ts.groups.RecordExpense(context.Background(), connect.NewRequest(&api.RecordExpenseRequest{
		GroupId:      group.Id,
		PayerId:      "Carol",
		Total:        "30",
		Participants: []string{"Alice", "Bob", "Carol"},
	}))
	if err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}
	if len(resp.Msg.Debts) != 2 {
		t.Fatalf("debts: expected 2, got %d", len(resp.Msg.Debts))
	}
	for _, d := range resp.Msg.Debts {
		if d.To != "Carol" || d.Amount != "10.00" {
			t.Errorf("expected 10.00 owed to Carol, got %s -> %s %s", d.From, d.To, d.Amount)
		}
	}
}

func TestSetFriendship(t *testing.T) {
	ts := setupTestServer(t)
	group := ts.createGroup(t, "Trip", "Alice", "Bob")

	_, err := ts.groups.SetFriendship(context.Background(), connect.NewRequest(&api.SetFriendshipRequest{
		GroupId: group.Id, UserA: "Alice", UserB: "Bob", Strength: "0.9",
	}))
	if err != nil {
		t.Fatalf("SetFriendship failed: %v", err)
	}

	tests := []struct {
		name string
		req  *api.SetFriendshipRequest
	}{
		{name: "same user", req: &api.SetFriendshipRequest{GroupId: group.Id, UserA: "Alice", UserB: "Alice", Strength: "0.5"}},
		{name: "non member", req: &api.SetFriendshipRequest{GroupId: group.Id, UserA: "Alice", UserB: "Zed", Strength: "0.5"}},
		{name: "too strong", req: &api.SetFriendshipRequest{GroupId: group.Id, UserA: "Alice", UserB: "Bob", Strength: "1.5"}},
		{name: "negative", req: &api.SetFriendshipRequest{GroupId: group.Id, UserA: "Alice", UserB: "Bob", Strength: "-0.1"}},
		{name: "not a number", req: &api.SetFriendshipRequest{GroupId: group.Id, UserA: "Alice", UserB: "Bob", Strength: "high"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.groups.SetFriendship(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}
