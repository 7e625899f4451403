package apiconnect

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// SettlementServiceClient is a client for the SettlementService.
type SettlementServiceClient interface {
	CalculateSettlements(context.Context, *connect.Request[api.CalculateSettlementsRequest]) (*connect.Response[api.CalculateSettlementsResponse], error)
	CompareAlgorithms(context.Context, *connect.Request[api.CompareAlgorithmsRequest]) (*connect.Response[api.CompareAlgorithmsResponse], error)
	SimplifyDebts(context.Context, *connect.Request[api.SimplifyDebtsRequest]) (*connect.Response[api.SimplifyDebtsResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	PutExchangeRates(context.Context, *connect.Request[api.PutExchangeRatesRequest]) (*connect.Response[api.PutExchangeRatesResponse], error)
	SetPreference(context.Context, *connect.Request[api.SetPreferenceRequest]) (*connect.Response[api.SetPreferenceResponse], error)
	GetPreference(context.Context, *connect.Request[api.GetPreferenceRequest]) (*connect.Response[api.GetPreferenceResponse], error)
}

// NewSettlementServiceClient constructs a client for the SettlementService at baseURL
// (for example, https://settle.example.com).
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &settlementServiceClient{
		calculateSettlements: connect.NewClient[api.CalculateSettlementsRequest, api.CalculateSettlementsResponse](httpClient, baseURL+SettlementServiceCalculateSettlementsProcedure, opts...),
		compareAlgorithms:    connect.NewClient[api.CompareAlgorithmsRequest, api.CompareAlgorithmsResponse](httpClient, baseURL+SettlementServiceCompareAlgorithmsProcedure, opts...),
		simplifyDebts:        connect.NewClient[api.SimplifyDebtsRequest, api.SimplifyDebtsResponse](httpClient, baseURL+SettlementServiceSimplifyDebtsProcedure, opts...),
		getBalances:          connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+SettlementServiceGetBalancesProcedure, opts...),
		putExchangeRates:     connect.NewClient[api.PutExchangeRatesRequest, api.PutExchangeRatesResponse](httpClient, baseURL+SettlementServicePutExchangeRatesProcedure, opts...),
		setPreference:        connect.NewClient[api.SetPreferenceRequest, api.SetPreferenceResponse](httpClient, baseURL+SettlementServiceSetPreferenceProcedure, opts...),
		getPreference:        connect.NewClient[api.GetPreferenceRequest, api.GetPreferenceResponse](httpClient, baseURL+SettlementServiceGetPreferenceProcedure, opts...),
	}
}

type settlementServiceClient struct {
	calculateSettlements *connect.Client[api.CalculateSettlementsRequest, api.CalculateSettlementsResponse]
	compareAlgorithms    *connect.Client[api.CompareAlgorithmsRequest, api.CompareAlgorithmsResponse]
	simplifyDebts        *connect.Client[api.SimplifyDebtsRequest, api.SimplifyDebtsResponse]
	getBalances          *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	putExchangeRates     *connect.Client[api.PutExchangeRatesRequest, api.PutExchangeRatesResponse]
	setPreference        *connect.Client[api.SetPreferenceRequest, api.SetPreferenceResponse]
	getPreference        *connect.Client[api.GetPreferenceRequest, api.GetPreferenceResponse]
}

func (c *settlementServiceClient) CalculateSettlements(ctx context.Context, req *connect.Request[api.CalculateSettlementsRequest]) (*connect.Response[api.CalculateSettlementsResponse], error) {
	return c.calculateSettlements.CallUnary(ctx, req)
}

func (c *settlementServiceClient) CompareAlgorithms(ctx context.Context, req *connect.Request[api.CompareAlgorithmsRequest]) (*connect.Response[api.CompareAlgorithmsResponse], error) {
	return c.compareAlgorithms.CallUnary(ctx, req)
}

func (c *settlementServiceClient) SimplifyDebts(ctx context.Context, req *connect.Request[api.SimplifyDebtsRequest]) (*connect.Response[api.SimplifyDebtsResponse], error) {
	return c.simplifyDebts.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *settlementServiceClient) PutExchangeRates(ctx context.Context, req *connect.Request[api.PutExchangeRatesRequest]) (*connect.Response[api.PutExchangeRatesResponse], error) {
	return c.putExchangeRates.CallUnary(ctx, req)
}

func (c *settlementServiceClient) SetPreference(ctx context.Context, req *connect.Request[api.SetPreferenceRequest]) (*connect.Response[api.SetPreferenceResponse], error) {
	return c.setPreference.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetPreference(ctx context.Context, req *connect.Request[api.GetPreferenceRequest]) (*connect.Response[api.GetPreferenceResponse], error) {
	return c.getPreference.CallUnary(ctx, req)
}

// GroupServiceClient is a client for the GroupService.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	RecordDebt(context.Context, *connect.Request[api.RecordDebtRequest]) (*connect.Response[api.RecordDebtResponse], error)
	DeleteDebt(context.Context, *connect.Request[api.DeleteDebtRequest]) (*connect.Response[api.DeleteDebtResponse], error)
	RecordExpense(context.Context, *connect.Request[api.RecordExpenseRequest]) (*connect.Response[api.RecordExpenseResponse], error)
	SetFriendship(context.Context, *connect.Request[api.SetFriendshipRequest]) (*connect.Response[api.SetFriendshipResponse], error)
}

// NewGroupServiceClient constructs a client for the GroupService at baseURL
// (for example, https://settle.example.com).
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &groupServiceClient{
		createGroup:   connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:      connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:    connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		deleteGroup:   connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
		recordDebt:    connect.NewClient[api.RecordDebtRequest, api.RecordDebtResponse](httpClient, baseURL+GroupServiceRecordDebtProcedure, opts...),
		deleteDebt:    connect.NewClient[api.DeleteDebtRequest, api.DeleteDebtResponse](httpClient, baseURL+GroupServiceDeleteDebtProcedure, opts...),
		recordExpense: connect.NewClient[api.RecordExpenseRequest, api.RecordExpenseResponse](httpClient, baseURL+GroupServiceRecordExpenseProcedure, opts...),
		setFriendship: connect.NewClient[api.SetFriendshipRequest, api.SetFriendshipResponse](httpClient, baseURL+GroupServiceSetFriendshipProcedure, opts...),
	}
}

type groupServiceClient struct {
	createGroup   *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup      *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups    *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	deleteGroup   *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	recordDebt    *connect.Client[api.RecordDebtRequest, api.RecordDebtResponse]
	deleteDebt    *connect.Client[api.DeleteDebtRequest, api.DeleteDebtResponse]
	recordExpense *connect.Client[api.RecordExpenseRequest, api.RecordExpenseResponse]
	setFriendship *connect.Client[api.SetFriendshipRequest, api.SetFriendshipResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) RecordDebt(ctx context.Context, req *connect.Request[api.RecordDebtRequest]) (*connect.Response[api.RecordDebtResponse], error) {
	return c.recordDebt.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteDebt(ctx context.Context, req *connect.Request[api.DeleteDebtRequest]) (*connect.Response[api.DeleteDebtResponse], error) {
	return c.deleteDebt.CallUnary(ctx, req)
}

func (c *groupServiceClient) RecordExpense(ctx context.Context, req *connect.Request[api.RecordExpenseRequest]) (*connect.Response[api.RecordExpenseResponse], error) {
	return c.recordExpense.CallUnary(ctx, req)
}

func (c *groupServiceClient) SetFriendship(ctx context.Context, req *connect.Request[api.SetFriendshipRequest]) (*connect.Response[api.SetFriendshipResponse], error) {
	return c.setFriendship.CallUnary(ctx, req)
}
