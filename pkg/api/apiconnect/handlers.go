package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

const (
	// SettlementServiceName is the fully-qualified name of the SettlementService.
	SettlementServiceName = "settleup.v1.SettlementService"
	// GroupServiceName is the fully-qualified name of the GroupService.
	GroupServiceName = "settleup.v1.GroupService"
)

// Procedure paths, "/<service>/<method>".
const (
	SettlementServiceCalculateSettlementsProcedure = "/" + SettlementServiceName + "/CalculateSettlements"
	SettlementServiceCompareAlgorithmsProcedure    = "/" + SettlementServiceName + "/CompareAlgorithms"
	SettlementServiceSimplifyDebtsProcedure        = "/" + SettlementServiceName + "/SimplifyDebts"
	SettlementServiceGetBalancesProcedure          = "/" + SettlementServiceName + "/GetBalances"
	SettlementServicePutExchangeRatesProcedure     = "/" + SettlementServiceName + "/PutExchangeRates"
	SettlementServiceSetPreferenceProcedure        = "/" + SettlementServiceName + "/SetPreference"
	SettlementServiceGetPreferenceProcedure        = "/" + SettlementServiceName + "/GetPreference"
	GroupServiceCreateGroupProcedure               = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceGetGroupProcedure                  = "/" + GroupServiceName + "/GetGroup"
	GroupServiceListGroupsProcedure                = "/" + GroupServiceName + "/ListGroups"
	GroupServiceDeleteGroupProcedure               = "/" + GroupServiceName + "/DeleteGroup"
	GroupServiceRecordDebtProcedure                = "/" + GroupServiceName + "/RecordDebt"
	GroupServiceDeleteDebtProcedure                = "/" + GroupServiceName + "/DeleteDebt"
	GroupServiceRecordExpenseProcedure             = "/" + GroupServiceName + "/RecordExpense"
	GroupServiceSetFriendshipProcedure             = "/" + GroupServiceName + "/SetFriendship"
)

// SettlementServiceHandler is implemented by the server side of the SettlementService.
type SettlementServiceHandler interface {
	CalculateSettlements(context.Context, *connect.Request[api.CalculateSettlementsRequest]) (*connect.Response[api.CalculateSettlementsResponse], error)
	CompareAlgorithms(context.Context, *connect.Request[api.CompareAlgorithmsRequest]) (*connect.Response[api.CompareAlgorithmsResponse], error)
	SimplifyDebts(context.Context, *connect.Request[api.SimplifyDebtsRequest]) (*connect.Response[api.SimplifyDebtsResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	PutExchangeRates(context.Context, *connect.Request[api.PutExchangeRatesRequest]) (*connect.Response[api.PutExchangeRatesResponse], error)
	SetPreference(context.Context, *connect.Request[api.SetPreferenceRequest]) (*connect.Response[api.SetPreferenceResponse], error)
	GetPreference(context.Context, *connect.Request[api.GetPreferenceRequest]) (*connect.Response[api.GetPreferenceResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler serving every SettlementService procedure.
// It returns the path to mount the handler on.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	settlementServiceCalculateSettlements := connect.NewUnaryHandler(SettlementServiceCalculateSettlementsProcedure, svc.CalculateSettlements, opts...)
	settlementServiceCompareAlgorithms := connect.NewUnaryHandler(SettlementServiceCompareAlgorithmsProcedure, svc.CompareAlgorithms, opts...)
	settlementServiceSimplifyDebts := connect.NewUnaryHandler(SettlementServiceSimplifyDebtsProcedure, svc.SimplifyDebts, opts...)
	settlementServiceGetBalances := connect.NewUnaryHandler(SettlementServiceGetBalancesProcedure, svc.GetBalances, opts...)
	settlementServicePutExchangeRates := connect.NewUnaryHandler(SettlementServicePutExchangeRatesProcedure, svc.PutExchangeRates, opts...)
	settlementServiceSetPreference := connect.NewUnaryHandler(SettlementServiceSetPreferenceProcedure, svc.SetPreference, opts...)
	settlementServiceGetPreference := connect.NewUnaryHandler(SettlementServiceGetPreferenceProcedure, svc.GetPreference, opts...)
	return "/" + SettlementServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SettlementServiceCalculateSettlementsProcedure:
			settlementServiceCalculateSettlements.ServeHTTP(w, r)
		case SettlementServiceCompareAlgorithmsProcedure:
			settlementServiceCompareAlgorithms.ServeHTTP(w, r)
		case SettlementServiceSimplifyDebtsProcedure:
			settlementServiceSimplifyDebts.ServeHTTP(w, r)
		case SettlementServiceGetBalancesProcedure:
			settlementServiceGetBalances.ServeHTTP(w, r)
		case SettlementServicePutExchangeRatesProcedure:
			settlementServicePutExchangeRates.ServeHTTP(w, r)
		case SettlementServiceSetPreferenceProcedure:
			settlementServiceSetPreference.ServeHTTP(w, r)
		case SettlementServiceGetPreferenceProcedure:
			settlementServiceGetPreference.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// GroupServiceHandler is implemented by the server side of the GroupService.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	RecordDebt(context.Context, *connect.Request[api.RecordDebtRequest]) (*connect.Response[api.RecordDebtResponse], error)
	DeleteDebt(context.Context, *connect.Request[api.DeleteDebtRequest]) (*connect.Response[api.DeleteDebtResponse], error)
	RecordExpense(context.Context, *connect.Request[api.RecordExpenseRequest]) (*connect.Response[api.RecordExpenseResponse], error)
	SetFriendship(context.Context, *connect.Request[api.SetFriendshipRequest]) (*connect.Response[api.SetFriendshipResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler serving every GroupService procedure.
// It returns the path to mount the handler on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	groupServiceCreateGroup := connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...)
	groupServiceGetGroup := connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...)
	groupServiceListGroups := connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...)
	groupServiceDeleteGroup := connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...)
	groupServiceRecordDebt := connect.NewUnaryHandler(GroupServiceRecordDebtProcedure, svc.RecordDebt, opts...)
	groupServiceDeleteDebt := connect.NewUnaryHandler(GroupServiceDeleteDebtProcedure, svc.DeleteDebt, opts...)
	groupServiceRecordExpense := connect.NewUnaryHandler(GroupServiceRecordExpenseProcedure, svc.RecordExpense, opts...)
	groupServiceSetFriendship := connect.NewUnaryHandler(GroupServiceSetFriendshipProcedure, svc.SetFriendship, opts...)
	return "/" + GroupServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GroupServiceCreateGroupProcedure:
			groupServiceCreateGroup.ServeHTTP(w, r)
		case GroupServiceGetGroupProcedure:
			groupServiceGetGroup.ServeHTTP(w, r)
		case GroupServiceListGroupsProcedure:
			groupServiceListGroups.ServeHTTP(w, r)
		case GroupServiceDeleteGroupProcedure:
			groupServiceDeleteGroup.ServeHTTP(w, r)
		case GroupServiceRecordDebtProcedure:
			groupServiceRecordDebt.ServeHTTP(w, r)
		case GroupServiceDeleteDebtProcedure:
			groupServiceDeleteDebt.ServeHTTP(w, r)
		case GroupServiceRecordExpenseProcedure:
			groupServiceRecordExpense.ServeHTTP(w, r)
		case GroupServiceSetFriendshipProcedure:
			groupServiceSetFriendship.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
