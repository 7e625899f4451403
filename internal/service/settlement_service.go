package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/cache"
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/events"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

var _ apiconnect.SettlementServiceHandler = (*SettlementService)(nil)

// Options are the server-wide settlement defaults.
type Options struct {
	// DefaultAlgorithm applies when neither the request nor the caller's
	// preference names one.
	DefaultAlgorithm string
	// WorkingCurrency applies when the request has none; empty picks the
	// dominant currency of each group.
	WorkingCurrency string
	CacheTTL        time.Duration
}

// SettlementService implements the Connect SettlementService
type SettlementService struct {
	store     storage.Store
	cache     cache.Cache
	publisher events.Publisher
	opts      Options
}

// NewSettlementService creates a new SettlementService. A nil cache or
// publisher is replaced by an in-process cache and a no-op publisher.
func NewSettlementService(store storage.Store, c cache.Cache, publisher events.Publisher, opts Options) *SettlementService {
	if c == nil {
		c = cache.NewMemory()
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if opts.DefaultAlgorithm == "" {
		opts.DefaultAlgorithm = string(calculator.MinCashFlow)
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	return &SettlementService{store: store, cache: c, publisher: publisher, opts: opts}
}

// CalculateSettlements computes the settlement plan of a group.
func (s *SettlementService) CalculateSettlements(ctx context.Context, req *connect.Request[api.CalculateSettlementsRequest]) (*connect.Response[api.CalculateSettlementsResponse], error) {
	groupID := req.Msg.GroupId
	slog.Info("CalculateSettlements request received",
		"group_id", groupID,
		"algorithm", req.Msg.Algorithm,
		"working_currency", req.Msg.WorkingCurrency,
	)
	if groupID == "" {
		return nil, invalidArgument("group_id required")
	}
	working, err := s.workingCurrency(req.Msg.WorkingCurrency)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	preferred, err := parseCurrency("preferred_currency", req.Msg.PreferredCurrency)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	// The preference is part of the cache key; the rest is read on a miss.
	pref, err := loadPreference(ctx, s.store, middleware.GetUserID(ctx))
	if err != nil {
		slog.Error("CalculateSettlements failed to load preference", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}
	algorithm := s.resolveAlgorithm(req.Msg.Algorithm, pref)
	if _, err := calculator.ParseAlgorithm(algorithm); err != nil {
		return nil, engineError("CalculateSettlements", groupID, err)
	}
	if preferred == "" && pref != nil {
		preferred = pref.Currency
	}

	key := cache.PlanKey(groupID, algorithm, working, preferred)
	var cached api.CalculateSettlementsResponse
	if s.lookup(ctx, key, &cached) {
		cached.Cached = true
		slog.Info("CalculateSettlements served from cache", "group_id", groupID, "algorithm", algorithm)
		return connect.NewResponse(&cached), nil
	}

	in, err := loadInputs(ctx, s.store, groupID, need{rates: true, friendships: true})
	if err != nil {
		slog.Error("CalculateSettlements failed to load inputs", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}
	g, err := in.graph()
	if err != nil {
		return nil, engineError("CalculateSettlements", groupID, err)
	}

	var opts []calculator.Option
	if working != "" {
		opts = append(opts, calculator.WithWorkingCurrency(working))
	}
	if preferred != "" {
		opts = append(opts, calculator.WithPreferredCurrency(preferred))
	}

	start := time.Now()
	plan, err := calculator.Calculate(g, in.rates, algorithm, in.friendships, opts...)
	if err != nil {
		return nil, engineError("CalculateSettlements", groupID, err)
	}
	metrics.PlansComputed.WithLabelValues(algorithm).Inc()
	metrics.PlanDuration.WithLabelValues(algorithm).Observe(time.Since(start).Seconds())
	metrics.PlanSettlements.Observe(float64(len(plan.Settlements)))

	resp := &api.CalculateSettlementsResponse{
		PlanId:          uuid.New().String(),
		GroupId:         groupID,
		Algorithm:       string(plan.Algorithm),
		WorkingCurrency: plan.WorkingCurrency,
		Settlements:     toAPISettlements(plan.Settlements),
	}
	s.remember(ctx, key, resp)
	s.publishPlan(ctx, resp)

	slog.Info("CalculateSettlements successful",
		"group_id", groupID,
		"algorithm", resp.Algorithm,
		"settlements", len(resp.Settlements),
	)
	return connect.NewResponse(resp), nil
}

// CompareAlgorithms runs every algorithm over a group and recommends one.
func (s *SettlementService) CompareAlgorithms(ctx context.Context, req *connect.Request[api.CompareAlgorithmsRequest]) (*connect.Response[api.CompareAlgorithmsResponse], error) {
	groupID := req.Msg.GroupId
	slog.Info("CompareAlgorithms request received", "group_id", groupID)
	if groupID == "" {
		return nil, invalidArgument("group_id required")
	}
	working, err := s.workingCurrency(req.Msg.WorkingCurrency)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	key := cache.CompareKey(groupID, working)
	var cached api.CompareAlgorithmsResponse
	if s.lookup(ctx, key, &cached) {
		cached.Cached = true
		return connect.NewResponse(&cached), nil
	}

	in, err := loadInputs(ctx, s.store, groupID, need{rates: true, friendships: true})
	if err != nil {
		slog.Error("CompareAlgorithms failed to load inputs", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}
	g, err := in.graph()
	if err != nil {
		return nil, engineError("CompareAlgorithms", groupID, err)
	}
	var opts []calculator.Option
	if working != "" {
		opts = append(opts, calculator.WithWorkingCurrency(working))
	}
	cmp, err := calculator.CompareAlgorithms(g, in.rates, in.friendships, opts...)
	if err != nil {
		return nil, engineError("CompareAlgorithms", groupID, err)
	}

	resp := &api.CompareAlgorithmsResponse{
		GroupId:         groupID,
		WorkingCurrency: cmp.WorkingCurrency,
		Recommended:     string(cmp.Recommended),
		Results:         make([]api.AlgorithmResult, 0, len(cmp.Results)),
	}
	for _, a := range calculator.Algorithms {
		resp.Results = append(resp.Results, toAPIResult(cmp.Results[a]))
	}
	s.remember(ctx, key, resp)

	slog.Info("CompareAlgorithms successful", "group_id", groupID, "recommended", resp.Recommended)
	return connect.NewResponse(resp), nil
}

// SimplifyDebts removes circular debts of a group. Stored debts are not changed.
func (s *SettlementService) SimplifyDebts(ctx context.Context, req *connect.Request[api.SimplifyDebtsRequest]) (*connect.Response[api.SimplifyDebtsResponse], error) {
	groupID := req.Msg.GroupId
	slog.Info("SimplifyDebts request received", "group_id", groupID)
	if groupID == "" {
		return nil, invalidArgument("group_id required")
	}

	in, err := loadInputs(ctx, s.store, groupID, need{})
	if err != nil {
		return nil, toConnectError(err)
	}
	g, err := in.graph()
	if err != nil {
		return nil, engineError("SimplifyDebts", groupID, err)
	}
	simplified, err := calculator.SimplifyCircularDebts(g)
	if err != nil {
		return nil, engineError("SimplifyDebts", groupID, err)
	}

	slog.Info("SimplifyDebts successful", "group_id", groupID, "before", g.Len(), "after", simplified.Len())
	return connect.NewResponse(&api.SimplifyDebtsResponse{
		GroupId:       groupID,
		Debts:         toAPIDebts(simplified.Debts()),
		OriginalCount: g.Len(),
	}), nil
}

// GetBalances returns the net balance of every group member.
func (s *SettlementService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	groupID := req.Msg.GroupId
	slog.Info("GetBalances request received", "group_id", groupID)
	if groupID == "" {
		return nil, invalidArgument("group_id required")
	}
	working, err := s.workingCurrency(req.Msg.WorkingCurrency)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	in, err := loadInputs(ctx, s.store, groupID, need{rates: true})
	if err != nil {
		return nil, toConnectError(err)
	}
	g, err := in.graph()
	if err != nil {
		return nil, engineError("GetBalances", groupID, err)
	}
	var opts []calculator.Option
	if working != "" {
		opts = append(opts, calculator.WithWorkingCurrency(working))
	}
	sheet, err := calculator.NetBalances(g, in.rates, opts...)
	if err != nil {
		return nil, engineError("GetBalances", groupID, err)
	}

	return connect.NewResponse(&api.GetBalancesResponse{
		GroupId:         groupID,
		WorkingCurrency: sheet.Currency,
		Balances:        toAPIBalances(sheet),
	}), nil
}

// PutExchangeRates stores rates and drops every cached plan.
func (s *SettlementService) PutExchangeRates(ctx context.Context, req *connect.Request[api.PutExchangeRatesRequest]) (*connect.Response[api.PutExchangeRatesResponse], error) {
	slog.Info("PutExchangeRates request received", "count", len(req.Msg.Rates))
	if len(req.Msg.Rates) == 0 {
		return nil, invalidArgument("rates required")
	}

	table := make(models.ExchangeRateTable, len(req.Msg.Rates))
	for key, value := range req.Msg.Rates {
		rate, err := decimal.NewFromString(value)
		if err != nil {
			return nil, invalidArgument("rate %s %q is not a decimal", key, value)
		}
		table[key] = rate
	}
	table, err := table.Validate()
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	for _, key := range table.Keys() {
		base, quote, _ := models.ParseRateKey(key)
		if err := s.store.PutExchangeRate(ctx, base, quote, table[key]); err != nil {
			slog.Error("PutExchangeRates failed", "pair", key, "error", err)
			return nil, toConnectError(err)
		}
	}
	invalidate(ctx, s.cache, cache.Prefix)

	slog.Info("PutExchangeRates successful", "count", len(table))
	return connect.NewResponse(&api.PutExchangeRatesResponse{Count: len(table)}), nil
}

// SetPreference stores the caller's default algorithm and payout currency.
func (s *SettlementService) SetPreference(ctx context.Context, req *connect.Request[api.SetPreferenceRequest]) (*connect.Response[api.SetPreferenceResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, toConnectError(errUnauthenticated)
	}
	slog.Info("SetPreference request received", "user_id", userID, "algorithm", req.Msg.Algorithm)

	if req.Msg.Algorithm != "" {
		if _, err := calculator.ParseAlgorithm(req.Msg.Algorithm); err != nil {
			return nil, toConnectError(err)
		}
	}
	currency, err := parseCurrency("currency", req.Msg.Currency)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	pref := &models.Preference{UserID: userID, Algorithm: req.Msg.Algorithm, Currency: currency}
	if err := s.store.SetPreference(ctx, pref); err != nil {
		slog.Error("SetPreference failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SetPreferenceResponse{Preference: toAPIPreference(pref)}), nil
}

// GetPreference returns the caller's preference, empty when none is stored.
func (s *SettlementService) GetPreference(ctx context.Context, req *connect.Request[api.GetPreferenceRequest]) (*connect.Response[api.GetPreferenceResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, toConnectError(errUnauthenticated)
	}
	pref, err := s.store.GetPreference(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		pref, err = &models.Preference{UserID: userID}, nil
	}
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetPreferenceResponse{Preference: toAPIPreference(pref)}), nil
}

func (s *SettlementService) workingCurrency(requested string) (string, error) {
	if requested == "" {
		requested = s.opts.WorkingCurrency
	}
	return parseCurrency("working_currency", requested)
}

// resolveAlgorithm picks the request's algorithm, then the caller's, then the default.
func (s *SettlementService) resolveAlgorithm(requested string, pref *models.Preference) string {
	if requested != "" {
		return requested
	}
	if pref != nil && pref.Algorithm != "" {
		return pref.Algorithm
	}
	return s.opts.DefaultAlgorithm
}

// lookup decodes a cached response into dst and reports a hit. Cache failures
// count as misses.
func (s *SettlementService) lookup(ctx context.Context, key string, dst any) bool {
	raw, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheRequests.WithLabelValues("error").Inc()
		slog.Warn("Plan cache lookup failed", "key", key, "error", err)
		return false
	case !ok:
		metrics.CacheRequests.WithLabelValues("miss").Inc()
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		metrics.CacheRequests.WithLabelValues("error").Inc()
		slog.Warn("Plan cache entry unreadable", "key", key, "error", err)
		return false
	}
	metrics.CacheRequests.WithLabelValues("hit").Inc()
	return true
}

func (s *SettlementService) remember(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err == nil {
		err = s.cache.Set(ctx, key, raw, s.opts.CacheTTL)
	}
	if err != nil {
		slog.Warn("Plan cache write failed", "key", key, "error", err)
	}
}

// publishPlan announces a freshly computed plan. Failures are logged only.
func (s *SettlementService) publishPlan(ctx context.Context, resp *api.CalculateSettlementsResponse) {
	payload := events.PlanComputed{
		PlanID:          resp.PlanId,
		Algorithm:       resp.Algorithm,
		WorkingCurrency: resp.WorkingCurrency,
		Settlements:     make([]events.PlanSettlement, len(resp.Settlements)),
	}
	for i, st := range resp.Settlements {
		payload.Settlements[i] = events.PlanSettlement{
			PayerID:    st.PayerId,
			ReceiverID: st.ReceiverId,
			Amount:     st.Amount,
			Currency:   st.Currency,
		}
	}

	env := events.NewEnvelope(events.PlanComputedSubject, resp.GroupId, payload)
	if err := s.publisher.Publish(ctx, events.PlanComputedSubject, env); err != nil {
		metrics.EventsPublished.WithLabelValues(events.PlanComputedSubject, "error").Inc()
		slog.Warn("Failed to publish plan event", "group_id", resp.GroupId, "plan_id", resp.PlanId, "error", err)
		return
	}
	metrics.EventsPublished.WithLabelValues(events.PlanComputedSubject, "ok").Inc()
}

// invalidate drops cached entries under every prefix. Failures are logged
// only; entries then expire with their TTL.
func invalidate(ctx context.Context, c cache.Cache, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := c.DeletePrefix(ctx, prefix); err != nil {
			slog.Warn("Cache invalidation failed", "prefix", prefix, "error", err)
		}
	}
}
