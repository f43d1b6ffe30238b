package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"fleetflow/internal/batch"
	"fleetflow/internal/stats"
)

// maskSecret shortens a credential for display so it never appears whole
// in logs or tables.
func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "********"
	}
	return secret[:6] + "…"
}

func authorize(req *http.Request, s *Session) {
	req.Header.Set("Authorization", "Bearer "+s.Account.Secret)
}

// Probe checks that the service is reachable through the account's
// egress path.
type Probe struct {
	Log *zap.Logger
}

func (p *Probe) Name() string { return "probe" }

func (p *Probe) Run(ctx context.Context, s *Session) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/status", nil)
	if err != nil {
		return false
	}
	authorize(req, s)
	resp, err := s.Client.Do(req)
	if err != nil {
		p.Log.Warn("Probe request failed", zap.Int("account", s.Account.Index), zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 400
}

// AccountStats fetches the account's balance and activity numbers and
// feeds them to the run's statistics collector.
type AccountStats struct {
	Collector *stats.Collector
	Log       *zap.Logger
}

func (t *AccountStats) Name() string { return "stats" }

func (t *AccountStats) Run(ctx context.Context, s *Session) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/account/stats", nil)
	if err != nil {
		return false
	}
	authorize(req, s)
	resp, err := s.Client.Do(req)
	if err != nil {
		t.Log.Warn("Stats request failed", zap.Int("account", s.Account.Index), zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return false
	}

	var body struct {
		Balance    float64 `json:"balance"`
		Operations int     `json:"operations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Log.Warn("Stats response malformed", zap.Int("account", s.Account.Index), zap.Error(err))
		return false
	}

	t.Collector.Record(stats.Row{
		AccountIndex: s.Account.Index,
		Label:        maskSecret(s.Account.Secret),
		Balance:      body.Balance,
		Operations:   body.Operations,
	})
	t.Log.Info("Account statistics collected",
		zap.Int("account", s.Account.Index),
		zap.Float64("balance", body.Balance),
		zap.Int("operations", body.Operations))
	return true
}

// Sweep posts a service action with a randomized amount drawn from the
// configured range.
type Sweep struct {
	Amount batch.Range
	Rand   *batch.Rand
	Log    *zap.Logger
}

func (t *Sweep) Name() string { return "sweep" }

func (t *Sweep) Run(ctx context.Context, s *Session) bool {
	amount := t.Rand.Between(t.Amount.Min, t.Amount.Max)
	payload, err := json.Marshal(map[string]int{"amount": amount})
	if err != nil {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/actions/sweep", bytes.NewReader(payload))
	if err != nil {
		return false
	}
	authorize(req, s)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.Client.Do(req)
	if err != nil {
		t.Log.Warn("Sweep request failed", zap.Int("account", s.Account.Index), zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		t.Log.Warn("Sweep rejected",
			zap.Int("account", s.Account.Index),
			zap.Int("status", resp.StatusCode))
		return false
	}
	t.Log.Info("Sweep completed", zap.Int("account", s.Account.Index), zap.Int("amount", amount))
	return true
}
