// Package scenario fetches customer personas and opening complaints from the
// external scenario provider. The engine never depends on this data for
// scoring; a scenario only labels the session and seeds the simulated caller.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/amrassal1991/MockCall/internal/logger"
)

var httpClient = &http.Client{Timeout: 12 * time.Second}

// Scenario is one training setup supplied by the provider.
type Scenario struct {
	ID               string `json:"id"`
	Label            string `json:"label"`
	Persona          string `json:"persona"`
	OpeningComplaint string `json:"opening_complaint"`
	CustomerMood     string `json:"customer_mood"`
}

type providerResponse struct {
	Code     int      `json:"Code"`
	Status   string   `json:"Status"`
	Data     Scenario `json:"Data"`
	Reason   string   `json:"Reason,omitempty"`
	UniqueId string   `json:"UniqueId,omitempty"`
}

// Fetch retrieves one scenario by id. Supports mock mode via env
// USE_MOCK_SCENARIOS=true for offline demos.
func Fetch(scenarioID string) (Scenario, error) {
	if os.Getenv("USE_MOCK_SCENARIOS") == "true" {
		return mockScenario(scenarioID), nil
	}
	log := logger.New().WithComponent("scenario")
	host := os.Getenv("SCENARIO_API_URL")
	if host == "" {
		return Scenario{}, errors.New("SCENARIO_API_URL not set")
	}

	u, err := url.Parse(strings.TrimRight(host, "/") + "/scenario")
	if err != nil {
		return Scenario{}, fmt.Errorf("bad SCENARIO_API_URL: %w", err)
	}
	q := u.Query()
	q.Set("id", scenarioID)
	u.RawQuery = q.Encode()

	req, _ := http.NewRequest("GET", u.String(), nil)
	var resp providerResponse
	if err := doJSON(req, &resp); err != nil {
		log.WithError(err).Error("scenario fetch failed")
		return Scenario{}, err
	}
	if resp.Code != 200 {
		return Scenario{}, fmt.Errorf("scenario provider error: code=%d reason=%s", resp.Code, resp.Reason)
	}
	log.WithField("scenario_id", resp.Data.ID).Info("scenario fetched")
	return resp.Data, nil
}

func doJSON(req *http.Request, target interface{}) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 12 * time.Second
	var lastErr error
	op := func() error {
		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %s", string(body))
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("client error: %s", string(body))
			return backoff.Permanent(lastErr)
		}
		if len(body) == 0 {
			lastErr = fmt.Errorf("empty body")
			return lastErr
		}
		if err := json.Unmarshal(body, target); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, string(body))
			return lastErr
		}
		return nil
	}
	if err := backoff.Retry(op, bo); err != nil {
		return lastErr
	}
	return nil
}

func mockScenario(id string) Scenario {
	if id == "" {
		id = "billing-dispute"
	}
	return Scenario{
		ID:               id,
		Label:            "Mock scenario: " + id,
		Persona:          "Long-time residential customer, mildly annoyed, short on time.",
		OpeningComplaint: "My bill this month is higher than what I was quoted and nobody can tell me why.",
		CustomerMood:     "neutral",
	}
}
