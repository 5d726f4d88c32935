package copytrade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"traderscout/internal/domain"

	"go.uber.org/zap"
)

// Client talks to a copy-trading venue's public leaderboard API. The
// venue exposes POST endpoints that take a JSON body and wrap their
// payload in a {code, message, data} envelope.
type Client struct {
	HttpClient *http.Client
	BaseUrl    string
	ApiKey     string
}

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// GetLeaderboard fetches the ranked snapshots for a window. limit <= 0
// requests the venue default page size.
func (c Client) GetLeaderboard(ctx context.Context, windowLabel string, limit int) ([]domain.LeaderboardSnapshot, error) {
	body := map[string]any{"windowLabel": windowLabel}
	if limit > 0 {
		body["limit"] = limit
	}

	var snapshots []domain.LeaderboardSnapshot
	if err := c.post(ctx, "/v1/public/leaderboard", body, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard for %q: %w", windowLabel, err)
	}
	return snapshots, nil
}

// Fills fetches an account's full fill history. Satisfies the engine's
// fill provider contract.
func (c Client) Fills(ctx context.Context, accountID string) ([]domain.Fill, error) {
	var fills []domain.Fill
	if err := c.post(ctx, "/v1/public/account/fills", map[string]any{"accountId": accountID}, &fills); err != nil {
		return nil, fmt.Errorf("failed to fetch fills for %s: %w", accountID, err)
	}
	return fills, nil
}

func (c Client) post(ctx context.Context, path string, body any, out any) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseUrl+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.ApiKey != "" {
		req.Header.Set("X-API-KEY", c.ApiKey)
	}

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode == 429 {
		zap.S().Debugw("hit venue rate limit, sleeping", "path", path)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(30 * time.Second):
		}
		return c.post(ctx, path, body, out)
	} else if response.StatusCode != 200 {
		var errJson envelope
		if err := json.Unmarshal(responseBytes, &errJson); err != nil {
			return fmt.Errorf("received status code %d and failed to read error: %w", response.StatusCode, err)
		}
		return fmt.Errorf("failed with status code %d: %s", response.StatusCode, errJson.Message)
	}

	var env envelope
	if err := json.Unmarshal(responseBytes, &env); err != nil {
		return err
	}
	if env.Code != "" && env.Code != "000000" {
		return fmt.Errorf("venue error %s: %s", env.Code, env.Message)
	}
	return json.Unmarshal(env.Data, out)
}
