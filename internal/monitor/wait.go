package monitor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// WaitReady polls the gateway until it answers anything below 500, giving a
// freshly deployed stack time to come up before the checks start.
func WaitReady(ctx context.Context, baseURL string, maxWait time.Duration) error {
	client := &http.Client{Timeout: 5 * time.Second}
	backoff := retry.WithMaxDuration(maxWait, retry.NewFibonacci(500*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/admin/orders", nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		resp.Body.Close()
		if resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("gateway not ready: status %d", resp.StatusCode))
		}
		return nil
	})
}
