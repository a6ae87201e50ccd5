package integration

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentLoginRateLimit fires 30 concurrent login attempts against
// the 10-per-minute auth limit. The Redis counter is a single atomic INCR,
// so exactly 10 attempts may pass regardless of interleaving.
func TestConcurrentLoginRateLimit(t *testing.T) {
	app := newTestApp(t)

	concurrency := 30
	var wg sync.WaitGroup
	var passed atomic.Int64
	var limited atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			body := fmt.Sprintf(`{"username":"ops.lead","password":"guess-%d"}`, idx)
			resp, err := http.Post(app.server.URL+"/api/v1/auth/login", "application/json", bytes.NewBufferString(body))
			if err != nil {
				return
			}
			defer resp.Body.Close()
			_, _ = io.ReadAll(resp.Body)

			switch resp.StatusCode {
			case http.StatusTooManyRequests:
				limited.Add(1)
			case http.StatusUnauthorized:
				passed.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(10), passed.Load(), "exactly the window limit should reach the auth service")
	assert.Equal(t, int64(20), limited.Load())
}

// TestConcurrentWalletNotes adds notes from many goroutines and checks none
// are lost.
func TestConcurrentWalletNotes(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	concurrency := 20
	var wg sync.WaitGroup
	var failures atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			body := fmt.Sprintf(`{"text":"checked transaction batch %d"}`, idx)
			req, err := http.NewRequest(http.MethodPost, app.server.URL+"/api/v1/wallets/0xabc123/notes", bytes.NewBufferString(body))
			if err != nil {
				failures.Add(1)
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				failures.Add(1)
				return
			}
			defer resp.Body.Close()
			_, _ = io.ReadAll(resp.Body)

			if resp.StatusCode != http.StatusOK {
				failures.Add(1)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, int64(0), failures.Load())

	wallet, err := app.walletRepo.GetByAddress(t.Context(), "0xabc123")
	require.NoError(t, err)
	assert.Len(t, wallet.AdminNotes, concurrency)
}
