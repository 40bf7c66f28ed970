// Package httputil holds the retry policy shared by the analyzer clients.
//
// Calls to a language model fail transiently more often than most APIs:
// gateways time out, servers answer 5xx, and some providers return 529
// when overloaded. [Retry] re-runs an operation with exponential backoff
// as long as it keeps failing with an error wrapped by [Retryable]:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    defer resp.Body.Close()
//	    if httputil.RetryableStatus(resp.StatusCode) {
//	        return httputil.Retryable(fmt.Errorf("status %d", resp.StatusCode))
//	    }
//	    return decode(resp)
//	})
//
// Everything else (bad credentials, rate limits, malformed output) is
// returned after the first attempt.
package httputil
