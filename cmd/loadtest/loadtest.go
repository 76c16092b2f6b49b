package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// LoadTestResult holds the result of a single request
type LoadTestResult struct {
	UserID     int
	RequestID  int
	StatusCode int
	Duration   time.Duration
	Success    bool
	Error      error
}

// LoadTestSummary holds the summary of load test results
type LoadTestSummary struct {
	TotalRequests       int
	SuccessfulRequests  int
	FailedRequests      int
	TotalDuration       time.Duration
	AverageResponseTime time.Duration
	MinResponseTime     time.Duration
	MaxResponseTime     time.Duration
	RequestsPerSecond   float64
	ErrorRate           float64
	ResponseTime95th    time.Duration
	ResponseTime99th    time.Duration
}

// runLoadTest issues RequestsPerUser requests for each user. Users share a
// semaphore so at most maxInFlight requests run at once. It stops early when ctx is done.
func runLoadTest(ctx context.Context, client *http.Client, config LoadTestConfig) (LoadTestSummary, error) {
	if config.ConcurrentUsers < 1 {
		return LoadTestSummary{}, fmt.Errorf("users must be at least 1, got %d", config.ConcurrentUsers)
	}

	startTime := time.Now()
	inFlight := semaphore.NewWeighted(int64(config.maxInFlight()))

	var mu sync.Mutex
	results := make([]LoadTestResult, 0, config.ConcurrentUsers*config.RequestsPerUser)

	group := new(errgroup.Group)
	for userID := 0; userID < config.ConcurrentUsers; userID++ {
		uid := userID
		group.Go(func() error {
			for reqID := 0; reqID < config.RequestsPerUser; reqID++ {
				if err := inFlight.Acquire(ctx, 1); err != nil {
					return nil
				}
				result := makeRequest(ctx, client, config.URL, uid, reqID)
				inFlight.Release(1)

				mu.Lock()
				results = append(results, result)
				mu.Unlock()

				if config.ThinkTime > 0 {
					select {
					case <-ctx.Done():
						return nil
					case <-time.After(config.ThinkTime):
					}
				}
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return LoadTestSummary{}, err
	}

	return summarize(results, time.Since(startTime)), nil
}

func makeRequest(ctx context.Context, client *http.Client, url string, userID, requestID int) LoadTestResult {
	result := LoadTestResult{UserID: userID, RequestID: requestID}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Error = err
		return result
	}

	start := time.Now()
	response, err := client.Do(request)
	if err != nil {
		result.Duration = time.Since(start)
		result.Error = err
		return result
	}
	// Read response body to ensure complete request
	_, _ = io.Copy(io.Discard, response.Body)
	response.Body.Close()
	result.Duration = time.Since(start)

	result.StatusCode = response.StatusCode
	result.Success = response.StatusCode >= 200 && response.StatusCode < 300
	return result
}

func summarize(results []LoadTestResult, totalDuration time.Duration) LoadTestSummary {
	summary := LoadTestSummary{TotalDuration: totalDuration}
	if len(results) == 0 {
		return summary
	}

	responseTimes := make([]time.Duration, 0, len(results))
	var totalResponseTime time.Duration
	for _, result := range results {
		summary.TotalRequests++
		if result.Success {
			summary.SuccessfulRequests++
		} else {
			summary.FailedRequests++
		}
		responseTimes = append(responseTimes, result.Duration)
		totalResponseTime += result.Duration
	}

	sort.Slice(responseTimes, func(i, j int) bool { return responseTimes[i] < responseTimes[j] })

	summary.MinResponseTime = responseTimes[0]
	summary.MaxResponseTime = responseTimes[len(responseTimes)-1]
	summary.AverageResponseTime = totalResponseTime / time.Duration(len(responseTimes))
	summary.ResponseTime95th = percentile(responseTimes, 95)
	summary.ResponseTime99th = percentile(responseTimes, 99)

	summary.ErrorRate = float64(summary.FailedRequests) / float64(summary.TotalRequests) * 100
	if totalDuration > 0 {
		summary.RequestsPerSecond = float64(summary.TotalRequests) / totalDuration.Seconds()
	}
	return summary
}

// percentile expects sorted input
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)) * float64(p) / 100.0)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}

func printSummary(summary LoadTestSummary) {
	fmt.Println("=== Load Test Results ===")
	fmt.Printf("Total Requests: %d\n", summary.TotalRequests)
	if summary.TotalRequests == 0 {
		return
	}
	fmt.Printf("Successful Requests: %d (%.2f%%)\n", summary.SuccessfulRequests,
		float64(summary.SuccessfulRequests)/float64(summary.TotalRequests)*100)
	fmt.Printf("Failed Requests: %d (%.2f%%)\n", summary.FailedRequests, summary.ErrorRate)
	fmt.Printf("Total Duration: %v\n", summary.TotalDuration)
	fmt.Printf("Requests per Second: %.2f\n", summary.RequestsPerSecond)
	fmt.Printf("Average Response Time: %v\n", summary.AverageResponseTime)
	fmt.Printf("Min Response Time: %v\n", summary.MinResponseTime)
	fmt.Printf("Max Response Time: %v\n", summary.MaxResponseTime)
	fmt.Printf("95th Percentile Response Time: %v\n", summary.ResponseTime95th)
	fmt.Printf("99th Percentile Response Time: %v\n", summary.ResponseTime99th)
}
