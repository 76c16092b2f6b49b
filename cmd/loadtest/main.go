package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"
)

// LoadTestConfig holds configuration for load testing
type LoadTestConfig struct {
	URL             string
	ConcurrentUsers int
	Concurrency     int
	RequestsPerUser int
	Timeout         time.Duration
	TestDuration    time.Duration
	ThinkTime       time.Duration
}

// maxInFlight is Concurrency, or one request per user when unset or larger than the user count
func (config LoadTestConfig) maxInFlight() int {
	if config.Concurrency <= 0 || config.Concurrency > config.ConcurrentUsers {
		return config.ConcurrentUsers
	}
	return config.Concurrency
}

func main() {
	var config LoadTestConfig

	flag.StringVar(&config.URL, "url", "http://localhost:3000/convert?from=cm&to=inch&value=10", "Target URL to test")
	flag.IntVar(&config.ConcurrentUsers, "users", 10, "Number of concurrent users")
	flag.IntVar(&config.Concurrency, "concurrency", 0, "Maximum requests in flight across all users (0 = one per user)")
	flag.IntVar(&config.RequestsPerUser, "requests", 100, "Number of requests per user")
	flag.DurationVar(&config.Timeout, "timeout", 30*time.Second, "Request timeout")
	flag.DurationVar(&config.TestDuration, "duration", 0, "Test duration (0 = run until all requests complete)")
	flag.DurationVar(&config.ThinkTime, "think", 100*time.Millisecond, "Think time between requests")
	flag.Parse()

	fmt.Printf("Starting load test...\n")
	fmt.Printf("URL: %s\n", config.URL)
	fmt.Printf("Concurrent Users: %d\n", config.ConcurrentUsers)
	fmt.Printf("Max In-Flight Requests: %d\n", config.maxInFlight())
	fmt.Printf("Requests per User: %d\n", config.RequestsPerUser)
	fmt.Printf("Timeout: %v\n", config.Timeout)
	fmt.Printf("Think Time: %v\n", config.ThinkTime)
	fmt.Printf("Test Duration: %v\n", config.TestDuration)
	fmt.Println()

	ctx := context.Background()
	if config.TestDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.TestDuration)
		defer cancel()
	}

	client := &http.Client{Timeout: config.Timeout}
	summary, err := runLoadTest(ctx, client, config)
	if err != nil {
		fmt.Printf("Load test aborted: %v\n", err)
		return
	}

	printSummary(summary)
}
