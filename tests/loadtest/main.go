// Command loadtest drives a running prayerd with concurrent GET traffic and
// prints per-endpoint latency percentiles.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

type place struct {
	lat, lng      float64
	city, country string
}

var places = []place{
	{21.4225, 39.8262, "Mecca", "Saudi Arabia"},
	{24.4672, 39.6112, "Medina", "Saudi Arabia"},
	{41.0082, 28.9784, "Istanbul", "Turkey"},
	{30.0444, 31.2357, "Cairo", "Egypt"},
	{51.5074, -0.1278, "London", "United Kingdom"},
	{40.7128, -74.0060, "New York", "United States"},
	{-6.2088, 106.8456, "Jakarta", "Indonesia"},
	{33.6844, 73.0479, "Islamabad", "Pakistan"},
}

var (
	baseURL    = flag.String("url", "http://127.0.0.1:8090", "prayerd base URL")
	numWorkers = flag.Int("workers", 50, "concurrent workers")
	phaseLen   = flag.Duration("duration", 10*time.Second, "length of each phase")
	numScopes  = flag.Int("scopes", 20, "distinct cache scopes")
)

var httpClient = &http.Client{
	Timeout: 15 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	flag.Parse()

	fmt.Println("=== prayerd load test ===")
	fmt.Printf("Target: %s | Workers: %d | Phase: %s | Scopes: %d\n\n", *baseURL, *numWorkers, *phaseLen, *numScopes)

	fmt.Print("Waiting for server... ")
	if !waitForServer() {
		fmt.Println("FAILED: server not responding")
		return
	}
	fmt.Println("OK")

	// Every scope starts cold, so the first phase is dominated by provider calls.
	fmt.Println("\n--- Phase 1: Warm-up (GET /times) ---")
	runPhase(func(rng *rand.Rand) result {
		return doTimes(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load ---")
	runPhase(func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doTimes(rng)
		case r < 0.60:
			return doCached(rng)
		case r < 0.80:
			return doCity(rng)
		default:
			return doLocation(rng)
		}
	})

	fmt.Println("\n--- Phase 3: Cache reads (GET /times/cached) ---")
	runPhase(func(rng *rand.Rand) result {
		return doCached(rng)
	})
}

func waitForServer() bool {
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return true
		}
		time.Sleep(200 * time.Millisecond)
	}
	return false
}

func runPhase(workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
				}
			}
		}(time.Now().UnixNano() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(*phaseLen)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, *phaseLen)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps, totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		fmt.Println("  no requests completed")
		return
	}
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func scope(rng *rand.Rand) string {
	return fmt.Sprintf("load-%d", rng.Intn(*numScopes))
}

// get counts any status in ok as a success.
func get(endpoint, target string, ok ...int) result {
	start := time.Now()
	resp, err := httpClient.Get(target)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	failed := true
	for _, code := range ok {
		if resp.StatusCode == code {
			failed = false
		}
	}
	return result{endpoint, resp.StatusCode, lat, failed}
}

func doTimes(rng *rand.Rand) result {
	p := places[rng.Intn(len(places))]
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.4f", p.lat+rng.Float64()*0.004))
	q.Set("lng", fmt.Sprintf("%.4f", p.lng+rng.Float64()*0.004))
	q.Set("scope", scope(rng))
	return get("GET /times", *baseURL+"/times?"+q.Encode(), http.StatusOK)
}

func doCached(rng *rand.Rand) result {
	return get("GET /times/cached", *baseURL+"/times/cached?scope="+scope(rng), http.StatusOK, http.StatusNotFound)
}

func doCity(rng *rand.Rand) result {
	p := places[rng.Intn(len(places))]
	q := url.Values{}
	q.Set("city", p.city)
	q.Set("country", p.country)
	q.Set("scope", scope(rng))
	return get("GET /times/city", *baseURL+"/times/city?"+q.Encode(), http.StatusOK)
}

func doLocation(rng *rand.Rand) result {
	p := places[rng.Intn(len(places))]
	target := fmt.Sprintf("%s/location?lat=%.4f&lng=%.4f", *baseURL, p.lat, p.lng)
	return get("GET /location", target, http.StatusOK)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
