package main

import (
	"context"
	"fmt"
	"math/rand"
	"meetsync/internal/models"
	"meetsync/internal/syncclient"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"
)

const (
	baseURL      = "http://127.0.0.1:8090"
	numWorkers   = 50
	numWatchers  = 200
	numMembers   = 40
	testDuration = 10 * time.Second
	daysInWindow = 28
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
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
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	client := syncclient.New(baseURL, syncclient.WithHTTPClient(httpClient))
	ctx := context.Background()

	fmt.Println("=== MeetSync Load Test ===")
	fmt.Printf("Writers: %d | Watchers: %d | Members: %d | Duration: %s\n\n", numWorkers, numWatchers, numMembers, testDuration)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	created, err := client.CreateGroup(ctx, &models.CreateGroupInput{
		Name:             "Load test",
		CreatedBy:        "loadtest",
		AvailabilityMode: models.ModeTimeSlots,
	})
	if err != nil {
		fmt.Printf("FAILED: create group: %s\n", err)
		return
	}
	groupID := created.Group.ID

	memberIDs := make([]string, 0, numMembers)
	for i := 0; i < numMembers; i++ {
		m, err := client.CreateMember(ctx, groupID, &models.CreateMemberInput{
			Name:  fmt.Sprintf("member-%d", i),
			Email: fmt.Sprintf("member-%d@loadtest.local", i),
		})
		if err != nil {
			fmt.Printf("FAILED: create member: %s\n", err)
			return
		}
		memberIDs = append(memberIDs, m.ID)
	}
	fmt.Printf("Group %s with %d members\n", groupID, len(memberIDs))

	// Watchers
	watchCtx, stopWatchers := context.WithCancel(ctx)
	var views, watchErrors atomic.Int64
	var watchWg sync.WaitGroup
	for i := 0; i < numWatchers; i++ {
		watchWg.Add(1)
		go func() {
			defer watchWg.Done()
			err := client.Watch(watchCtx, groupID, func(syncclient.View) { views.Add(1) })
			if err != nil && watchCtx.Err() == nil {
				watchErrors.Add(1)
			}
		}()
	}
	time.Sleep(time.Second)

	fmt.Println("\n--- Phase 1: Availability writes with live watchers ---")
	start := time.Now()
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doUpsert(ctx, client, groupID, memberIDs, rng)
	})
	writeWindow := time.Since(start)

	fmt.Println("\n--- Phase 2: Mixed reads (best dates, calendar, responses) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		switch r := rng.Float64(); {
		case r < 0.1:
			return doUpsert(ctx, client, groupID, memberIDs, rng)
		case r < 0.6:
			return doGet("GET best-dates", "/api/groups/"+groupID+"/best-dates")
		case r < 0.8:
			return doGet("GET calendar", "/api/groups/"+groupID+"/calendar")
		default:
			return doGet("GET responses", "/api/groups/"+groupID+"/responses")
		}
	})

	stopWatchers()
	watchWg.Wait()
	fmt.Printf("\nWatchers: %d views recomputed in %s | errors: %d\n", views.Load(), fmtDur(writeWindow), watchErrors.Load())
}

func doUpsert(ctx context.Context, client *syncclient.Client, groupID string, memberIDs []string, rng *rand.Rand) result {
	base := time.Now().AddDate(0, 0, 1)
	n := rng.Intn(6)
	dates := make([]string, 0, n)
	slots := make(map[string][]models.TimeSlot, n)
	for i := 0; i < n; i++ {
		d := base.AddDate(0, 0, rng.Intn(daysInWindow)).Format("2006-01-02")
		dates = append(dates, d)
		if rng.Intn(2) == 0 {
			slots[d] = []models.TimeSlot{models.SlotMorning}
		} else {
			slots[d] = []models.TimeSlot{models.SlotMorning, models.SlotEvening}
		}
	}

	start := time.Now()
	_, err := client.UpsertAvailability(ctx, groupID, &models.UpsertAvailabilityInput{
		MemberID:      memberIDs[rng.Intn(len(memberIDs))],
		SelectedDates: dates,
		TimeSlots:     slots,
	})
	return result{"POST availability", time.Since(start), err != nil}
}

func doGet(endpoint, path string) result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, lat, true}
	}
	resp.Body.Close()
	return result{endpoint, lat, resp.StatusCode != http.StatusOK}
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
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
		}(rand.Int63() + int64(i))
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

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
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
		return
	}
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
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
