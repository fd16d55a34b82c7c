package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

var (
	requestCount  int64
	successCount  int64
	failCount     int64
	totalLatency  int64 // nanoseconds
	latencies     []int64
	latenciesLock sync.Mutex
)

var materials = []string{"DRYWALL", "CARPET", "CONCRETE", "HARDWOOD", "INSULATION"}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run tools/loadtest.go <url> [threads] [connections] [duration]")
		fmt.Println("Example: go run tools/loadtest.go http://localhost:8080/readings 4 100 30s")
		os.Exit(1)
	}

	url := os.Args[1]
	threads := 4
	connections := 100
	duration := 30 * time.Second

	if len(os.Args) > 2 {
		fmt.Sscanf(os.Args[2], "%d", &threads)
	}
	if len(os.Args) > 3 {
		fmt.Sscanf(os.Args[3], "%d", &connections)
	}
	if len(os.Args) > 4 {
		d, err := time.ParseDuration(os.Args[4])
		if err == nil {
			duration = d
		}
	}

	fmt.Printf("Load Test Configuration:\n")
	fmt.Printf("  URL: %s\n", url)
	fmt.Printf("  Threads: %d\n", threads)
	fmt.Printf("  Connections: %d\n", connections)
	fmt.Printf("  Duration: %v\n\n", duration)

	latencies = make([]int64, 0, 10000)
	startTime := time.Now()
	endTime := startTime.Add(duration)

	var wg sync.WaitGroup
	workersPerThread := connections / threads
	if workersPerThread == 0 {
		workersPerThread = 1
	}

	for t := 0; t < threads; t++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(url, workersPerThread, endTime)
		}()
	}

	wg.Wait()
	totalDuration := time.Since(startTime)

	printReport(totalDuration)
}

func worker(url string, connections int, endTime time.Time) {
	var wg sync.WaitGroup

	for c := 0; c < connections; c++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			client := &http.Client{Timeout: 10 * time.Second}
			readingID := fmt.Sprintf("reading-%04d", id)

			for time.Now().Before(endTime) {
				payload := map[string]interface{}{
					"reading_id":     readingID,
					"material_type":  materials[rand.Intn(len(materials))],
					"equipment_type": "MOISTURE_METER",
					"value": map[string]interface{}{
						"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
						"value":      10 + rand.Float64()*40,
						"confidence": 0.8 + rand.Float64()*0.2,
						"environmental_conditions": map[string]float64{
							"temperature": 18 + rand.Float64()*10,
							"humidity":    40 + rand.Float64()*30,
						},
					},
				}

				body, _ := json.Marshal(payload)

				reqStart := time.Now()
				resp, err := client.Post(url, "application/json", bytes.NewReader(body))
				latency := time.Since(reqStart).Nanoseconds()

				atomic.AddInt64(&requestCount, 1)
				atomic.AddInt64(&totalLatency, latency)

				latenciesLock.Lock()
				latencies = append(latencies, latency)
				latenciesLock.Unlock()

				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}

				if resp.StatusCode >= 200 && resp.StatusCode < 300 {
					atomic.AddInt64(&successCount, 1)
				} else {
					atomic.AddInt64(&failCount, 1)
				}
				resp.Body.Close()
			}
		}(c)
	}

	wg.Wait()
}

func printReport(totalDuration time.Duration) {
	total := atomic.LoadInt64(&requestCount)
	if total == 0 {
		fmt.Println("No requests were made")
		return
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	avg := time.Duration(atomic.LoadInt64(&totalLatency) / total)
	p50 := time.Duration(latencies[len(latencies)*50/100])
	p95 := time.Duration(latencies[len(latencies)*95/100])
	p99 := time.Duration(latencies[len(latencies)*99/100])

	fmt.Printf("Results:\n")
	fmt.Printf("  Total requests: %d\n", total)
	fmt.Printf("  Success: %d\n", atomic.LoadInt64(&successCount))
	fmt.Printf("  Failed: %d\n", atomic.LoadInt64(&failCount))
	fmt.Printf("  RPS: %.2f\n", float64(total)/totalDuration.Seconds())
	fmt.Printf("  Latency avg: %v\n", avg)
	fmt.Printf("  Latency p50: %v\n", p50)
	fmt.Printf("  Latency p95: %v\n", p95)
	fmt.Printf("  Latency p99: %v\n", p99)
}
