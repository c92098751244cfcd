// Command loadtest drives a running cmd/server instance with concurrent
// HTTP generation requests and WebSocket generation streams, reporting
// throughput and latency. It is a standalone utility, not a `go test`
// suite: run it with `go run ./test` against a live server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	baseURL         = "http://localhost:8080"
	wsURL           = "ws://localhost:8080"
	concurrentUsers = 200
	testDuration    = 30 * time.Second
	apiRampUpTime   = 5 * time.Second
	wsRampUpTime    = 10 * time.Second
)

type stats struct {
	apiRequests     int64
	apiSuccess      int64
	apiFailed       int64
	apiTotalLatency int64
	apiMaxLatency   int64
	wsConnections   int64
	wsSuccess       int64
	wsFailed        int64
	wsMessages      int64
	wsTotalLatency  int64
	wsMaxLatency    int64
}

var counters stats

// sampleEntries is a fixed, 12-entry pool used for every generation
// request: enough overlap for the placer to find a layout, small enough
// that each request is cheap under load.
var sampleEntries = []map[string]string{
	{"word": "CAT", "clue": "Feline"},
	{"word": "TAR", "clue": "Sticky black substance"},
	{"word": "ART", "clue": "Museum piece"},
	{"word": "RAT", "clue": "Rodent"},
	{"word": "TAB", "clue": "Small flap"},
	{"word": "BAT", "clue": "Flying mammal"},
	{"word": "CAR", "clue": "Vehicle"},
	{"word": "ARC", "clue": "Curve"},
	{"word": "BAR", "clue": "Pub counter"},
	{"word": "CAB", "clue": "Taxi"},
	{"word": "TAN", "clue": "Suntan shade"},
	{"word": "RAN", "clue": "Jogged"},
}

func main() {
	fmt.Printf("Starting load test with %d concurrent users for %v\n", concurrentUsers, testDuration)
	fmt.Println("===========================================")

	var wg sync.WaitGroup
	startTime := time.Now()
	stopChan := make(chan struct{})

	fmt.Println("\nPhase 1: HTTP generation load testing...")
	for i := 0; i < concurrentUsers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			time.Sleep(time.Duration(id) * apiRampUpTime / concurrentUsers)
			runAPILoadTest(id, stopChan)
		}(i)
	}

	time.Sleep(5 * time.Second)
	fmt.Println("\nPhase 2: WebSocket generation load testing...")
	wsUsers := concurrentUsers / 10
	for i := 0; i < wsUsers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			time.Sleep(time.Duration(id) * wsRampUpTime / wsUsers)
			runWebSocketTest(id, stopChan)
		}(i)
	}

	time.Sleep(testDuration)
	close(stopChan)

	wg.Wait()
	elapsed := time.Since(startTime)

	fmt.Println("\n===========================================")
	fmt.Println("Load Test Results")
	fmt.Println("===========================================")
	fmt.Printf("Total Duration: %v\n\n", elapsed)

	printAPIStats(elapsed)
	printWSStats(elapsed)

	fmt.Println("\n===========================================")
	fmt.Println("Load test completed!")
}

func printAPIStats(elapsed time.Duration) {
	reqs := atomic.LoadInt64(&counters.apiRequests)
	succ := atomic.LoadInt64(&counters.apiSuccess)
	fail := atomic.LoadInt64(&counters.apiFailed)
	latency := atomic.LoadInt64(&counters.apiTotalLatency)
	maxLat := atomic.LoadInt64(&counters.apiMaxLatency)

	fmt.Println("HTTP /api/puzzles/generate:")
	fmt.Printf("  Total Requests: %d\n", reqs)
	if reqs == 0 {
		return
	}
	fmt.Printf("  Successful: %d (%.2f%%)\n", succ, float64(succ)/float64(reqs)*100)
	fmt.Printf("  Failed: %d (%.2f%%)\n", fail, float64(fail)/float64(reqs)*100)
	if succ > 0 {
		avg := time.Duration(latency/succ) * time.Millisecond
		fmt.Printf("  Avg Latency: %v\n", avg)
		fmt.Printf("  Max Latency: %v\n", time.Duration(maxLat)*time.Millisecond)
		fmt.Printf("  Requests/sec: %.2f\n", float64(reqs)/elapsed.Seconds())
	}
}

func printWSStats(elapsed time.Duration) {
	conns := atomic.LoadInt64(&counters.wsConnections)
	succ := atomic.LoadInt64(&counters.wsSuccess)
	fail := atomic.LoadInt64(&counters.wsFailed)
	msgs := atomic.LoadInt64(&counters.wsMessages)
	latency := atomic.LoadInt64(&counters.wsTotalLatency)
	maxLat := atomic.LoadInt64(&counters.wsMaxLatency)

	fmt.Println("\nWebSocket /api/puzzles/generate/ws:")
	fmt.Printf("  Total Connections: %d\n", conns)
	if conns == 0 {
		return
	}
	fmt.Printf("  Successful: %d (%.2f%%)\n", succ, float64(succ)/float64(conns)*100)
	fmt.Printf("  Failed: %d (%.2f%%)\n", fail, float64(fail)/float64(conns)*100)
	fmt.Printf("  Terminal messages received: %d\n", msgs)
	if msgs > 0 {
		avg := time.Duration(latency/msgs) * time.Millisecond
		fmt.Printf("  Avg time to terminal message: %v\n", avg)
		fmt.Printf("  Max time to terminal message: %v\n", time.Duration(maxLat)*time.Millisecond)
	}
}

func runAPILoadTest(userID int, stopChan <-chan struct{}) {
	client := &http.Client{Timeout: 5 * time.Second}

	token, err := createGuestUser(client, userID)
	if err != nil {
		log.Printf("user %d: failed to create guest: %v", userID, err)
		return
	}

	body, _ := json.Marshal(generateRequestBody())

	for {
		select {
		case <-stopChan:
			return
		default:
			start := time.Now()

			req, _ := http.NewRequest("POST", baseURL+"/api/puzzles/generate", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			atomic.AddInt64(&counters.apiRequests, 1)

			resp, err := client.Do(req)
			latency := time.Since(start).Milliseconds()
			if err != nil {
				atomic.AddInt64(&counters.apiFailed, 1)
				continue
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if resp.StatusCode == http.StatusOK {
				atomic.AddInt64(&counters.apiSuccess, 1)
				atomic.AddInt64(&counters.apiTotalLatency, latency)
				bumpMax(&counters.apiMaxLatency, latency)
			} else {
				atomic.AddInt64(&counters.apiFailed, 1)
			}

			time.Sleep(100 * time.Millisecond)
		}
	}
}

func runWebSocketTest(userID int, stopChan <-chan struct{}) {
	httpClient := &http.Client{Timeout: 5 * time.Second}

	token, err := createGuestUser(httpClient, userID+10000)
	if err != nil {
		log.Printf("ws user %d: failed to create guest: %v", userID, err)
		return
	}

	for {
		select {
		case <-stopChan:
			return
		default:
			atomic.AddInt64(&counters.wsConnections, 1)
			runOneWebSocketGeneration(userID, token)
			time.Sleep(500 * time.Millisecond)
		}
	}
}

func runOneWebSocketGeneration(userID int, token string) {
	conn, _, err := websocket.DefaultDialer.Dial(
		fmt.Sprintf("%s/api/puzzles/generate/ws?token=%s", wsURL, token), nil)
	if err != nil {
		atomic.AddInt64(&counters.wsFailed, 1)
		log.Printf("ws user %d: failed to connect: %v", userID, err)
		return
	}
	defer conn.Close()

	atomic.AddInt64(&counters.wsSuccess, 1)
	start := time.Now()

	body, _ := json.Marshal(generateRequestBody())
	if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == "result" || msg.Type == "error" {
			latency := time.Since(start).Milliseconds()
			atomic.AddInt64(&counters.wsMessages, 1)
			atomic.AddInt64(&counters.wsTotalLatency, latency)
			bumpMax(&counters.wsMaxLatency, latency)
			return
		}
	}
}

func bumpMax(target *int64, value int64) {
	for {
		old := atomic.LoadInt64(target)
		if value <= old || atomic.CompareAndSwapInt64(target, old, value) {
			return
		}
	}
}

func generateRequestBody() map[string]interface{} {
	entries, _ := json.Marshal(sampleEntries)
	return map[string]interface{}{
		"entries":        json.RawMessage(entries),
		"requestedCount": 8,
		"title":          "Load Test Puzzle",
	}
}

func createGuestUser(client *http.Client, id int) (string, error) {
	payload := map[string]string{"displayName": fmt.Sprintf("LoadTestUser%d", id)}
	body, _ := json.Marshal(payload)

	resp, err := client.Post(baseURL+"/api/auth/guest", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Token, nil
}
