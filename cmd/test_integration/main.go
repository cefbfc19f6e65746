package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var baseURL = "http://localhost:8080"

func main() {
	if u := os.Getenv("RECON_URL"); u != "" {
		baseURL = u
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	suffix := fmt.Sprintf("%d", time.Now().Unix())

	fmt.Println("1. Registering algorithm...")
	if _, ok := sendRequest("POST", "/algorithms", map[string]interface{}{
		"name": "names-" + suffix,
		"kind": "jaro_winkler",
	}, http.StatusCreated); !ok {
		fmt.Println("FAILED: Register algorithm")
		os.Exit(1)
	}
	fmt.Println("PASSED: Register algorithm")

	fmt.Println("2. Reconciling...")
	payload := map[string]interface{}{
		"source_records": []map[string]interface{}{
			{"id": "inv-1", "source_id": "ledger", "fields": map[string]interface{}{"name": "Jon Doe", "amount": 100}},
			{"id": "inv-2", "source_id": "ledger", "fields": map[string]interface{}{"name": "Mary Major", "amount": 42.5}},
		},
		"target_records": []map[string]interface{}{
			{"id": "tx-1", "source_id": "bank", "fields": map[string]interface{}{"name": "John Doe", "amount": 100}},
			{"id": "tx-2", "source_id": "bank", "fields": map[string]interface{}{"name": "Mary Majors", "amount": 42.5}},
		},
		"config": map[string]interface{}{
			"matching_fields":           []string{"name", "amount"},
			"field_thresholds":          map[string]float64{"name": 0.8, "amount": 0.9},
			"min_confidence_threshold":  0.7,
			"fuzzy_algorithm_selection": map[string]string{"name": "names-" + suffix},
			"max_matches_per_record":    1,
		},
		"persist": os.Getenv("RECON_PERSIST") != "",
	}

	body, ok := sendRequest("POST", "/reconcile", payload, http.StatusOK)
	if !ok {
		fmt.Println("FAILED: Reconcile")
		os.Exit(1)
	}

	var resp struct {
		RunID   string            `json:"run_id"`
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Results) != 2 {
		fmt.Printf("FAILED: Reconcile returned %d results (err: %v)\n", len(resp.Results), err)
		os.Exit(1)
	}
	fmt.Println("PASSED: Reconcile")

	if resp.RunID != "" {
		fmt.Println("3. Loading saved run...")
		if _, ok := sendRequest("GET", "/runs/"+resp.RunID, nil, http.StatusOK); !ok {
			fmt.Println("FAILED: Load run")
			os.Exit(1)
		}
		fmt.Println("PASSED: Load run")
	}

	fmt.Println("4. Reading statistics...")
	if _, ok := sendRequest("GET", "/statistics", nil, http.StatusOK); !ok {
		fmt.Println("FAILED: Statistics")
		os.Exit(1)
	}
	fmt.Println("PASSED: Statistics")
}

func sendRequest(method, endpoint string, payload interface{}, wantStatus int) ([]byte, bool) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return nil, false
	}

	fmt.Printf("Response: %s\n", string(respBody))
	return respBody, true
}
