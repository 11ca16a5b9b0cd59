package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Proctoring API Smoke Test\n")

	// 1. Start a session
	color.Yellow("\n1. Start Interview Session")
	resp, body, err := sendRequest("POST", "/interview/start", map[string]interface{}{
		"candidate_name":  "Smoke Test",
		"candidate_email": "smoke.test@example.com",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var startResp map[string]interface{}
	json.Unmarshal(body, &startResp)
	prettyPrint(startResp)

	var sessionID string
	if data, ok := startResp["data"].(map[string]interface{}); ok {
		if id, ok := data["session_id"].(string); ok {
			sessionID = id
		}
	}
	if sessionID == "" {
		color.Red("No session_id in start response, aborting")
		os.Exit(1)
	}

	// 2. Log a recognized detection
	color.Yellow("\n2. Log Detection (focus_lost)")
	resp, body, err = sendRequest("POST", "/interview/log-detection", map[string]interface{}{
		"session_id":       sessionID,
		"event_type":       "focus_lost",
		"description":      "Candidate switched to another tab",
		"confidence_score": 0.91,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var logResp map[string]interface{}
	json.Unmarshal(body, &logResp)
	prettyPrint(logResp)

	// 3. Log an unrecognized detection (audit only, no score change)
	color.Yellow("\n3. Log Detection (unknown category)")
	resp, body, err = sendRequest("POST", "/interview/log-detection", map[string]interface{}{
		"session_id":  sessionID,
		"event_type":  "singing_loudly",
		"description": "Candidate hums suspiciously",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	json.Unmarshal(body, &logResp)
	prettyPrint(logResp)

	// 4. Interim report
	color.Yellow("\n4. Get Interim Report")
	resp, body, err = sendRequest("GET", "/interview/report/"+sessionID, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var reportResp map[string]interface{}
	json.Unmarshal(body, &reportResp)
	prettyPrint(reportResp)

	// 5. End the session
	color.Yellow("\n5. End Interview Session")
	resp, body, err = sendRequest("POST", "/interview/end", map[string]interface{}{
		"session_id": sessionID,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var endResp map[string]interface{}
	json.Unmarshal(body, &endResp)
	prettyPrint(endResp)

	// 6. End again: must report the session as already ended (400)
	color.Yellow("\n6. End Again (expect conflict)")
	resp, body, err = sendRequest("POST", "/interview/end", map[string]interface{}{
		"session_id": sessionID,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	json.Unmarshal(body, &endResp)
	prettyPrint(endResp)

	// 7. Fetch the PDF report
	color.Yellow("\n7. Download PDF Report")
	resp, body, err = sendRequest("GET", "/interview/report/"+sessionID+"/pdf", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s (%d bytes)", resp.Status, len(body))

	color.Cyan("\n✅ Smoke test finished")
}
