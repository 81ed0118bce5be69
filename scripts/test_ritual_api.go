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

const (
	baseURL = "http://localhost:8080/api"
)

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

	client := &http.Client{} // No timeout, LLM calls can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Ritual API Smoke Test\n")

	// 1. Create a ritual
	color.Yellow("\n1. Create Ritual")
	createReq := map[string]interface{}{
		"text": "I'm completely overwhelmed, my thoughts keep racing and I can't start anything",
	}
	resp, body, err := sendRequest("POST", "/ritual/v1", createReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	var createResp map[string]interface{}
	json.Unmarshal(body, &createResp)
	prettyPrint(createResp)

	data, _ := createResp["data"].(map[string]interface{})
	sessionId, _ := data["session_id"].(string)
	if sessionId == "" {
		color.Red("No session_id in response, aborting")
		os.Exit(1)
	}

	// 2. Read the current step
	color.Yellow("\n2. Get Current Step")
	resp, body, err = sendRequest("GET", "/ritual/v1/step/"+sessionId, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var stepResp map[string]interface{}
	json.Unmarshal(body, &stepResp)
	prettyPrint(stepResp)

	// 3. Advance until the ritual completes
	color.Yellow("\n3. Advance Through Ritual")
	for i := 0; i < 10; i++ {
		resp, body, err = sendRequest("POST", "/ritual/v1/step/"+sessionId+"/next", nil)
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}

		var nextResp map[string]interface{}
		json.Unmarshal(body, &nextResp)
		nextData, _ := nextResp["data"].(map[string]interface{})
		if done, _ := nextData["ritual_complete"].(bool); done {
			color.Green("Ritual complete after %d advances", i+1)
			prettyPrint(nextResp)
			break
		}
	}

	// 4. Submit feedback
	color.Yellow("\n4. Submit Feedback (rating 5)")
	resp, body, err = sendRequest("POST", "/ritual/v1/feedback/"+sessionId, map[string]interface{}{"rating": 5})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var feedbackResp map[string]interface{}
	json.Unmarshal(body, &feedbackResp)
	prettyPrint(feedbackResp)

	// 5. The session must be gone after feedback
	color.Yellow("\n5. Verify Session Evicted")
	resp, _, err = sendRequest("GET", "/ritual/v1/step/"+sessionId, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode == http.StatusNotFound {
		color.Green("Session correctly evicted (404)")
	} else {
		color.Red("Expected 404, got %s", resp.Status)
	}

	color.Cyan("\n✅ Smoke test finished")
}
