//go:build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"
)

func baseURL() string {
	if v := os.Getenv("ANKETA_TEST_BASE_URL"); strings.TrimSpace(v) != "" {
		return strings.TrimRight(v, "/")
	}
	return "http://127.0.0.1:18080"
}

var hexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestSurveyIntakeFlow(t *testing.T) {
	client := &http.Client{Timeout: 5 * time.Second}
	base := baseURL()

	// Health first.
	resp, err := client.Get(base + "/ping")
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ping status = %d", resp.StatusCode)
	}

	email := fmt.Sprintf("integration_%d@example.com", time.Now().UnixNano())
	body, _ := json.Marshal(map[string]any{
		"email":   email,
		"age":     31,
		"answers": map[string]any{"q1": "yes", "q2": 4},
	})

	post := func() (int, map[string]any) {
		resp, err := client.Post(base+"/v1/survey", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("post survey: %v", err)
		}
		defer resp.Body.Close()
		var out map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&out)
		return resp.StatusCode, out
	}

	status, first := post()
	if status != http.StatusCreated {
		t.Fatalf("first submission status = %d (%v)", status, first)
	}
	id, _ := first["submission_id"].(string)
	if !hexDigest.MatchString(id) {
		t.Fatalf("submission_id = %q", id)
	}

	// Same email within the same UTC hour derives the same id.
	status, second := post()
	if status != http.StatusCreated {
		t.Fatalf("second submission status = %d", status)
	}
	if second["submission_id"] != id {
		t.Fatalf("ids within one hour differ: %v vs %v", second["submission_id"], id)
	}

	// Missing email is a 422 with a violation list.
	resp, err = client.Post(base+"/v1/survey", "application/json", strings.NewReader(`{"age": 31}`))
	if err != nil {
		t.Fatalf("post invalid survey: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("invalid submission status = %d", resp.StatusCode)
	}
}
