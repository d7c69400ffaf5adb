package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"
)

// Seeds a running API with demo accounts and submissions. Useful for
// exercising the leaderboard windows and achievement thresholds locally.

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

type submitRequest struct {
	WPM            float64 `json:"wpm"`
	Accuracy       float64 `json:"accuracy"`
	TimeElapsed    float64 `json:"timeElapsed"`
	WordsCompleted float64 `json:"wordsCompleted"`
	Mode           string  `json:"mode"`
}

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "API base URL")
	users := flag.Int("users", 10, "number of demo accounts")
	submissions := flag.Int("submissions", 5, "submissions per account")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < *users; i++ {
		username := fmt.Sprintf("demo_%d_%04d", i, rng.Intn(10000))
		token, err := signup(client, *apiURL, username)
		if err != nil {
			log.Printf("signup %s: %v", username, err)
			continue
		}

		for j := 0; j < *submissions; j++ {
			wpm := 25 + rng.Intn(90)
			if err := submit(client, *apiURL, token, wpm, rng); err != nil {
				log.Printf("submit for %s: %v", username, err)
				break
			}
		}
		log.Printf("seeded %s with %d submissions", username, *submissions)
	}
}

func signup(client *http.Client, apiURL, username string) (string, error) {
	payload, _ := json.Marshal(signupRequest{Username: username, Password: "demo-password"})
	resp, err := client.Post(apiURL+"/api/auth/signup", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	var auth authResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", err
	}
	return auth.Token, nil
}

func submit(client *http.Client, apiURL, token string, wpm int, rng *rand.Rand) error {
	elapsed := 30.0
	body := submitRequest{
		WPM:            float64(wpm),
		Accuracy:       85 + rng.Float64()*15,
		TimeElapsed:    elapsed,
		WordsCompleted: float64(wpm) * elapsed / 60,
		Mode:           "time",
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequest("POST", apiURL+"/api/game/submit", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}
