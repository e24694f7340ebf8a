// Command probe drives a running honeypot server through a scripted
// scam conversation: detection, engagement, and the report threshold.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shindesiddhant-415/Honeypot/clients/go/honeypot"
)

var script = []string{
	"Hello sir, I am calling from your bank. Your account will be suspended today.",
	"You must verify your KYC immediately, it is urgent.",
	"Send Rs 10 to upi id support@fakebank to keep your account active.",
	"Also check http://secure-verify.example/kyc and confirm your pan card.",
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "honeypot server URL")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key")
	sessionID := flag.String("session", fmt.Sprintf("probe-%d", time.Now().Unix()), "session id")
	flag.Parse()

	client := honeypot.NewClient(*baseURL, *apiKey)
	ctx := context.Background()

	for i, text := range script {
		reply, err := client.Chat(ctx, *sessionID, text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "round %d failed: %v\n", i+1, err)
			os.Exit(1)
		}
		fmt.Printf("scammer> %s\n", text)
		fmt.Printf("agent>   %s\n\n", reply)
	}

	fmt.Printf("session %s complete, report threshold crossed\n", *sessionID)
}
