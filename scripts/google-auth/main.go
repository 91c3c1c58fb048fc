// scripts/google-auth/main.go
//
// Run this ONCE locally to authorize Google Calendar and Google Tasks access
// and generate token.json.
//
// Usage:
//   go run ./scripts/google-auth [credentials.json] [token.json]
//
// Without a credentials file, GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are
// read from the environment (or .env).

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"schedule-planner/pkg/credential"
)

const defaultRedirect = "http://localhost"

func main() {
	_ = godotenv.Load()

	opts := credential.LoadOptions{
		CredentialsPath: "credentials.json",
		TokenPath:       "token.json",
		Client: credential.OAuthClientConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			ProjectID:    os.Getenv("GOOGLE_PROJECT_ID"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URI"),
		},
	}
	if len(os.Args) > 1 {
		opts.CredentialsPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		opts.TokenPath = os.Args[2]
	}
	if opts.Client.RedirectURL == "" {
		opts.Client.RedirectURL = defaultRedirect
	}

	ctx := context.Background()
	provider, err := credential.Load(ctx, opts)
	if err != nil {
		log.Fatalf("Failed to load Google credentials: %v\nProvide an OAuth client file or GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET.", err)
	}
	if !provider.CanAuthorize() {
		fmt.Println("Credentials are a service account key, no consent needed.")
		return
	}

	authURL, err := provider.AuthCodeURL(uuid.NewString())
	if err != nil {
		log.Fatalf("Failed to build consent URL: %v", err)
	}

	fmt.Println("=================================================================")
	fmt.Println("STEP 1: Open this URL in a browser and sign in with your Google account:")
	fmt.Println()
	fmt.Println(authURL)
	fmt.Println()
	fmt.Println("=================================================================")
	fmt.Print("STEP 2: Paste the `code` parameter from the redirect URL and press Enter: ")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		log.Fatalf("Failed to read authorization code: %v", err)
	}

	// Exchange persists the token through the file store (mode 0600).
	if err := provider.Exchange(ctx, code); err != nil {
		log.Fatalf("Failed to exchange authorization code: %v", err)
	}

	fmt.Println()
	fmt.Printf("Token saved to %s (state: %s)\n", opts.TokenPath, provider.State())
	fmt.Println("Restart the server to pick it up.")
}
