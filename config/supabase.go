package config

import (
	"fmt"
	"os"

	supa "github.com/supabase-community/supabase-go"
)

var SupabaseClient *supa.Client

// InitSupabase initializes the Supabase client used for persisted project
// state. SUPABASE_URL and SUPABASE_SERVICE_KEY (or SUPABASE_ANON_KEY as a
// reduced-access fallback) must be set.
func InitSupabase() error {
	supabaseURL := os.Getenv("SUPABASE_URL")
	if supabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is not set")
	}

	supabaseKey := os.Getenv("SUPABASE_SERVICE_KEY")
	if supabaseKey == "" {
		supabaseKey = os.Getenv("SUPABASE_ANON_KEY")
		if supabaseKey == "" {
			return fmt.Errorf("neither SUPABASE_SERVICE_KEY nor SUPABASE_ANON_KEY is set")
		}
		if Log != nil {
			Log.Warn("Using anonymous key for Supabase. Set SUPABASE_SERVICE_KEY for full access.")
		}
	}

	client, err := supa.NewClient(supabaseURL, supabaseKey, nil)
	if err != nil {
		return fmt.Errorf("initializing Supabase client: %w", err)
	}

	SupabaseClient = client
	return nil
}

// GetSupabaseURL returns the Supabase project URL.
func GetSupabaseURL() string {
	return os.Getenv("SUPABASE_URL")
}

// GetSupabaseKey returns the API key used for storage requests, preferring
// the service key.
func GetSupabaseKey() string {
	if key := os.Getenv("SUPABASE_SERVICE_KEY"); key != "" {
		return key
	}
	return os.Getenv("SUPABASE_ANON_KEY")
}
