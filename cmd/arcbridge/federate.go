package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// federationFileName is the identity envelope location under the home
// directory.
const federationFileName = ".sage-federation"

// TokenEnvelope is the stored federation identity. It is an identity claim
// for display, not a credential: nothing validates or authenticates it.
type TokenEnvelope struct {
	Source string         `json:"source"`
	Token  string         `json:"token,omitempty"`
	Claims map[string]any `json:"claims,omitempty"`
}

func federationPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, federationFileName), nil
}

// saveTokenEnvelope writes the identity envelope to disk.
func saveTokenEnvelope(env TokenEnvelope) error {
	path, err := federationPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode envelope: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}

// loadTokenEnvelope reads the identity envelope, reporting whether one was
// found.
func loadTokenEnvelope() (TokenEnvelope, bool, error) {
	path, err := federationPath()
	if err != nil {
		return TokenEnvelope{}, false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return TokenEnvelope{}, false, nil
		}
		return TokenEnvelope{}, false, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var env TokenEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return TokenEnvelope{}, false, fmt.Errorf("corrupt envelope in %s: %w", path, err)
	}
	return env, true, nil
}

func runFederate(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: arcbridge federate --token '<json>' | status")
		os.Exit(1)
	}

	switch args[0] {
	case "--token":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "federate --token requires a JSON envelope argument")
			os.Exit(1)
		}

		var env TokenEnvelope
		if err := json.Unmarshal([]byte(args[1]), &env); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid envelope JSON: %v\n", err)
			os.Exit(1)
		}
		if err := saveTokenEnvelope(env); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to install identity: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Federation identity installed.")

	case "status":
		env, found, err := loadTokenEnvelope()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read identity: %v\n", err)
			os.Exit(1)
		}
		if !found {
			fmt.Println("No federation identity found.")
			return
		}
		fmt.Println("Federated as:", env.Source)

	default:
		fmt.Println("Usage: arcbridge federate --token '<json>' | status")
		os.Exit(1)
	}
}
