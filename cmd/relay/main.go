package main

import (
	"fmt"
	"os"

	"stt-relay/cmd/relay/cmd"
	"stt-relay/internal/config"
)

func main() {
	// Missing keys only warn: the relay still starts and fails per request
	if _, err := config.InitializeConfig(os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Configuration Warning: %v\n", err)
		fmt.Fprintf(os.Stderr, "💡 Copy .env.example to .env and add DEEPGRAM_API_KEY\n")
	}

	cmd.Execute()
}
