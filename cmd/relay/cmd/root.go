package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"stt-relay/cmd/relay/cmd/record"
	"stt-relay/cmd/relay/cmd/serve"
	"stt-relay/cmd/relay/cmd/transcribe"
	"stt-relay/cmd/relay/cmd/version"
)

var (
	Verbose    bool
	ConfigFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "Relay recorded speech to a speech-to-text provider",
	Long: `Relay recorded speech to a speech-to-text provider.
- serve runs the HTTP relay and the browser client
- transcribe submits an audio file (or the bundled sample) to a relay
- record captures the microphone until Enter and submits the recording`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(record.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&ConfigFile, "config", "c", "", "relay config file (YAML)")
}
