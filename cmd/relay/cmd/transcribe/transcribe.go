package transcribe

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"stt-relay/internal/app/api/provider"
	"stt-relay/internal/app/audio"
	"stt-relay/internal/app/capture"
	"stt-relay/internal/app/common"
	"stt-relay/web"
)

// DefaultRelayURL is the relay started by "relay serve" with no config
const DefaultRelayURL = "http://localhost:3000"

var (
	relayURL string
	language string
)

func init() {
	Cmd.Flags().StringVarP(&relayURL, "url", "u", DefaultRelayURL, "relay base URL")
	Cmd.Flags().StringVarP(&language, "language", "l", string(provider.DefaultLanguage), "language hint sent as x-language (en, ko)")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe [file]",
	Short: "Submit an audio file to a relay and print the transcript",
	Long: `Submit an audio file to a relay and print the transcript

- Without a file the bundled sample clip is submitted
- The language hint is sent with every submission`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := loadPayload(args)
		if err != nil {
			return err
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		logger := zap.NewNop()
		if verbose {
			logger = common.MustNewLogger(true)
		}

		client := capture.NewClient(relayURL, logger)
		lang := provider.ParseLanguage(language)

		spinner := capture.NewSpinner(cmd.ErrOrStderr(), "Transcribing")
		result, err := client.Transcribe(cmd.Context(), payload, lang)
		spinner.Stop()

		out := cmd.OutOrStdout()
		if err != nil {
			logger.Debug("Transcription failed", zap.Error(err))
			fmt.Fprintln(out, capture.DisplayError(err))
			return err
		}
		fmt.Fprintln(out, result.DisplayText())
		return nil
	},
}

func loadPayload(args []string) (*provider.AudioPayload, error) {
	if len(args) == 0 {
		data, err := web.SampleAudio()
		if err != nil {
			return nil, fmt.Errorf("bundled sample unavailable: %w", err)
		}
		return &provider.AudioPayload{Data: data, Filename: web.SampleAudioName, ContentType: "audio/wav"}, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	mime, _ := audio.Sniff(data)
	return &provider.AudioPayload{Data: data, Filename: filepath.Base(args[0]), ContentType: mime}, nil
}
