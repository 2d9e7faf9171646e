package record

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"stt-relay/internal/app/api/provider"
	"stt-relay/internal/app/capture"
	"stt-relay/internal/app/common"
)

var (
	relayURL string
	language string
	recorder string
)

func init() {
	Cmd.Flags().StringVarP(&relayURL, "url", "u", "http://localhost:3000", "relay base URL")
	Cmd.Flags().StringVarP(&language, "language", "l", string(provider.DefaultLanguage), "language hint sent as x-language (en, ko)")
	Cmd.Flags().StringVarP(&recorder, "recorder", "r", strings.Join(capture.DefaultRecorderCommand, " "),
		"command that writes the recording to stdout until interrupted")
}

// Cmd represents the record command
var Cmd = &cobra.Command{
	Use:   "record",
	Short: "Record from the microphone and transcribe on Enter",
	Long: `Record from the microphone and transcribe on Enter

- The recorder command streams audio to stdout and is stopped with SIGINT
- Press Enter to stop recording and submit the captured audio`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger := zap.NewNop()
		if verbose {
			logger = common.MustNewLogger(true)
		}

		source, err := capture.NewCommandSource(recorder)
		if err != nil {
			return err
		}
		session := capture.NewSession(source, logger)
		client := capture.NewClient(relayURL, logger)
		lang := provider.ParseLanguage(language)
		out := cmd.OutOrStdout()

		if err := session.Start(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Recording (%s)... press Enter to stop\n", lang.DisplayName())

		if _, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n'); err != nil {
			logger.Debug("Stdin closed, stopping", zap.Error(err))
		}

		spinner := capture.NewSpinner(cmd.ErrOrStderr(), "Transcribing")
		result, err := client.SubmitRecording(cmd.Context(), session, lang)
		spinner.Stop()

		if err != nil {
			fmt.Fprintln(out, capture.DisplayError(err))
			return err
		}
		fmt.Fprintln(out, result.DisplayText())
		return nil
	},
}
