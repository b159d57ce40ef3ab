package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/krushit/krushit/engine/advisory"
	"github.com/krushit/krushit/engine/classifier"
	"github.com/krushit/krushit/engine/diagnosis"
	"github.com/krushit/krushit/pkg/config"
	"github.com/spf13/cobra"
)

func newDiagnoseCmd() *cobra.Command {
	var (
		language      string
		classifierURL string
		timeout       time.Duration
	)
	cmd := &cobra.Command{
		Use:   "diagnose <image>",
		Short: "Diagnose a leaf photo and print the report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, ok := advisory.ParseLanguage(language)
			if !ok {
				return fmt.Errorf("unsupported language %q (want one of %v)", language, advisory.Supported)
			}
			image, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			if classifierURL == "" || timeout <= 0 {
				cfg, err := config.Load("")
				if err != nil {
					return err
				}
				if classifierURL == "" {
					classifierURL = cfg.ClassifierURL
				}
				if timeout <= 0 {
					timeout = cfg.ClassifierTimeout
				}
			}

			svc := diagnosis.New(
				classifier.NewHTTPGateway(classifierURL, classifier.WithLogger(slog.Default())),
				advisory.Default(),
				diagnosis.Options{Timeout: timeout},
				slog.Default(),
			)
			report, err := svc.Diagnose(cmd.Context(), image, lang)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", string(advisory.English), "report language (en, hi, mr)")
	cmd.Flags().StringVar(&classifierURL, "classifier-url", "", "classifier base URL (default from CLASSIFIER_URL)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "classifier call timeout (default from CLASSIFIER_TIMEOUT)")
	return cmd
}
