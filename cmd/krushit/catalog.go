package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/krushit/krushit/engine/advisory"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the built-in advisory catalog",
	}
	cmd.AddCommand(newCatalogListCmd(), newCatalogShowCmd())
	return cmd
}

func newCatalogListCmd() *cobra.Command {
	var language string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List disease ids and names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lang := advisory.LanguageOr(language, advisory.Fallback)
			cat := advisory.Default()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tLANGUAGES")
			for _, id := range cat.IDs() {
				rec, _ := cat.Lookup(id)
				p, err := advisory.Project(rec, lang)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%d\n", id, p.Name, len(rec.Name))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", string(advisory.English), "name language (en, hi, mr)")
	return cmd
}

// diseaseView is what catalog show prints for one language.
type diseaseView struct {
	ID       string             `json:"id" yaml:"id"`
	Language advisory.Language  `json:"language" yaml:"language"`
	Advisory advisory.Projected `json:"advisory" yaml:"advisory"`
}

func newCatalogShowCmd() *cobra.Command {
	var (
		language string
		output   string
		all      bool
	)
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the advisory for one disease",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, ok := advisory.Default().Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown disease %q", args[0])
			}
			if all {
				return render(cmd.OutOrStdout(), output, rec)
			}
			lang, ok := advisory.ParseLanguage(language)
			if !ok {
				return fmt.Errorf("unsupported language %q", language)
			}
			p, err := advisory.Project(rec, lang)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), output, diseaseView{ID: rec.ID, Language: lang, Advisory: p})
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", string(advisory.English), "advisory language (en, hi, mr)")
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format (yaml, json)")
	cmd.Flags().BoolVar(&all, "all-languages", false, "print the full multilingual record")
	return cmd
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q (want yaml or json)", format)
	}
}
