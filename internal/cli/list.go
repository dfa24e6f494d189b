package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/apresai/speak/internal/format"
	"github.com/apresai/speak/internal/ssml"
	"github.com/apresai/speak/internal/synth"
	"github.com/apresai/speak/internal/voices"
)

var (
	listHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	listDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

var listVoicesCmd = &cobra.Command{
	Use:   "list-voices",
	Short: "List the voices offered by the speech endpoint",
	Long:  "List the voices offered by the speech endpoint. Filter by --locale, or by --voice when no locale is given.",
	Args:  cobra.NoArgs,
	RunE:  runListVoices,
}

var listQualitiesCmd = &cobra.Command{
	Use:         "list-qualities",
	Short:       "List quality levels for each container format",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfig: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		printQualities(cmd.OutOrStdout())
	},
}

var listFormatsCmd = &cobra.Command{
	Use:         "list-formats",
	Short:       "List every output format the service can produce",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfig: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		printFormats(cmd.OutOrStdout())
	},
}

var listLocalesCmd = &cobra.Command{
	Use:         "list-locales",
	Short:       "List the locales that have a default voice",
	Long:        "List the locales that have a default voice. Text in any other locale needs --voice.",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfig: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		printLocales(cmd.OutOrStdout())
	},
}

var (
	flagListLocale string
	flagListVoice  string
)

func init() {
	rootCmd.AddCommand(listVoicesCmd)
	rootCmd.AddCommand(listQualitiesCmd)
	rootCmd.AddCommand(listFormatsCmd)
	rootCmd.AddCommand(listLocalesCmd)
	listVoicesCmd.Flags().StringVarP(&flagListLocale, "locale", "l", "", "Only voices for this locale")
	listVoicesCmd.Flags().StringVarP(&flagListVoice, "voice", "v", "", "Only the voice with this short name")
}

func runListVoices(cmd *cobra.Command, args []string) error {
	if settings.Provider != synth.ProviderAzure {
		return fmt.Errorf("list-voices is only available for the azure provider (current: %s)", settings.Provider)
	}
	ctx := cmd.Context()
	key, err := resolvedKey(ctx)
	if err != nil {
		return err
	}

	client := &voices.Client{Endpoint: settings.Endpoint, Key: key, Origin: synth.Origin}
	all, err := client.List(ctx)
	if err != nil {
		return err
	}
	printVoices(cmd.OutOrStdout(), voices.Filter(all, flagListLocale, flagListVoice))
	return nil
}

func printVoices(w io.Writer, vs []voices.Voice) {
	if len(vs) == 0 {
		fmt.Fprintln(w, "No matching voices.")
		return
	}
	for _, v := range vs {
		fmt.Fprintln(w, v.String())
	}
	fmt.Fprintln(w, listDimStyle.Render(fmt.Sprintf("%d voices", len(vs))))
}

func printQualities(w io.Writer) {
	for _, c := range format.Containers {
		fmt.Fprintf(w, "\n  %s\n", listHeaderStyle.Render("Qualities for "+c.String()))
		fmt.Fprintf(w, "  %s\n", strings.Repeat("─", 50))
		for _, q := range format.Qualities(c) {
			def := ""
			if q.Level == format.DefaultQuality {
				def = listDimStyle.Render(" (default)")
			}
			fmt.Fprintf(w, "  %3d  %s%s\n", q.Level, q.Format, def)
		}
	}
	fmt.Fprintln(w)
}

func printFormats(w io.Writer) {
	for _, f := range format.AllFormats() {
		fmt.Fprintln(w, f)
	}
}

func printLocales(w io.Writer) {
	for _, l := range ssml.Locales() {
		v, _ := ssml.DefaultVoice(l)
		fmt.Fprintf(w, "%-8s %s\n", l, listDimStyle.Render(v))
	}
}
