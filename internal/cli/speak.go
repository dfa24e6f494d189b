package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apresai/speak/internal/format"
	"github.com/apresai/speak/internal/output"
	"github.com/apresai/speak/internal/pipeline"
	"github.com/apresai/speak/internal/progress"
	"github.com/apresai/speak/internal/ssml"
	"github.com/apresai/speak/internal/synth"
)

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Speak plain text",
	Long: `Speak plain text. The text is taken from --text, from --file, or from
stdin, wrapped in SSML with the chosen voice and prosody, and synthesized.`,
	Args: cobra.NoArgs,
	RunE: runText,
}

var ssmlCmd = &cobra.Command{
	Use:   "ssml",
	Short: "Speak an SSML document",
	Long:  "Speak an SSML document given with --ssml, read from --file, or read from stdin. The document is sent as is.",
	Args:  cobra.NoArgs,
	RunE:  runSSML,
}

var (
	flagText        string
	flagSSML        string
	flagPitch       string
	flagRate        string
	flagStyle       string
	flagRole        string
	flagStyleDegree float64
	flagLocale      string
	flagVoice       string
	flagTUI         bool

	flagFile      string
	flagEncoding  string
	flagOutput    string
	flagContainer string
	flagQuality   int
	flagFormat    string
	flagNoClobber bool
	flagPublish   bool
)

// Overridden in tests.
var (
	connectSynth   func(ctx context.Context, cfg synth.Config) (synth.Synthesizer, error)
	playbackDevice output.Device
)

func init() {
	rootCmd.AddCommand(textCmd)
	rootCmd.AddCommand(ssmlCmd)

	for _, cmd := range []*cobra.Command{rootCmd, textCmd} {
		addTextFlags(cmd)
		addInputFlags(cmd)
		addOutputFlags(cmd)
	}
	ssmlCmd.Flags().StringVarP(&flagSSML, "ssml", "s", "", "SSML document to speak")
	addInputFlags(ssmlCmd)
	addOutputFlags(ssmlCmd)
}

func addTextFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&flagText, "text", "t", "", "Text to speak")
	f.StringVarP(&flagPitch, "pitch", "p", "", "Pitch: x-low..x-high, a relative value like +10% or -2st, or a float")
	f.StringVarP(&flagRate, "rate", "r", "", "Rate: x-slow..x-fast, a relative value like +20%, or a float like 1.5")
	f.StringVarP(&flagStyle, "style", "S", "", "Speaking style, e.g. cheerful (azure)")
	f.StringVarP(&flagRole, "role", "R", "", "Role-play role, e.g. Girl or OlderAdultMale (azure)")
	f.Float64VarP(&flagStyleDegree, "style-degree", "d", 1, "Style intensity between 0.01 and 2 (azure)")
	f.StringVarP(&flagLocale, "locale", "l", "", "Locale, e.g. en-US; picks that locale's default voice")
	f.StringVarP(&flagVoice, "voice", "v", "", "Voice short name, e.g. en-US-JennyNeural")
	f.BoolVar(&flagTUI, "tui", false, "Interactive setup wizard for speech options")
}

func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&flagFile, "file", "f", "", "Read input from a file, http(s) URL or PDF (- for stdin)")
	f.StringVarP(&flagEncoding, "encoding", "e", "utf-8", "Text encoding of the input file")
}

func addOutputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&flagOutput, "output", "o", "", "Write audio to this file instead of playing it")
	f.StringVarP(&flagContainer, "container-format", "c", "", "Container: wav, mp3, ogg, or webm")
	f.IntVarP(&flagQuality, "quality", "q", 0, "Quality level for the container (see list-qualities)")
	f.StringVarP(&flagFormat, "format", "F", "", "Exact output format (see list-formats); overrides -c and -q")
	f.BoolVar(&flagNoClobber, "no-clobber", false, "Refuse to overwrite an existing output file")
	f.BoolVar(&flagPublish, "publish", false, "Upload the output file to the configured S3 bucket")
}

func runText(cmd *cobra.Command, args []string) error {
	if flagTUI {
		if err := runInteractiveSetup(cmd); err != nil {
			return err
		}
	}
	opts, err := buildOptions(cmd, pipeline.ModeText)
	if err != nil {
		return err
	}
	return speak(cmd, opts)
}

func runSSML(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd, pipeline.ModeSSML)
	if err != nil {
		return err
	}
	return speak(cmd, opts)
}

// buildOptions merges the command's flags with the loaded settings. A flag
// given on the command line always beats the config file.
func buildOptions(cmd *cobra.Command, mode pipeline.Mode) (pipeline.Options, error) {
	flags := cmd.Flags()
	opts := pipeline.Options{
		Mode:      mode,
		InputFile: flagFile,
		Encoding:  flagEncoding,
		Stdin:     cmd.InOrStdin(),
		Output:    flagOutput,
		NoClobber: settings.Output.NoClobber || flagNoClobber,
		Device:    playbackDevice,
		Connect:   connectSynth,
	}

	inline := "text"
	if mode == pipeline.ModeSSML {
		inline = "ssml"
	}
	if flags.Changed(inline) {
		v := flagText
		if mode == pipeline.ModeSSML {
			v = flagSSML
		}
		opts.Inline = &v
	}

	// A container or quality on the command line replaces a configured
	// exact format.
	name := settings.Output.Format
	if flags.Changed("container-format") || flags.Changed("quality") {
		name = ""
	}
	if flags.Changed("format") {
		name = flagFormat
	}
	if name != "" {
		f, err := format.ParseAudioFormat(name)
		if err != nil {
			return opts, err
		}
		opts.Format = &f
	}

	container := settings.Output.Container
	if flags.Changed("container-format") {
		container = flagContainer
	}
	if container != "" {
		c, err := format.ParseContainer(container)
		if err != nil {
			return opts, err
		}
		opts.Container = &c
	}

	opts.Quality = settings.Output.Quality
	if flags.Changed("quality") {
		q := flagQuality
		opts.Quality = &q
	}

	if mode == pipeline.ModeText {
		opts.Text = textOptions(cmd)
	}

	if flagPublish && opts.Output == "" {
		return opts, errors.New("--publish needs an output file (-o)")
	}

	opts.Synth = synth.Config{
		Provider: settings.Provider,
		Endpoint: settings.Endpoint,
		Region:   settings.Region,
	}
	return opts, nil
}

func textOptions(cmd *cobra.Command) ssml.TextOptions {
	flags := cmd.Flags()
	to := ssml.TextOptions{
		Voice:  settings.Text.Voice,
		Locale: settings.Text.Locale,
		Pitch:  flagPitch,
		Rate:   flagRate,
		Style:  flagStyle,
		Role:   flagRole,
	}
	if flags.Changed("voice") {
		to.Voice = flagVoice
	}
	switch {
	case flags.Changed("locale"):
		to.Locale = flagLocale
		if !flags.Changed("voice") {
			to.Voice = ""
		}
	case to.Voice != "":
		// The voice name carries its own locale.
		to.Locale = ""
	}
	if flags.Changed("style-degree") {
		d := flagStyleDegree
		to.StyleDegree = &d
	}
	return to
}

func speak(cmd *cobra.Command, opts pipeline.Options) error {
	ctx := cmd.Context()

	key, err := resolvedKey(ctx)
	if err != nil {
		return err
	}
	opts.Synth.Key = key

	if flagVerbose == 0 {
		r := progress.NewStatusRenderer(os.Stderr)
		defer r.Finish()
		opts.Progress = r.Handle
	}

	res, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	if flagPublish {
		url, err := publishAudio(ctx, settings.Publish.Bucket, settings.Publish.BaseURL, res.OutputFile, "", res.Format)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Published: %s\n", url)
	}
	return nil
}
