package cli

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/relcut/relcut/internal/prompt"
)

var releaseCmd = &cobra.Command{
	Use:          "release",
	Short:        "Interactive menu of the four release transitions",
	Long:         `Presents the release menu: UAT release, start of the next release, PROD promotion, or a new generation. Exactly one transition runs, then relcut exits.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReleaseMenu(cmd)
	},
}

func init() {
	rootCmd.AddCommand(releaseCmd)
}

// runReleaseMenu reads one menu selection and executes the transition.
func runReleaseMenu(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	repo, err := openRepository(cfg)
	if err != nil {
		return err
	}
	o := newOrchestrator(cmd, cfg, repo)

	// One reader for both prompts: the PROD path asks a follow-up
	// question, and a second wrap would lose the buffered input.
	in := bufio.NewReader(cmd.InOrStdin())

	choice, err := prompt.Menu(in, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	switch choice {
	case prompt.TransitionUAT:
		return o.UATRelease(cmd.Context())
	case prompt.TransitionNextRelease:
		return o.NextRelease()
	case prompt.TransitionProd:
		return runProdTransition(cmd, o, in)
	default:
		return o.Generation()
	}
}
