package cli

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/battleship-go/internal/command"
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
)

// sessionIDLength is the length of generated session ids
const sessionIDLength = 6

func newPlayCmd() *cobra.Command {
	var fresh bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a match",
		Long: `Play a match in the terminal. Type help at the prompt for commands.

An unfinished match saved under the session id is resumed; a finished
one is replaced by a new match.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = session.Close() }()

			id := model.MatchID(cfg.Session)
			if fresh {
				id = model.MatchID(random.New().String(sessionIDLength, random.SessionAlphabet))
			}

			return runREPL(cmd.Context(), session, id, cmd.InOrStdin(), newOutput(cmd))
		},
	}

	cmd.Flags().StringVar(&cfg.Session, "session", cfg.Session, "Session id to resume or start")
	cmd.Flags().BoolVar(&fresh, "new", false, "Start a new match under a generated session id")

	return cmd
}

// runREPL reads commands until quit or end of input. Errors are reported
// and the session carries on.
func runREPL(ctx context.Context, session Session, id model.MatchID, in io.Reader, out *Output) error {
	m, resumed, err := session.Open(ctx, id)
	if err != nil {
		return err
	}
	out.PrintOpened(m, resumed)

	scanner := bufio.NewScanner(in)
	for {
		out.Prompt()
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, err := command.Parse(line)
		if err != nil {
			out.PrintError(err)
			continue
		}

		switch cmd.(type) {
		case command.Help:
			out.PrintMessage(command.Usage)
			continue
		case command.Quit:
			out.PrintMessage("Goodbye.")
			return nil
		}

		resp, err := session.Run(ctx, id, cmd)
		if err != nil {
			out.PrintError(err)
			continue
		}
		out.PrintResult(cmd, resp)
	}

	return scanner.Err()
}
