package cmd

import (
	"fmt"
	"os"

	"github.com/mtth/igloo/pkg/cerr"
	"github.com/mtth/igloo/pkg/conf"
	"github.com/mtth/igloo/pkg/profile"
	"github.com/mtth/igloo/pkg/sconn"
	"github.com/mtth/igloo/pkg/sfs"
	"github.com/mtth/igloo/pkg/sio"
	"github.com/mtth/igloo/pkg/slog"
	"github.com/mtth/igloo/pkg/target"
	"github.com/mtth/igloo/pkg/transfer"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "igloo [flags] [filepath ...]",
	Short: "Igloo - a command line SFTP client",
	Long: `Igloo transfers files between the local filesystem and a remote host
over SFTP. Key authentication must be set up for each host. Targets are
given directly (-u user@host:remote/path) or saved as profiles
(igloo profile add user@host:remote/path name) for repeat use.

By default filepaths are uploaded into the target directory. Remote mode
(-r) turns every transfer into a download. Filepaths corresponding to
directories are skipped.`,
	RunE:          runTransfer,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Transfer flags
var (
	urlFlag             string
	profileFlag         string
	exprFlag            string
	remoteFlag          bool
	streamFlag          bool
	walkFlag            bool
	askFlag             bool
	forceFlag           bool
	keepHierarchyFlag   bool
	moveFlag            bool
	caseInsensitiveFlag bool
	noMatchFlag         bool
	listFlag            bool
	quietFlag           bool
	binaryFlag          bool
	debugFlag           bool
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&urlFlag, "url", "u", "", "Url to transfer to (overrides any profile)")
	flags.StringVarP(&profileFlag, "profile", "p", profile.DefaultName, "Profile to transfer to")
	flags.StringVarP(&exprFlag, "expr", "e", "", "Regular expression to filter filepaths with")
	flags.BoolVarP(&remoteFlag, "remote", "r", false, "Remote mode, filepaths correspond to remote files and all transfers become downloads")
	flags.BoolVarP(&streamFlag, "stream", "s", false, "Streaming mode, upload from stdin or download to stdout")
	flags.BoolVarP(&walkFlag, "walk", "w", false, "Recursive directory exploration")
	flags.BoolVarP(&askFlag, "ask", "a", false, "Ask before transferring each file")
	flags.BoolVarP(&forceFlag, "force", "f", false, "Allow transferred files to overwrite existing ones")
	flags.BoolVarP(&keepHierarchyFlag, "keep-hierarchy", "k", false, "Preserve folder hierarchy when transferring files")
	flags.BoolVarP(&moveFlag, "move", "m", false, "Delete origin copy after successful transfer")
	flags.BoolVarP(&caseInsensitiveFlag, "case-insensitive", "i", false, "Case insensitive regular expression matching")
	flags.BoolVarP(&noMatchFlag, "no-match", "n", false, "Inverse match")
	flags.BoolVarP(&listFlag, "list", "l", false, "Show matching filepaths and exit without transferring files")
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "No output")
	flags.BoolVarP(&binaryFlag, "binary", "b", false, "Don't decode stdout")
	flags.BoolVarP(&debugFlag, "debug", "d", false, "Enable full error traces")

	// Mark mutual exclusions
	rootCmd.MarkFlagsMutuallyExclusive("url", "profile")
	rootCmd.MarkFlagsMutuallyExclusive("stream", "expr")
	rootCmd.MarkFlagsMutuallyExclusive("stream", "ask")
	rootCmd.MarkFlagsMutuallyExclusive("stream", "walk")
	rootCmd.MarkFlagsMutuallyExclusive("stream", "list")
	rootCmd.MarkFlagsMutuallyExclusive("stream", "keep-hierarchy")
}

func runTransfer(cmd *cobra.Command, args []string) error {
	logger := slog.NewLogger("Igloo")
	if debugFlag {
		logger.WithDebug()
		cmd.Flags().Visit(func(f *pflag.Flag) {
			logger.Debugf("Flag %s=%q", f.Name, f.Value.String())
		})
	} else if quietFlag {
		logger.WithError()
	}

	// Validate argument combinations cobra cannot express
	if streamFlag && len(args) != 1 {
		return fmt.Errorf("streaming mode requires exactly one filepath")
	}
	if exprFlag != "" && len(args) > 0 {
		return fmt.Errorf("cannot combine an expression with explicit filepaths")
	}
	if exprFlag == "" && len(args) == 0 {
		return fmt.Errorf("nothing to transfer, give filepaths or an expression")
	}

	locator := urlFlag
	if locator == "" {
		store := profile.NewStore(conf.GetRCPath())
		resolved, rErr := store.Resolve(profileFlag)
		if rErr != nil {
			return rErr
		}
		locator = resolved
	}
	tgt, pErr := target.Parse(locator)
	if pErr != nil {
		return pErr
	}

	direction := transfer.Upload
	if remoteFlag {
		direction = transfer.Download
	}
	mode := transfer.FileMode
	if streamFlag {
		mode = transfer.StreamMode
	}

	conn, oErr := sconn.Open(&sconn.Config{Target: tgt, Logger: logger})
	if oErr != nil {
		return oErr
	}

	executor := &transfer.Executor{
		Local:  sfs.NewLocal(""),
		Remote: sfs.NewRemote(conn.Client(), conn.BaseDir()),
		Logger: logger,
		In:     os.Stdin,
		Out:    sio.NewConsoleWriter(os.Stdout, binaryFlag),
	}
	// Progress rendering only makes sense on an interactive terminal
	if !quietFlag && mode == transfer.FileMode && term.IsTerminal(int(os.Stdout.Fd())) {
		executor.Progress = sio.NewProgress(os.Stdout)
	}

	session := &transfer.Session{
		Executor: executor,
		Logger:   logger,
		Closer:   conn,
		Echo:     os.Stdout,
		Quiet:    quietFlag,
	}
	if askFlag {
		session.Prompter = sio.NewPrompter(os.Stdin, os.Stdout)
	}

	outcomes, rErr := session.Run(transfer.Params{
		Expr:      exprFlag,
		Paths:     args,
		Recursive: walkFlag,
		ListOnly:  listFlag,
		Ask:       askFlag,
		Direction: direction,
		Mode:      mode,
		Policy: transfer.Policy{
			Overwrite:         forceFlag,
			PreserveHierarchy: keepHierarchyFlag,
			DeleteSource:      moveFlag,
			CaseInsensitive:   caseInsensitiveFlag,
			InvertMatch:       noMatchFlag,
		},
	})
	if rErr != nil {
		return rErr
	}

	var failures int
	for _, outcome := range outcomes {
		if outcome.Status == transfer.Failed {
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d transfers failed", failures, len(outcomes))
	}
	return nil
}

// Execute runs the root command, reporting failures on standard error with
// the full causal chain under the debug flag.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if debugFlag {
			_, _ = fmt.Fprintf(os.Stderr, "error: %s\n", cerr.Chain(err))
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "error: %s\n", err)
		}
		os.Exit(1)
	}
}
