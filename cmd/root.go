package cmd

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/msh-project/msh/core/config"
	"github.com/msh-project/msh/core/logger"
	"github.com/msh-project/msh/core/shell"
	"github.com/msh-project/msh/core/vos"
	"github.com/spf13/cobra"
)

var (
	cfgPath string

	// exitStatus is set by the interpreter once input is exhausted.
	exitStatus int
)

func loadConfig() (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run --init-config?")
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "msh [BATCH_FILE]",
	Short: "A minimal command interpreter",
	Long: `msh reads commands from BATCH_FILE, or interactively from standard input,
and runs each one as a child process. The builtins cd, exit and quit run
inside the interpreter.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case showBuiltins:
			return printBuiltins(cmd)
		case initConfigDir != "":
			return initConfig(cmd, initConfigDir)
		case showReport:
			return printReport(cmd)
		default:
			return runInterpreter(cmd, args)
		}
	},
}

func runInterpreter(cmd *cobra.Command, args []string) error {
	configuration, err := loadConfig()
	if err != nil {
		return err
	}

	appLog := log.New(io.Discard, "msh: ", log.LstdFlags)
	if configuration.AppLog != "" {
		fd, err := configuration.OpenAppLog()
		if err != nil {
			return err
		}
		defer fd.Close()
		appLog.SetOutput(fd)
	}

	var events *logger.Logger
	if configuration.EventLog != "" {
		fd, err := configuration.OpenEventLog()
		if err != nil {
			return err
		}
		defer fd.Close()
		events = logger.NewJsonLinesLogRecorder(fd)
	}

	// startupError records failures that happen before a session exists.
	startupError := func(err error) error {
		appLog.Printf("%s: %v", shell.OpStartup, err)
		if events != nil {
			events.Sessionless().Record(&logger.Error{Op: shell.OpStartup, Message: err.Error(), Command: args})
		}
		return err
	}

	var batch io.Reader
	mode, source := "interactive", ""
	if len(args) == 1 {
		fd, err := os.Open(args[0])
		if err != nil {
			return startupError(err)
		}
		defer fd.Close()
		batch, mode, source = fd, "batch", args[0]
	}

	host, err := vos.NewHostOS(vos.NewVIOAdapter(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()))
	if err != nil {
		return startupError(err)
	}
	host.SyncProcessDir = true

	sh := shell.NewFromConfig(host, configuration)
	sh.Log = appLog

	if events != nil {
		session := events.NewSession()
		appLog.Printf("recording events for session %s", session.SessionID())
		sh.Events = session
	}

	reader, err := newLineReader(cmd, configuration, batch)
	if err != nil {
		return startupError(err)
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	appLog.Printf("starting %s session in %s", mode, host.Getwd())
	sh.Record(&logger.SessionStart{Mode: mode, Source: source, Dir: host.Getwd()})

	exitStatus = sh.Run(reader)
	return nil
}

func newLineReader(cmd *cobra.Command, configuration *config.Configuration, batch io.Reader) (shell.LineReader, error) {
	if batch != nil {
		return shell.NewBatchReader(batch), nil
	}

	stdin := cmd.InOrStdin()
	if fd, ok := stdin.(*os.File); ok && isatty.IsTerminal(fd.Fd()) {
		return shell.NewInteractiveReader(shell.InteractiveOptions{
			Prompt:     configuration.Prompt,
			Color:      configuration.ColorPrompt,
			Stdin:      fd,
			Stdout:     cmd.OutOrStdout(),
			Stderr:     cmd.ErrOrStderr(),
			IsTerminal: func() bool { return true },
		})
	}

	prompt := shell.ColorizePrompt(configuration.Prompt, configuration.ColorPrompt)
	return shell.NewPromptReader(prompt, cmd.OutOrStdout(), stdin), nil
}

// Execute runs the root command and returns the process exit status.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() int {
	return execute(rootCmd)
}

func execute(root *cobra.Command) int {
	exitStatus = 0
	if err := root.Execute(); err != nil {
		io.WriteString(root.ErrOrStderr(), shell.ErrorMessage)
		return 1
	}
	return exitStatus
}

func init() {
	rootCmd.Flags().StringVar(&cfgPath, "config", "", "directory holding config.yaml, built-in defaults if unset")
}
