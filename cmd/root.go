package cmd

import (
	"errors"
	"fmt"
	"os"

	apperrors "github.com/enveil/enveil/internal/errors"
	logger "github.com/enveil/enveil/internal/logging"
	"github.com/enveil/enveil/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool

	privateKeyFlag string
	certFlag       string

	Logger logger.Logger

	RootCmd = &cobra.Command{
		Use:   "enveil",
		Short: "Keep encrypted secrets inline in configuration files",
		Long: `Enveil lets you keep secret values inside plain configuration files by
replacing them with ENC[...] markers holding asymmetrically-encrypted
ciphertext. The surrounding document is never parsed or modified.

Typical workflow:
  enveil createkeys                  Generate a key pair once
  enveil encrypt -s 'hunter2'        Produce a marker to paste into a file
  enveil edit secrets.yaml           Edit a file's secrets in place
  enveil decrypt -f secrets.yaml     Print the decrypted document`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing enveil with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	addKeyFlags(RootCmd.PersistentFlags())

	RootCmd.AddCommand(createkeysCmd)
	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(editCmd)
	RootCmd.AddCommand(versionCmd)
}

// addKeyFlags registers the key-material overrides shared by every command.
func addKeyFlags(flags *pflag.FlagSet) {
	flags.StringVar(&privateKeyFlag, "privatekey", "", "path to the PEM private key (overrides config)")
	flags.StringVar(&certFlag, "cert", "", "path to the PEM public certificate (overrides config)")
}

// Helper functions for testing

// ResetGlobalState resets all flag values and parse state to their
// defaults, so tests can run commands back to back in one process.
func ResetGlobalState() {
	verbose = false
	debug = false
	privateKeyFlag = ""
	certFlag = ""
	encryptString, encryptFile, encryptStdin, encryptOutput = "", "", false, ""
	decryptString, decryptFile, decryptStdin, decryptOutput = "", "", false, ""
	editEditor = ""
	createkeysForce = false
	resetCommandFlags(RootCmd)
}

func resetCommandFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	for _, sub := range cmd.Commands() {
		resetCommandFlags(sub)
	}
}

// Execute runs the root command and maps errors to exit codes. Soft edit
// outcomes get a short informational line instead of an error dump; every
// failure exits non-zero.
func Execute() int {
	err := RootCmd.Execute()
	if err == nil {
		return 0
	}

	switch {
	case errors.Is(err, apperrors.ErrNoChange):
		fmt.Println(ui.Info.Sprint("→") + " No changes were made, document left untouched")
	case errors.Is(err, apperrors.ErrEmptyContent):
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" Edited content was empty, refusing to write an empty secret store")
	case errors.Is(err, apperrors.ErrNoEditor):
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" No usable editor found\n"+
			ui.Info.Sprint("→")+" Set "+ui.Code.Sprint("$EDITOR")+" or pass "+ui.Code.Sprint("--editor"))
	default:
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" "+err.Error())
	}
	return 1
}
