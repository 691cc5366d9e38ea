package cmd

import (
	"fmt"

	"github.com/enveil/enveil/internal/audit"
	"github.com/enveil/enveil/internal/editsession"
	"github.com/enveil/enveil/internal/ui"
	"github.com/enveil/enveil/internal/utils"
	"github.com/spf13/cobra"
)

var editEditor string

var editCmd = &cobra.Command{
	Use:   "edit FILE",
	Short: "Decrypt a document, edit it, and re-encrypt it in place",
	Long: `Decrypts every marker in FILE into a private temporary file, opens your
editor on it, and re-encrypts the result back over FILE when you save
changes. The temporary plaintext is overwritten with fixed byte patterns
and removed before the command exits, whatever the outcome.

The editor is taken from --editor, the config file, $VISUAL, $EDITOR, or a
probe of common editors, in that order. Exiting the editor with a failure
status, or leaving the file empty or unchanged, aborts without writing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docPath := args[0]
		Logger.Infof("Starting edit command for %s", docPath)

		if !utils.IsTerminal() {
			Logger.WarnfAlways("stdin is not a terminal; the editor may not behave interactively")
		}

		config, err := loadConfig()
		if err != nil {
			return err
		}
		keys, err := loadFullKeys(config)
		if err != nil {
			return err
		}

		editorOverride := editEditor
		if editorOverride == "" {
			editorOverride = config.Edit.Editor
		}
		editor, err := editsession.ResolveEditor(editorOverride)
		if err != nil {
			return err
		}
		Logger.Debugf("Resolved editor: %s", editor)

		session := editsession.New(docPath, keys, editor, Logger)
		session.BlockWidth = config.Edit.BlockWidth

		sessionID := audit.NewSessionID()
		runErr := session.Run()

		outcome := "written"
		if runErr != nil {
			outcome = "aborted"
		}
		audit.Log(audit.Entry{
			Session:   sessionID,
			Operation: "edit",
			Document:  docPath,
			Outcome:   outcome,
		})

		if runErr != nil {
			return runErr
		}

		fmt.Println(ui.Success.Sprint("✓") + " Encrypted and saved " + ui.Path.Sprint(docPath))
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editEditor, "editor", "", "editor command to run (overrides config and $EDITOR)")
}
