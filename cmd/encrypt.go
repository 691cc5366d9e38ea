package cmd

import (
	"fmt"

	"github.com/enveil/enveil/internal/audit"
	"github.com/enveil/enveil/internal/transcode"
	"github.com/spf13/cobra"
)

var (
	encryptString string
	encryptFile   string
	encryptStdin  bool
	encryptOutput string
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a single value or every pending marker in a document",
	Long: `With -s, encrypts one raw value and prints an inline ENC[...] marker.

With -f or --stdin, replaces every ENC![...]!ENC marker in the document
with an encrypted marker of the same shape. Block plaintext re-flows onto
indented continuation lines; all other text passes through untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")

		config, err := loadConfig()
		if err != nil {
			return err
		}
		keys, err := loadEncryptKeys(config)
		if err != nil {
			return err
		}
		tc := transcode.New(keys)
		tc.BlockWidth = config.Edit.BlockWidth

		if cmd.Flags().Changed("string") {
			sealed, err := tc.EncryptValue(encryptString)
			if err != nil {
				return err
			}
			fmt.Println(sealed)
			audit.Log(audit.Entry{Operation: "encrypt", Outcome: "written", Markers: 1})
			return nil
		}

		doc, source, err := readDocumentInput(encryptFile, encryptStdin)
		if err != nil {
			return err
		}
		Logger.Debugf("Encrypting document from %s (%d bytes)", source, len(doc))

		sealed, err := tc.EncryptDocument(doc)
		if err != nil {
			return err
		}
		if err := writeDocumentOutput(sealed, encryptOutput); err != nil {
			return err
		}

		audit.Log(audit.Entry{Operation: "encrypt", Document: source, Outcome: "written"})
		Logger.Infof("Encrypt command completed successfully")
		return nil
	},
}

func init() {
	encryptCmd.Flags().StringVarP(&encryptString, "string", "s", "", "encrypt a single raw value")
	encryptCmd.Flags().StringVarP(&encryptFile, "file", "f", "", "encrypt pending markers in a file")
	encryptCmd.Flags().BoolVar(&encryptStdin, "stdin", false, "read the document from stdin")
	encryptCmd.Flags().StringVarP(&encryptOutput, "output", "o", "", "write the result to a file instead of stdout")
	encryptCmd.MarkFlagsMutuallyExclusive("string", "file", "stdin")
	encryptCmd.MarkFlagsOneRequired("string", "file", "stdin")
}
