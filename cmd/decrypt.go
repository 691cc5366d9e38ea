package cmd

import (
	"fmt"

	"github.com/enveil/enveil/internal/audit"
	"github.com/enveil/enveil/internal/transcode"
	"github.com/spf13/cobra"
)

var (
	decryptString string
	decryptFile   string
	decryptStdin  bool
	decryptOutput string
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt a single marker or every marker in a document",
	Long: `With -s, decrypts one inline ENC[...] marker and prints the raw value.
Input that does not carry the marker delimiters is rejected before any
decryption is attempted.

With -f or --stdin, replaces every encrypted marker in the document with a
decrypted ENC![...]!ENC marker of the same shape, suitable for editing and
re-encrypting. If any marker fails to decrypt, nothing is emitted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")

		config, err := loadConfig()
		if err != nil {
			return err
		}
		keys, err := loadFullKeys(config)
		if err != nil {
			return err
		}
		tc := transcode.New(keys)
		tc.BlockWidth = config.Edit.BlockWidth

		if cmd.Flags().Changed("string") {
			plain, err := tc.DecryptValue(decryptString)
			if err != nil {
				return err
			}
			fmt.Println(plain)
			audit.Log(audit.Entry{Operation: "decrypt", Outcome: "written", Markers: 1})
			return nil
		}

		doc, source, err := readDocumentInput(decryptFile, decryptStdin)
		if err != nil {
			return err
		}
		Logger.Debugf("Decrypting document from %s (%d bytes)", source, len(doc))

		plain, err := tc.DecryptDocument(doc)
		if err != nil {
			return err
		}
		if err := writeDocumentOutput(plain, decryptOutput); err != nil {
			return err
		}

		audit.Log(audit.Entry{Operation: "decrypt", Document: source, Outcome: "written"})
		Logger.Infof("Decrypt command completed successfully")
		return nil
	},
}

func init() {
	decryptCmd.Flags().StringVarP(&decryptString, "string", "s", "", "decrypt a single inline marker")
	decryptCmd.Flags().StringVarP(&decryptFile, "file", "f", "", "decrypt every marker in a file")
	decryptCmd.Flags().BoolVar(&decryptStdin, "stdin", false, "read the document from stdin")
	decryptCmd.Flags().StringVarP(&decryptOutput, "output", "o", "", "write the result to a file instead of stdout")
	decryptCmd.MarkFlagsMutuallyExclusive("string", "file", "stdin")
	decryptCmd.MarkFlagsOneRequired("string", "file", "stdin")
}
