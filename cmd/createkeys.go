package cmd

import (
	"os"

	"github.com/enveil/enveil/internal/audit"
	"github.com/enveil/enveil/internal/envelope"
	"github.com/enveil/enveil/internal/ui"
	"github.com/enveil/enveil/internal/utils"
	"github.com/spf13/cobra"
)

var createkeysForce bool

var createkeysCmd = &cobra.Command{
	Use:   "createkeys",
	Short: "Generate an RSA key pair and self-signed certificate",
	Long: `Generates a 2048-bit RSA private key and a self-signed certificate
carrying the public key. Values are encrypted to the certificate and
decrypted with the private key. The private key is written with mode 0600;
keep it out of version control.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting createkeys command")
		spinner, cleanup := startSpinner("Generating key pair...", verbose)
		defer cleanup()

		config, err := loadConfig()
		if err != nil {
			return err
		}
		privPath, certPath := keyPaths(config)

		if !createkeysForce {
			if _, err := os.Stat(privPath); err == nil {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " A private key already exists at " + ui.Path.Sprint(privPath) + "\n" +
					ui.Info.Sprint("→") + " Pass " + ui.Code.Sprint("--force") + " to overwrite it"
				return nil
			}
		}

		Logger.Debugf("Generating key pair at %s / %s", privPath, certPath)
		if err := envelope.GenerateKeyPair(privPath, certPath); err != nil {
			return Logger.ErrorfAndReturn("failed to generate key pair: %v", err)
		}

		audit.Log(audit.Entry{Operation: "createkeys", Outcome: "written"})
		Logger.Infof("Key pair generated successfully")

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Key pair generated!\n" +
			"The following files were created: " + utils.FormatPaths([]string{privPath, certPath}) +
			ui.Info.Sprint("→") + " Encrypt your first value with " + ui.Code.Sprint("enveil encrypt -s 'secret'")
		return nil
	},
}

func init() {
	createkeysCmd.Flags().BoolVar(&createkeysForce, "force", false, "overwrite an existing key pair")
}
