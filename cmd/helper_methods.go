package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/enveil/enveil/internal/configs"
	"github.com/enveil/enveil/internal/envelope"
	"github.com/enveil/enveil/internal/ui"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a function that should
// be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines; the cleanup
// function calls ui.EnsureNewline on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// loadConfig loads the user config, tolerating a missing file.
func loadConfig() (*configs.UserConfig, error) {
	config, err := configs.LoadUserConfig()
	if err != nil {
		return nil, Logger.ErrorfAndReturn("failed to load user config: %v", err)
	}
	return config, nil
}

// keyPaths resolves the private key and certificate locations from flags
// and config.
func keyPaths(config *configs.UserConfig) (privPath, certPath string) {
	privPath = privateKeyFlag
	if privPath == "" {
		privPath = config.PrivateKeyPath()
	}
	certPath = certFlag
	if certPath == "" {
		certPath = config.CertificatePath()
	}
	return privPath, certPath
}

// loadEncryptKeys loads only the public certificate; encryption never
// touches the private key.
func loadEncryptKeys(config *configs.UserConfig) (envelope.KeyPair, error) {
	_, certPath := keyPaths(config)
	Logger.Debugf("Loading certificate from: %s", certPath)
	pub, err := envelope.LoadPublicKey(certPath)
	if err != nil {
		return envelope.KeyPair{}, err
	}
	return envelope.KeyPair{Public: pub}, nil
}

// loadFullKeys loads both halves of the key pair for decryption and editing.
func loadFullKeys(config *configs.UserConfig) (envelope.KeyPair, error) {
	privPath, certPath := keyPaths(config)
	Logger.Debugf("Loading key pair from %s and %s", privPath, certPath)
	return envelope.LoadKeyPair(privPath, certPath)
}

// readDocumentInput reads the whole document from a file or stdin. The
// returned source name is used for logging and audit entries.
func readDocumentInput(file string, useStdin bool) (string, string, error) {
	if useStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", Logger.ErrorfAndReturn("failed to read stdin: %v", err)
		}
		return string(data), "stdin", nil
	}
	// #nosec G304 -- the file path is the user's own argument.
	data, err := os.ReadFile(file)
	if err != nil {
		return "", "", Logger.ErrorfAndReturn("failed to read %s: %v", file, err)
	}
	return string(data), file, nil
}

// writeDocumentOutput writes the transformed document to the output path,
// or stdout when no path was given.
func writeDocumentOutput(doc, output string) error {
	if output == "" {
		fmt.Print(doc)
		return nil
	}
	if err := os.WriteFile(output, []byte(doc), 0600); err != nil {
		return Logger.ErrorfAndReturn("failed to write %s: %v", output, err)
	}
	return nil
}
