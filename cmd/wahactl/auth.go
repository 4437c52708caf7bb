package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/waha-client/pkg/waha"
)

func (c *cli) authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Pair a session with an account",
	}
	cmd.AddCommand(c.authQRCmd(), c.authRequestCodeCmd())
	return cmd
}

func (c *cli) authQRCmd() *cobra.Command {
	var (
		name   string
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Fetch the pairing QR code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := c.ctrl.GetQR(cmd.Context(), name, waha.QRFormat(format))
			if err != nil {
				return err
			}
			if out != "" {
				if err := os.WriteFile(out, body, 0o644); err != nil {
					return fmt.Errorf("write qr: %w", err)
				}
				return c.printJSON(map[string]any{"name": name, "file": out, "bytes": len(body)})
			}
			_, err = c.out.Write(body)
			return err
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", waha.DefaultSessionName, "session name")
	cmd.Flags().StringVar(&format, "format", string(waha.QRFormatImage), "qr format: image or raw")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the QR code to a file instead of stdout")
	return cmd
}

func (c *cli) authRequestCodeCmd() *cobra.Command {
	var (
		name   string
		phone  string
		method string
	)
	cmd := &cobra.Command{
		Use:   "request-code",
		Short: "Request a phone pairing code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := c.ctrl.RequestCode(cmd.Context(), name, phone, method)
			if err != nil {
				return err
			}
			if json.Valid(body) {
				return c.printJSON(json.RawMessage(body))
			}
			_, err = c.out.Write(body)
			return err
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", waha.DefaultSessionName, "session name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number to pair, digits only")
	cmd.Flags().StringVar(&method, "method", "", "delivery method for the code")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}
