package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sagarc03/dataapi"
	"github.com/sagarc03/dataapi/config"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Read the document once and print it",
	Long: `Read the configured document from the store exactly like GET /data
does and print it to stdout. Useful to check credentials and bucket settings
without starting the server.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("output", "o", "json", "output format: json, yaml")
	addStoreFlags(fetchCmd.Flags())

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output != "json" && output != "yaml" {
		return fmt.Errorf("invalid output format %q (valid formats: json, yaml)", output)
	}

	service, cleanup, err := newDocumentService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	doc, err := service.Fetch(ctx)
	if err != nil {
		return describeFetchError(service.Key(), err)
	}

	return writeDocument(cmd.OutOrStdout(), doc, output)
}

func describeFetchError(key string, err error) error {
	if errors.Is(err, dataapi.ErrDecode) {
		return fmt.Errorf("object %q is not valid json: %w", key, err)
	}
	if dataapi.KindOf(err) == dataapi.KindNotFound {
		return fmt.Errorf("object %q not found: %w", key, err)
	}
	return fmt.Errorf("read object %q: %w", key, err)
}

func writeDocument(w io.Writer, doc dataapi.Document, format string) error {
	if format == "yaml" {
		var v any
		if err := json.Unmarshal(doc, &v); err != nil {
			return fmt.Errorf("decode document: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, doc, "", "  "); err != nil {
		return fmt.Errorf("format json: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}
