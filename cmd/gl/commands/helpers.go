// Package commands implements the gl CLI commands.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
	"github.com/fivetwenty-io/gitlab-client/pkg/glclient"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	// YAML formatting.
	defaultYAMLIndent = 2

	dateFormat     = "2006-01-02"
	dateTimeFormat = "2006-01-02 15:04:05"
)

// Common static errors used throughout the commands package.
var (
	ErrTokenInputRequired = errors.New("token is required")
	ErrProjectRequired    = errors.New("project ID or path is required")
)

// CreateClient builds an API client from the resolved configuration.
func CreateClient() (gitlab.Client, error) {
	config := &gitlab.Config{
		BaseURL: viper.GetString("base-url"),
		Token:   viper.GetString("token"),
	}

	if viper.GetBool("no-cache") {
		config.Cache = gitlab.NewNoOpCache()
	}

	client, err := glclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}

	return client, nil
}

// StandardJSONRenderer creates a standard JSON encoder.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer creates a standard YAML encoder.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(defaultYAMLIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// formatDate renders a timestamp for table output.
func formatDate(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}

	return t.Format(dateFormat)
}

// formatDateTime renders a timestamp with time-of-day for detail tables.
func formatDateTime(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}

	return t.Format(dateTimeFormat)
}

// formatBool renders a boolean for table output.
func formatBool(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}
