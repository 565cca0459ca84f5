package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	propsCmd := &cobra.Command{Use: "properties", Short: "Property operations against a running service"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/properties", apiFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	propsCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get PROPERTY_ID",
		Short: "Get a property by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/properties/%s", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	propsCmd.AddCommand(getCmd)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a property",
		RunE: func(cmd *cobra.Command, args []string) error {
			location, _ := cmd.Flags().GetString("location")
			ptype, _ := cmd.Flags().GetString("type")
			price, _ := cmd.Flags().GetFloat64("price")
			features, _ := cmd.Flags().GetStringSlice("features")
			tags, _ := cmd.Flags().GetStringSlice("tags")
			if location == "" || ptype == "" {
				return fmt.Errorf("--location and --type required")
			}
			payload := map[string]interface{}{
				"location":     location,
				"type":         ptype,
				"nightlyPrice": price,
			}
			if len(features) > 0 {
				payload["features"] = features
			}
			if len(tags) > 0 {
				payload["tags"] = tags
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/properties", apiFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringP("location", "l", "", "City and province (required)")
	createCmd.Flags().StringP("type", "t", "", "Property type (required)")
	createCmd.Flags().Float64P("price", "p", 0, "Nightly price")
	createCmd.Flags().StringSlice("features", nil, "Feature list")
	createCmd.Flags().StringSlice("tags", nil, "Environment tags")
	propsCmd.AddCommand(createCmd)

	rootCmd.AddCommand(propsCmd)
}
