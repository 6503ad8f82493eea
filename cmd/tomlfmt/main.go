// Command tomlfmt formats, queries, and validates TOML documents while
// preserving the style of the input file.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/styletoml/styletoml"
)

var logger = logrus.StandardLogger()

var rootCmd = &cobra.Command{
	Use:   "tomlfmt",
	Short: "tomlfmt formats and queries TOML files without disturbing their style",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var sortKeys bool

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Rewrite a TOML file in place, reformatting only where requested",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		f, err := toml.OpenFile(path)
		if err != nil {
			return err
		}
		if sortKeys {
			f.Doc = sortedCopy(f.Doc)
		}
		if err := f.Save(); err != nil {
			return err
		}
		logger.WithField("file", path).Info("formatted")
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <file> <path>",
	Short: "Print the value at a dotted path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := toml.OpenFile(args[0])
		if err != nil {
			return err
		}
		item, found := f.Doc.Get(args[1], nil)
		if !found {
			return fmt.Errorf("tomlfmt: no value at path %q", args[1])
		}
		fmt.Println(item.Text())
		return nil
	},
}

var setValue string

var setCmd = &cobra.Command{
	Use:   "set <file> <path> --value <value>",
	Short: "Set the string value at a dotted path and save the file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := toml.OpenFile(args[0])
		if err != nil {
			return err
		}
		if err := f.Doc.Set(args[1], setValue); err != nil {
			return err
		}
		if err := f.Save(); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{"file": args[0], "path": args[1]}).Info("set")
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Parse a TOML file and report the first error, if any",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := toml.OpenFile(args[0])
		if err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

func sortedCopy(doc *toml.Document) *toml.Document {
	out := toml.Emit(doc, toml.EmitOptions{SortKeys: true})
	sorted, err := toml.Parse(out)
	if err != nil {
		logger.WithError(err).Fatal("re-parsing sorted output failed")
	}
	return sorted
}

func init() {
	fmtCmd.Flags().BoolVar(&sortKeys, "sort-keys", false, "sort table keys lexicographically")
	setCmd.Flags().StringVar(&setValue, "value", "", "value to assign (required)")
	_ = setCmd.MarkFlagRequired("value")
	rootCmd.AddCommand(fmtCmd, getCmd, setCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
