package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cookanything/pantry/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd(ctx, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pantry: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(ctx context.Context, stdout, stderr io.Writer) *cobra.Command {
	var opts app.Options
	opts.Stderr = stderr

	var tui app.TUIOptions
	root := &cobra.Command{
		Use:           "pantry",
		Short:         "Browse the Cook Anything Kitchen recipe directory",
		Long:          "pantry fetches the recipe list and lets you filter, sort and page through it in the terminal or a browser.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(ctx, opts, tui)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default ~/.config/pantry/config.toml)")
	root.PersistentFlags().StringVar(&opts.SourceURL, "source", "", "override the recipe source URL")
	root.Flags().StringVar(&opts.PrefsPath, "prefs", "", "path to prefs file")
	root.Flags().IntVar(&tui.Page, "page", 0, "start on this page")
	root.Flags().BoolVar(&tui.Demo, "demo", false, "show the demo banner")

	root.AddCommand(
		newServeCmd(ctx, &opts),
		newExportCmd(ctx, &opts),
		newLogsCmd(&opts),
		newVersionCmd(),
	)
	return root
}

func newServeCmd(ctx context.Context, opts *app.Options) *cobra.Command {
	var serve app.ServeOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recipe directory over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Serve(ctx, *opts, serve)
		},
	}
	cmd.Flags().StringVar(&serve.Listen, "listen", "", "listen address (default from config, 127.0.0.1:8080)")
	return cmd
}

func newExportCmd(ctx context.Context, opts *app.Options) *cobra.Command {
	var exp app.ExportOptions
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered recipe list to CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Export(ctx, *opts, exp)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d recipes to %s\n", n, exp.Out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&exp.Out, "out", "o", "", "output file (.csv or .xlsx)")
	cmd.Flags().StringVar(&exp.Category, "category", "", "only this category")
	cmd.Flags().StringVar(&exp.Search, "search", "", "match name, cuisine or tag")
	cmd.Flags().StringVar(&exp.Sort, "sort", "recent", "recent, name, cuisine or category")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newLogsCmd(opts *app.Options) *cobra.Command {
	var logs app.LogsOptions
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the pantry log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Logs(*opts, logs, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&logs.Lines, "lines", "n", 200, "number of lines")
	cmd.Flags().StringVar(&logs.Level, "level", "", "minimum level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&logs.Color, "color", false, "highlight levels")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pantry %s\n", app.Version)
		},
	}
}
