package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"arica_go/internal/adapters/observability"
	"arica_go/internal/adapters/render"
	"arica_go/internal/adapters/source"
	"arica_go/internal/app"
	"arica_go/internal/domain"
	"arica_go/internal/shared"
)

type options struct {
	source     string
	configFile string
	asJSON     bool
	width      int
	logLevel   string
}

// session is what every subcommand needs once the catalog is loaded.
type session struct {
	svc    *app.CatalogService
	labels render.Labels
	term   render.Terminal
	out    io.Writer
	asJSON bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Browse and check the Arica attractions catalog",
		Long: `catalogctl loads an attractions catalog (the bundled one, a file or a URL)
and prints categories, listings, search results and details in the terminal.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// logs go to stderr so listings stay pipeable
			log.Logger = observability.NewLoggerTo(cmd.ErrOrStderr(), "dev", opts.logLevel)
		},
	}
	f := root.PersistentFlags()
	f.StringVar(&opts.source, "source", "", "catalog file path or http(s) URL (default: bundled catalog)")
	f.StringVar(&opts.configFile, "config", "arica.yaml", "YAML file with category_labels overrides")
	f.BoolVar(&opts.asJSON, "json", false, "print JSON instead of styled text")
	f.IntVar(&opts.width, "width", 72, "card width in columns")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level")

	root.AddCommand(
		newCategoriesCmd(opts),
		newFeaturedCmd(opts),
		newCategoryCmd(opts),
		newSearchCmd(opts),
		newShowCmd(opts),
		newValidateCmd(),
	)
	return root
}

func (o *options) open(cmd *cobra.Command) (*session, error) {
	src, err := source.Open(o.source, 5, 2)
	if err != nil {
		return nil, err
	}
	svc := app.NewCatalogService(src, nil, 0)
	if err := svc.Load(cmd.Context()); err != nil {
		return nil, err
	}
	labels := render.DefaultLabels()
	fc, err := shared.LoadFile(o.configFile)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", o.configFile, err)
	}
	if fc != nil {
		labels = labels.Merge(fc.CategoryLabels)
	}
	return &session{
		svc:    svc,
		labels: labels,
		term:   render.NewTerminal(labels, o.width),
		out:    cmd.OutOrStdout(),
		asJSON: o.asJSON,
	}, nil
}

func (s *session) print(v any, text string) error {
	if s.asJSON {
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(s.out, text)
	return err
}

func (s *session) list(list []domain.Attraction) error {
	return s.print(list, s.term.Cards(list))
}

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories in document order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			cats := s.svc.Categories(s.labels.Label)
			return s.print(cats, s.term.Categories(cats))
		},
	}
}

func newFeaturedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "Show the featured attractions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			return s.list(s.svc.Filter(domain.AllCategory))
		},
	}
}

func newCategoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "category <key>",
		Short: "Show one category; " + domain.AllCategory + " shows the featured attractions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			return s.list(app.NewBrowser(s.svc, "").SelectCategory(args[0]))
		},
	}
}

func newSearchCmd(opts *options) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search names, descriptions, locations and specialties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			res := app.NewBrowser(s.svc, category).Search(cmd.Context(), args[0])
			return s.print(res, s.term.Cards(res.Attractions))
		},
	}
	cmd.Flags().StringVar(&category, "category", domain.AllCategory, "category shown for terms too short to search")
	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one attraction's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("id must be a number: %q", args[0])
			}
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			a, err := s.svc.Find(id)
			if err != nil {
				return err
			}
			return s.print(a, s.term.Detail(a))
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a catalog document against the schema and report invariant warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			c, err := source.Decode(data)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, w := range c.Validate() {
				fmt.Fprintf(out, "warning: %v\n", w)
			}
			fmt.Fprintf(out, "ok: %d categories, %d attractions, %d featured\n",
				len(c.Categories), c.Len(), len(c.Featured))
			return nil
		},
	}
}
