// Command datalist converts a stored data-list property value the way the
// rendering pipeline or the delivery API would, and prints the result as
// JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goliatone/go-datalist/internal/appconfig"
	"github.com/goliatone/go-datalist/internal/datatype"
	"github.com/goliatone/go-datalist/internal/prompt"
	"github.com/goliatone/go-datalist/internal/store/sqlite"
	"github.com/goliatone/go-datalist/pkg/content"
	"github.com/goliatone/go-datalist/pkg/datalist"
	"github.com/goliatone/go-datalist/pkg/datasource"
	"github.com/goliatone/go-datalist/pkg/deliveryapi"
	"github.com/goliatone/go-datalist/pkg/editors"
	"github.com/goliatone/go-datalist/pkg/property"
)

func main() {
	cfg, err := appconfig.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(context.Background(), os.Args[1:], cfg, os.Stdout, os.Stderr, prompt.Survey()); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	datatype string
	value    string
	delivery bool
	schema   bool
	pick     bool
	db       string
}

func parseFlags(args []string, cfg appconfig.Config, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("datalist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.datatype, "datatype", "", "data type definition file (YAML or JSON)")
	fs.StringVar(&opts.value, "value", "", "stored property value")
	fs.BoolVar(&opts.delivery, "delivery", false, "convert for the delivery API")
	fs.BoolVar(&opts.schema, "schema", false, "print the delivery API schema for the data type")
	fs.BoolVar(&opts.pick, "pick", false, "pick the value interactively from the data source items")
	fs.StringVar(&opts.db, "db", cfg.DBPath, "sqlite content database (in-memory when empty)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if strings.TrimSpace(opts.datatype) == "" {
		return options{}, fmt.Errorf("datalist: -datatype is required")
	}
	return opts, nil
}

func run(ctx context.Context, args []string, cfg appconfig.Config, stdout, stderr io.Writer, driver prompt.Driver) error {
	opts, err := parseFlags(args, cfg, stderr)
	if err != nil {
		return err
	}
	logger := cfg.Logger(stderr)

	def, err := datatype.Load(opts.datatype)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, opts.db, def)
	if err != nil {
		return err
	}
	defer closeStore()

	registry := editors.NewDefault(store, content.DefaultBuilder{})
	convOpts := []datalist.Option{datalist.WithLogger(logger), datalist.WithEditorAlias(cfg.EditorAlias)}
	conv := datalist.New(registry, convOpts...)
	converters := standardConverters(registry, convOpts...)
	datalist.Register(converters, conv)

	t := def.Property
	if opts.schema {
		doc, err := deliveryapi.Document(ctx, "", converters, t)
		if err != nil {
			return err
		}
		return writeJSON(stdout, doc)
	}

	found, ok := converters.Find(t)
	if !ok {
		return fmt.Errorf("datalist: no converter for editor %q", t.EditorAlias)
	}

	var source any = opts.value
	if opts.pick {
		picked, err := pickValue(ctx, registry, conv, t, driver)
		if err != nil {
			return err
		}
		source = picked
	}
	logger.DebugContext(ctx, "converting",
		slog.String("property", t.Alias),
		slog.Bool("delivery", opts.delivery),
	)

	var out any
	if opts.delivery {
		dc, ok := found.(property.DeliveryValueConverter)
		if !ok {
			return fmt.Errorf("datalist: converter for %q has no delivery output", t.EditorAlias)
		}
		out = property.ConvertDelivery(ctx, dc, t, source, false, false)
	} else {
		out = property.Convert(ctx, found, t, source, false)
	}
	return writeJSON(stdout, out)
}

// standardConverters is the collection a host starts from before the
// delivery-aware converter is registered.
func standardConverters(registry datalist.Registry, opts ...datalist.Option) *property.Collection {
	return property.NewCollection(datalist.NewStandard(registry, opts...))
}

// openStore picks the sqlite store when a path is given. Fixtures from the
// definition are written into whichever store is used.
func openStore(ctx context.Context, path string, def *datatype.Definition) (content.Store, func(), error) {
	if strings.TrimSpace(path) == "" {
		mem := content.NewMemoryStore()
		if err := def.Seed(ctx, datatype.MemorySeeder{Store: mem}); err != nil {
			return nil, nil, err
		}
		return mem, func() {}, nil
	}
	db, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	if err := def.Seed(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}

// pickValue offers the active data source items and encodes the choice the
// way the editor stores it.
func pickValue(ctx context.Context, registry *editors.Registry, conv *datalist.Converter, t property.Type, driver prompt.Driver) (string, error) {
	entry, ok := t.Configuration.ActiveDataSource()
	if !ok {
		return "", fmt.Errorf("datalist: %q has no data source configured", t.Alias)
	}
	source, ok := registry.DataSource(entry.Key)
	if !ok {
		return "", fmt.Errorf("datalist: data source %q is not registered", entry.Key)
	}
	lister, ok := source.(datasource.Lister)
	if !ok {
		return "", fmt.Errorf("datalist: data source %q cannot list items", entry.Key)
	}
	items, err := lister.Items(ctx, entry.Value)
	if err != nil {
		return "", err
	}

	multiple := conv.Resolve(ctx, t, false).Multiple
	values, err := prompt.Pick(ctx, driver, t.Alias, items, multiple)
	if err != nil {
		return "", err
	}
	if !multiple {
		if len(values) == 0 {
			return "", nil
		}
		return values[0], nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
