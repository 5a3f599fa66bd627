package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/neuronlabs/viewimport/config"
	"github.com/neuronlabs/viewimport/dictionary"
	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/importer"
	"github.com/neuronlabs/viewimport/log"
	"github.com/neuronlabs/viewimport/qname"
	"github.com/neuronlabs/viewimport/repository"
	"github.com/neuronlabs/viewimport/view"
)

func newImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Imports the view document into the node store",
		Long: `Imports the view document into the node store. The document is read from the
standard input if the file is '-'.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
	flags := importCmd.Flags()
	flags.StringSliceP("model", "m", nil, "additional dictionary model files (comma separated)")
	flags.String("driver", "", "node store driver name")
	flags.String("store", "", "node store reference i.e. 'workspace://SpacesStore'")
	flags.String("dsn", "", "node store connection url")
	flags.Bool("strict", false, "reject the repeated property values not declared as the collection")
	flags.String("uuid-binding", "", "binding of the imported node ids. Possible values: create_new, remove_existing, replace_existing, update_existing, throw_on_collision")
	flags.StringSliceP("exclude", "x", nil, "prefixed names of the types and aspects not to import (comma separated)")
	return importCmd
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err = applyImportFlags(cmd, cfg); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	registry, err := loadDictionary(cfg)
	if err != nil {
		return err
	}

	store, err := repository.Open(ctx, cfg.Repository)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Errorf("Closing store failed: %v", err)
		}
	}()

	options, err := importer.ConfigOptions(cfg.Importer, registry.Namespaces())
	if err != nil {
		return err
	}
	summary := &importer.Summary{}
	imp, err := importer.New(ctx, store, registry, append(options, importer.WithProgress(summary))...)
	if err != nil {
		return err
	}

	r, err := openInput(cmd, args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	if err = view.NewParser(registry, view.ConfigOptions(cfg.Importer)...).Parse(r, imp); err != nil {
		return err
	}
	log.Infof("Imported view: '%s' into: '%s'", args[0], cfg.Repository.Store)
	fmt.Fprintln(cmd.OutOrStdout(), summary.String())
	return nil
}

// applyImportFlags overwrites the configuration values with the flags set explicitly.
func applyImportFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("model") {
		models, err := flags.GetStringSlice("model")
		if err != nil {
			return err
		}
		cfg.Dictionary.ModelFiles = append(cfg.Dictionary.ModelFiles, models...)
	}
	if flags.Changed("driver") {
		if cfg.Repository.Driver, err = flags.GetString("driver"); err != nil {
			return err
		}
	}
	if flags.Changed("store") {
		if cfg.Repository.Store, err = flags.GetString("store"); err != nil {
			return err
		}
	}
	if flags.Changed("dsn") {
		if cfg.Repository.RawURL, err = flags.GetString("dsn"); err != nil {
			return err
		}
	}
	if flags.Changed("strict") {
		if cfg.Importer.StrictPropertyValues, err = flags.GetBool("strict"); err != nil {
			return err
		}
	}
	if flags.Changed("uuid-binding") {
		if cfg.Importer.UUIDBinding, err = flags.GetString("uuid-binding"); err != nil {
			return err
		}
	}
	if flags.Changed("exclude") {
		excluded, err := flags.GetStringSlice("exclude")
		if err != nil {
			return err
		}
		cfg.Importer.ExcludedClasses = append(cfg.Importer.ExcludedClasses, excluded...)
	}
	return config.Validate(cfg)
}

// loadDictionary creates the registry with the built in and the configured models.
func loadDictionary(cfg *config.Config) (*dictionary.Registry, error) {
	var namespaces *qname.Namespaces
	if len(cfg.Namespaces) > 0 {
		namespaces = qname.NewNamespaces(cfg.Namespaces)
	}
	registry := dictionary.NewRegistry(namespaces)

	models, err := dictionary.DefaultModels()
	if err != nil {
		return nil, err
	}
	for _, path := range cfg.Dictionary.ModelFiles {
		model, err := dictionary.ReadModelFile(path)
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}
	if err = registry.RegisterModels(models...); err != nil {
		return nil, err
	}
	return registry, nil
}

func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, class.ImportRead, "opening view document: '%s' failed", name)
	}
	return f, nil
}
