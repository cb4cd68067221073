// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/runesmith/runesmith/internal/config"
	"github.com/runesmith/runesmith/internal/crawler"
	"github.com/runesmith/runesmith/internal/pipeline"
	"github.com/runesmith/runesmith/internal/provider"
	"github.com/runesmith/runesmith/internal/registry"
	"github.com/runesmith/runesmith/internal/utils"
)

const (
	configFlagName              = "config"
	configFlagShorthand         = "c"
	codePathFlagName            = "code-path"
	outputDirectoryFlagName     = "output-dir"
	blacklistFlagName           = "blacklist"
	documentTypeFlagName        = "doc-type"
	customInstructionsFlagName  = "custom-instructions"
	modelFlagName               = "model"
	providerFlagName            = "provider"
	temperatureFlagName         = "temperature"
	strictTokensFlagName        = "strict-tokens"
	copyFlagName                = "copy"
	versionFlagName             = "version"
	versionTemplate             = "runesmith version: %s\n"
	defaultPath                 = "."
	rootUse                     = "runesmith"
	rootShortDescription        = "runesmith command line interface"
	rootLongDescription         = `runesmith turns a codebase into documentation with an LLM.
It crawls source files, checks the prompt against the model's context window,
and asks a configured provider to generate or update each requested document.
Use generate to run the pipeline, extensions to preview crawled file extensions,
and models to list the supported providers and models.`
	versionFlagDescription      = "display application version"
	generateUse                 = "generate"
	generateAlias               = "g"
	generateShortDescription    = "generate documentation for a codebase (" + generateAlias + ")"
	generateLongDescription     = `Run the documentation pipeline for a codebase.
Settings come from a YAML configuration file; any flag given on the command
line overrides the corresponding file setting.`
	generateUsageExample        = `  # Run with a configuration file
  runesmith generate --config runesmith.yaml

  # Override the model and add a document type
  runesmith generate -c runesmith.yaml --model gpt-4.1 --doc-type Readme`
	extensionsUse               = "extensions [paths...]"
	extensionsAlias             = "e"
	extensionsShortDescription  = "list file extensions a crawl would visit (" + extensionsAlias + ")"
	extensionsLongDescription   = `List the distinct file extensions present under each path, applying the
same exclusions a documentation crawl applies. Use the output to decide
which extensions to blacklist.`
	modelsUse                   = "models"
	modelsAlias                 = "m"
	modelsShortDescription      = "list supported providers and models (" + modelsAlias + ")"
	configFlagDescription       = "path to the YAML configuration file"
	codePathFlagDescription     = "path to the codebase to document"
	outputDirFlagDescription    = "directory to write generated documents into"
	blacklistFlagDescription    = "file extension to exclude from the crawl"
	documentTypeFlagDescription = "documentation type to generate"
	customFlagDescription       = "extra instructions appended to every prompt"
	modelFlagDescription        = "model to generate with"
	providerFlagDescription     = "provider to generate with"
	temperatureFlagDescription  = "sampling temperature"
	strictTokensFlagDescription = "fail instead of warn when the prompt exceeds the context window"
	copyFlagDescription         = "copy generated documents to the system clipboard"
	extensionsHeaderFormat      = "%s:\n"
	extensionsEntryFormat       = "  %s\n"
	modelsHeaderFormat          = "%s:\n"
	modelsEntryFormat           = "  %s (context window %d tokens)\n"
	documentFailureFormat       = "failed %s: %v\n"
	documentSuccessFormat       = "wrote %s -> %s\n"
	runSummaryFormat            = "%d of %d documents written\n"
	allDocumentsFailedMessage   = "all requested document types failed"
	clipboardCopyErrorFormat    = "copying documents to clipboard: %w"
	copiedDocumentSeparator     = "\n\n"
)

// copyToClipboard writes text to the system clipboard. Variable so tests can
// intercept it.
var copyToClipboard = clipboard.WriteAll

// Execute runs the runesmith application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(utils.LoggerOrNop(logger))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createGenerateCommand(logger),
		createExtensionsCommand(),
		createModelsCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// generateOptions stores the generate command's flag values.
type generateOptions struct {
	configurationPath  string
	codePath           string
	outputDirectory    string
	blacklist          []string
	documentTypes      []string
	customInstructions string
	model              string
	provider           string
	temperature        float64
	strictTokens       bool
	copyOutput         bool
}

// createGenerateCommand returns the generate subcommand.
func createGenerateCommand(logger *zap.Logger) *cobra.Command {
	var options generateOptions

	generateCommand := &cobra.Command{
		Use:     generateUse,
		Aliases: []string{generateAlias},
		Short:   generateShortDescription,
		Long:    generateLongDescription,
		Example: generateUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			run, resolveError := resolveRun(command, options)
			if resolveError != nil {
				return resolveError
			}
			if validationError := run.Validate(); validationError != nil {
				return validationError
			}
			return runGeneration(command, run, options.copyOutput, logger)
		},
	}

	flagSet := generateCommand.Flags()
	flagSet.StringVarP(&options.configurationPath, configFlagName, configFlagShorthand, "", configFlagDescription)
	flagSet.StringVar(&options.codePath, codePathFlagName, "", codePathFlagDescription)
	flagSet.StringVar(&options.outputDirectory, outputDirectoryFlagName, "", outputDirFlagDescription)
	flagSet.StringArrayVar(&options.blacklist, blacklistFlagName, nil, blacklistFlagDescription)
	flagSet.StringArrayVar(&options.documentTypes, documentTypeFlagName, nil, documentTypeFlagDescription)
	flagSet.StringVar(&options.customInstructions, customInstructionsFlagName, "", customFlagDescription)
	flagSet.StringVar(&options.model, modelFlagName, "", modelFlagDescription)
	flagSet.StringVar(&options.provider, providerFlagName, "", providerFlagDescription)
	flagSet.Float64Var(&options.temperature, temperatureFlagName, 0, temperatureFlagDescription)
	flagSet.BoolVar(&options.strictTokens, strictTokensFlagName, false, strictTokensFlagDescription)
	flagSet.BoolVar(&options.copyOutput, copyFlagName, false, copyFlagDescription)
	return generateCommand
}

// resolveRun merges the configuration file, when given, with explicit flag
// overrides. A flag only overrides the file when it was set on the command
// line.
func resolveRun(command *cobra.Command, options generateOptions) (config.Run, error) {
	var run config.Run
	if options.configurationPath != "" {
		loadedRun, loadError := config.Load(options.configurationPath)
		if loadError != nil {
			return config.Run{}, loadError
		}
		run = loadedRun
	}

	flagSet := command.Flags()
	if flagSet.Changed(codePathFlagName) {
		run.CodePath = options.codePath
	}
	if flagSet.Changed(outputDirectoryFlagName) {
		run.OutputDir = options.outputDirectory
	}
	if flagSet.Changed(blacklistFlagName) {
		run.Blacklist = options.blacklist
	}
	if flagSet.Changed(documentTypeFlagName) {
		run.DocTypes = options.documentTypes
	}
	if flagSet.Changed(customInstructionsFlagName) {
		run.CustomInstructions = options.customInstructions
	}
	if flagSet.Changed(modelFlagName) {
		run.Model = options.model
	}
	if flagSet.Changed(providerFlagName) {
		run.Provider = options.provider
	}
	if flagSet.Changed(temperatureFlagName) {
		run.Temperature = options.temperature
	}
	if flagSet.Changed(strictTokensFlagName) {
		run.StrictTokens = options.strictTokens
	}
	return run, nil
}

// runGeneration executes the pipeline and reports per-document outcomes.
func runGeneration(command *cobra.Command, run config.Run, copyOutput bool, logger *zap.Logger) error {
	documentPipeline := pipeline.New(provider.NewDispatcher(logger), logger)
	runReport, runError := documentPipeline.Run(command.Context(), run)
	if runError != nil {
		return runError
	}

	outputWriter := command.OutOrStdout()
	var copiedDocuments []string
	for _, result := range runReport.Results {
		if result.Err != nil {
			fmt.Fprintf(command.ErrOrStderr(), documentFailureFormat, result.DocType, result.Err)
			continue
		}
		fmt.Fprintf(outputWriter, documentSuccessFormat, result.DocType, result.OutputPath)
		copiedDocuments = append(copiedDocuments, result.Content)
	}
	fmt.Fprintf(outputWriter, runSummaryFormat, runReport.SucceededCount(), len(runReport.Results))

	if copyOutput && len(copiedDocuments) > 0 {
		if copyError := copyToClipboard(strings.Join(copiedDocuments, copiedDocumentSeparator)); copyError != nil {
			return fmt.Errorf(clipboardCopyErrorFormat, copyError)
		}
	}
	if runReport.SucceededCount() == 0 && len(runReport.Results) > 0 {
		return fmt.Errorf(allDocumentsFailedMessage)
	}
	return nil
}

// createExtensionsCommand returns the extensions subcommand.
func createExtensionsCommand() *cobra.Command {
	extensionsCommand := &cobra.Command{
		Use:     extensionsUse,
		Aliases: []string{extensionsAlias},
		Short:   extensionsShortDescription,
		Long:    extensionsLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			return runExtensions(command, arguments)
		},
	}
	return extensionsCommand
}

// runExtensions scans the given paths concurrently and prints each path's
// extensions in input order.
func runExtensions(command *cobra.Command, paths []string) error {
	scannedExtensions := make([][]string, len(paths))
	group, groupContext := errgroup.WithContext(command.Context())
	for pathIndex, scanPath := range paths {
		group.Go(func() error {
			if contextError := groupContext.Err(); contextError != nil {
				return contextError
			}
			extensions, findError := crawler.FindExtensions(scanPath)
			if findError != nil {
				return fmt.Errorf("scanning %s: %w", scanPath, findError)
			}
			scannedExtensions[pathIndex] = extensions
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return waitError
	}

	outputWriter := command.OutOrStdout()
	for pathIndex, scanPath := range paths {
		fmt.Fprintf(outputWriter, extensionsHeaderFormat, scanPath)
		for _, extension := range scannedExtensions[pathIndex] {
			fmt.Fprintf(outputWriter, extensionsEntryFormat, extension)
		}
	}
	return nil
}

// createModelsCommand returns the models subcommand.
func createModelsCommand() *cobra.Command {
	modelsCommand := &cobra.Command{
		Use:     modelsUse,
		Aliases: []string{modelsAlias},
		Short:   modelsShortDescription,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			outputWriter := command.OutOrStdout()
			for _, providerName := range registry.SupportedProviders() {
				fmt.Fprintf(outputWriter, modelsHeaderFormat, providerName)
				for _, modelName := range registry.Models(providerName) {
					windowSize, windowError := registry.ContextWindow(providerName, modelName)
					if windowError != nil {
						return windowError
					}
					fmt.Fprintf(outputWriter, modelsEntryFormat, modelName, windowSize)
				}
			}
			return nil
		},
	}
	return modelsCommand
}
