// Package utils contains helpers shared across the runesmith tool.
package utils

// Shared filesystem and messaging constants.
const (
	// GitDirectoryName is the name of the Git repository directory, always excluded from crawling.
	GitDirectoryName = ".git"
	// GitIgnoreFileName is the name of the ignore-pattern file consulted at a crawl root.
	GitIgnoreFileName = ".gitignore"
	// NoExtensionLabel stands in for files without an extension in blacklists and extension listings.
	NoExtensionLabel = "(no extension)"
	// MarkdownFileSuffix is the suffix of every generated document file.
	MarkdownFileSuffix = ".md"
	// LoggerInitializationFailedMessageFormat reports a failure to construct the application logger.
	LoggerInitializationFailedMessageFormat = "unable to initialize logger: %w"
	// ApplicationExecutionFailedMessage reports a fatal application error.
	ApplicationExecutionFailedMessage = "application failed"
)
