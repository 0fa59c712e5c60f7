package macappbundler

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Package Java applications as macOS app bundles and disk images"
	MsgBundleShort     = "Assemble the .app bundle, then the disk image"
	MsgDiskImageShort  = "Package an assembled .app into a .dmg"
	MsgVerifyShort     = "Check an assembled .app bundle"
	MsgInitShort       = "Create a starter project file and Info.plist template"
	MsgTopicsShort     = "Display available documentation topics"
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"
	MsgManShort        = "Generate the man page"

	// Status messages
	MsgDryRunNotice = "DRY RUN MODE - No changes were made"
	MsgWarning      = "Warning: %s\n"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrFormat     = "invalid --format: %w"
	MsgErrNoCommand  = "no command specified"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Log the operations without touching the filesystem"
	MsgFlagConfig   = "Project file (default: macappbundler.toml in the current directory)"
	MsgFlagFormat   = "Output format: auto, term, text, json, yaml"
	MsgFlagSet      = "Override a configuration key, e.g. --set dmg.generate=true"
	MsgFlagNoDMG    = "Do not build the disk image"
	MsgFlagNoPub    = "Do not publish the disk image"
	MsgFlagApp      = "Path of the .app bundle, default from the project file"
	MsgFlagForce    = "Overwrite existing files"
	MsgFlagGroup    = "Maven group id of the application"
	MsgFlagArtifact = "Artifact id, defaults to the name"
	MsgFlagVersion  = "Application version"
	MsgFlagClass    = "Main class, for classpath applications"
	MsgFlagModule   = "Main module, for modular applications"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/bundle-long.txt
	msgBundleLongRaw string
	MsgBundleLong    = strings.TrimSpace(msgBundleLongRaw)

	//go:embed msgs/bundle-example.txt
	msgBundleExampleRaw string
	MsgBundleExample    = strings.TrimRight(msgBundleExampleRaw, "\n")

	//go:embed msgs/diskimage-long.txt
	msgDiskImageLongRaw string
	MsgDiskImageLong    = strings.TrimSpace(msgDiskImageLongRaw)

	//go:embed msgs/diskimage-example.txt
	msgDiskImageExampleRaw string
	MsgDiskImageExample    = strings.TrimRight(msgDiskImageExampleRaw, "\n")

	//go:embed msgs/verify-long.txt
	msgVerifyLongRaw string
	MsgVerifyLong    = strings.TrimSpace(msgVerifyLongRaw)

	//go:embed msgs/verify-example.txt
	msgVerifyExampleRaw string
	MsgVerifyExample    = strings.TrimRight(msgVerifyExampleRaw, "\n")

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
