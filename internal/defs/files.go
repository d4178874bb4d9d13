package defs

// Common file names used across the project.
const (
	// ConfigYAML is the optional site configuration file at the site root.
	ConfigYAML = "folio.yaml"

	// DotEnv is the optional environment override file at the site root.
	DotEnv = ".env"

	// ProjectsDir is the default directory holding project folders.
	ProjectsDir = "projects"

	// TemplateHTML is the default page template.
	TemplateHTML = "_template.html"

	// IndexHTML is the default output page and the default project entry point.
	IndexHTML = "index.html"

	// MetadataJSON is the default metadata side file.
	MetadataJSON = "metadata.json"
)

// Descriptor file names, checked in order inside each project folder.
const (
	MetaJSON = "meta.json"
	MetaYAML = "meta.yaml"
	MetaYML  = "meta.yml"
)

// Template tokens.
const (
	// CardsPlaceholder is replaced with the rendered project cards.
	CardsPlaceholder = "{{PROJECT_CARDS}}"

	// VersionToken is replaced with the build version when stamping is enabled.
	VersionToken = "{{BUILD_VERSION}}"
)
