package metadata

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Unknown resource type, nothing can load it. */
	ResourceTypeNone ResourceType = iota
	/** @brief Mesh font definition (TOML or YAML). */
	ResourceTypeMeshFont
	/** @brief Bitmap font resource type (AngelCode .fnt). */
	ResourceTypeBitmapFont
	/** @brief System font resource type (TrueType/OpenType). */
	ResourceTypeSystemFont
	/** @brief Text node configuration. */
	ResourceTypeTextConfig
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeMeshFont:
		return "mesh_font"
	case ResourceTypeBitmapFont:
		return "bitmap_font"
	case ResourceTypeSystemFont:
		return "system_font"
	case ResourceTypeTextConfig:
		return "text_config"
	default:
		return "none"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The type of the resource. */
	Type ResourceType
	/** @brief The resource data. */
	Data interface{}
}
