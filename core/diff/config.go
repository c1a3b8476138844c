package diff

// Config holds the comparison defaults.
type Config struct {
	// Locale is the collation used for text keys ("binary" for code point order).
	// Runs reading a table default to "binary" instead.
	Locale string `mapstructure:"locale" default:"en-US"`
	// XYTolerance is the coordinate tolerance for shape equality.
	XYTolerance float64 `mapstructure:"xy_tolerance" default:"0.001"`
	// OIDField is the object id field of datasets that do not declare a primary key.
	OIDField string `mapstructure:"oid_field" default:"OBJECTID"`
	// GeometryField is the name of the shape field in source datasets.
	GeometryField string `mapstructure:"geometry_field" default:"SHAPE"`
	// Output is the default output handle.
	Output string `mapstructure:"output" default:"db:Differences"`
	// PageSize is the number of rows fetched per query from table datasets.
	PageSize int `mapstructure:"page_size" default:"1000"`
	// PublishOnSuccess writes table outputs under a temporary name and renames
	// them once the run has finished.
	PublishOnSuccess bool `mapstructure:"publish_on_success" default:"true"`
}
