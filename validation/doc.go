// Package validation checks stage and pipeline configuration.
//
// Struct tag validation uses go-playground/validator; field names in
// messages come from the mapstructure tag so they match config.yml keys.
//
//	type NGramConfig struct {
//	    NgramLength int `mapstructure:"ngram_length" validate:"min=1,max=3"`
//	}
//	err := validation.Validate(cfg)
//
// Programmatic validation collects errors fluently:
//
//	v := validation.New()
//	v.Required("label", roles.Label).Unique("stage", names)
//	err := v.Validate()
package validation
