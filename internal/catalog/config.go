package catalog

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/spigell/career-advisor/internal/skills"
)

// Config is the "catalog" configuration section. Every part is optional; an
// absent part falls back to the built-in defaults, a present one replaces them.
type Config struct {
	Jobs    []JobConfig             `mapstructure:"jobs" validate:"omitempty,dive"`
	Aliases map[string]string       `mapstructure:"aliases"`
	Courses map[string]CourseConfig `mapstructure:"courses" validate:"omitempty,dive"`
}

type JobConfig struct {
	Title          string   `mapstructure:"title" validate:"required,max=120"`
	Growth         string   `mapstructure:"growth" validate:"omitempty,max=32"`
	RequiredSkills []string `mapstructure:"required-skills" validate:"omitempty,dive,max=120"`
}

type CourseConfig struct {
	Title    string `mapstructure:"title" validate:"required"`
	Provider string `mapstructure:"provider"`
	Duration string `mapstructure:"duration"`
}

var validate = validator.New()

// Decode converts a raw configuration value (as returned by viper.Get) into a
// Config. A nil input decodes to nil.
func Decode(raw any) (*Config, error) {
	if raw == nil {
		return nil, nil
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding catalog config: %w", err)
	}

	return &cfg, nil
}

// Build validates cfg and builds a catalog from it. A nil config yields the
// built-in catalog.
func Build(cfg *Config) (*Catalog, error) {
	if cfg == nil {
		return Default(), nil
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating catalog config: %w", err)
	}

	aliases := skills.DefaultAliases()
	if cfg.Aliases != nil {
		aliases = cfg.Aliases
	}

	normalizer, err := skills.NewNormalizer(aliases)
	if err != nil {
		return nil, fmt.Errorf("building skill normalizer: %w", err)
	}

	jobs := DefaultJobs()
	if cfg.Jobs != nil {
		jobs = make([]Job, 0, len(cfg.Jobs))
		for _, j := range cfg.Jobs {
			jobs = append(jobs, Job{
				Title:          j.Title,
				Growth:         j.Growth,
				RequiredSkills: j.RequiredSkills,
			})
		}
	}

	courses := DefaultCourses()
	if cfg.Courses != nil {
		courses = make(map[string]Course, len(cfg.Courses))
		for skill, c := range cfg.Courses {
			courses[skill] = Course{
				Title:    strings.TrimSpace(c.Title),
				Provider: orDefault(c.Provider, defaultCourseProvider),
				Duration: orDefault(c.Duration, defaultCourseDuration),
			}
		}
	}

	return New(jobs, courses, normalizer)
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
