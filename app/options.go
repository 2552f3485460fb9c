package app

import (
	stderrors "errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "weathercn.app/errors"
	"weathercn.app/forecast"
	"weathercn.app/models"
)

// Options captures the parsed CLI surface for one invocation. Credential
// and path fields are overrides on top of the environment configuration.
type Options struct {
	Place          string `validate:"required"`
	Format         string `validate:"oneof=text json"`
	Detail         string `validate:"oneof=basic full"`
	HourlySteps    int    `validate:"min=1,max=360"`
	Mock           bool
	Debug          bool
	IncludeRaw     bool
	CacheDir       string
	TimeoutSeconds int `validate:"omitempty,min=1"`
	AmapKey        string
	CaiyunToken    string
}

var validate = validator.New()

// Validate rejects bad arguments before any cache or network interaction
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		var fieldErrors validator.ValidationErrors
		if stderrors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			return apperrors.NewValidationError(validationMessage(fieldErrors[0]))
		}
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

func validationMessage(fieldError validator.FieldError) string {
	switch fieldError.Field() {
	case "Place":
		return "place 不能为空"
	case "Format":
		return "format 只支持 text 或 json"
	case "Detail":
		return "detail 只支持 basic 或 full"
	case "HourlySteps":
		return "hourly-steps 必须在 1~360 之间"
	case "TimeoutSeconds":
		return "timeout 必须至少为 1 秒"
	}
	return fieldError.Error()
}

// EffectiveHourlySteps returns the hourly window actually requested:
// the flag value in full detail, the fixed 6-hour window otherwise.
func (o *Options) EffectiveHourlySteps() int {
	if o.Detail == string(models.DetailFull) {
		return o.HourlySteps
	}
	return forecast.BasicHourlySteps
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// NormalizePlace strips all whitespace, trailing punctuation and a
// trailing possessive 的 from the raw place argument.
func NormalizePlace(place string) string {
	place = whitespacePattern.ReplaceAllString(place, "")
	place = strings.TrimRight(place, "，。,.;；：:、")
	place = strings.TrimSuffix(place, "的")
	return place
}
