package factor

import "github.com/go-playground/validator/v10"

var paramValidator = validator.New()

type noisyOrParams struct {
	LeakProb    float64 `validate:"gte=0,lte=1"`
	ProbSuccess float64 `validate:"gte=0,lte=1"`
}

type pottsParams struct {
	Alpha float64 `validate:"gt=0"`
}

func validateNoisyOrParams(leakProb, probSuccess float64) error {
	p := noisyOrParams{LeakProb: leakProb, ProbSuccess: probSuccess}
	if err := paramValidator.Struct(p); err != nil {
		return ErrParamRange
	}
	return nil
}

func validatePottsParams(alpha float64) error {
	p := pottsParams{Alpha: alpha}
	if err := paramValidator.Struct(p); err != nil {
		return ErrParamRange
	}
	return nil
}
