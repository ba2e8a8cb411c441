package model

import "errors"

var (
	ErrMissingCityName = errors.New("city name is required")
	ErrMissingCountry  = errors.New("country is required")
	ErrMissingPosition = errors.New("position is required")
)
