package models

import (
	"errors"
)

var (
	ErrValidation = errors.New("validation error")
	ErrEmptyID    = errors.New("record id is empty")
)
