package validatorx

import (
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *gpvalidator.Validate
)

// Init builds the shared validator. Safe to call more than once.
func Init() {
	once.Do(func() {
		v = gpvalidator.New()
	})
}

// ValidateStruct checks the validate tags on a request DTO.
func ValidateStruct(s interface{}) error {
	Init()
	return v.Struct(s)
}
