package kernel

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/smaikl/GLG-bot/internal/pkg/errs"
	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

// ErrWeightIsNotConstructed is returned when a Weight was not created via NewWeight or ParseWeight.
var ErrWeightIsNotConstructed = errs.NewValueIsRequiredError("weight must be created via NewWeight or ParseWeight")

var errNotPositive = errors.New("must be a positive finite number")

// Weight is a cargo weight in kilograms, always greater than zero.
type Weight struct {
	kg    float64
	guard guard.ConstructorGuard
}

func NewWeight(kg float64) (Weight, error) {
	if err := checkPositive(kg); err != nil {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v %w", kg, err))
	}
	return Weight{kg: kg, guard: guard.NewConstructorGuard()}, nil
}

// ParseWeight accepts user input such as "1500", "12.5" or "12,5".
func ParseWeight(raw string) (Weight, error) {
	kg, err := parseKilograms(raw)
	if err != nil {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%q is not a positive number: %w", raw, err))
	}
	return Weight{kg: kg, guard: guard.NewConstructorGuard()}, nil
}

func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}

func (w Weight) Kilograms() float64 {
	return w.kg
}

func (w Weight) String() string {
	return strconv.FormatFloat(w.kg, 'f', -1, 64)
}
