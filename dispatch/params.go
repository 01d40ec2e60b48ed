package dispatch

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedParam = errors.New("unexpected parameter")
	ErrMissingParam    = errors.New("missing parameter")
)

// ParamAssertion checks the [Param] at position pos of an emission's parameter list.
type ParamAssertion func(pos int, p Param) error

// IsType asserts that a [Param] is a non-nil T.
func IsType[T any]() ParamAssertion {
	return func(pos int, p Param) error {
		if p == nil {
			return fmt.Errorf("%w: parameter %d is nil", ErrMissingParam, pos)
		}
		if _, ok := p.(T); !ok {
			var expected T
			return fmt.Errorf("%w: parameter %d: expected %T, but got %T", ErrUnexpectedParam, pos, expected, p)
		}
		return nil
	}
}

// AnyPass succeeds if any of the assertions succeed.
// This is useful when a payload may be given by value or by pointer.
func AnyPass(assertions ...ParamAssertion) ParamAssertion {
	return func(pos int, p Param) error {
		errs := make([]error, 0, len(assertions))
		for _, assertion := range assertions {
			err := assertion(pos, p)
			if err == nil {
				return nil
			}
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	}
}

// AssertAndStore asserts that the [Param] is a non-nil T, and stores it in target.
func AssertAndStore[T any](target *T) ParamAssertion {
	isType := IsType[T]()
	return func(pos int, p Param) error {
		if target == nil {
			return fmt.Errorf("target for parameter %d is a nil pointer", pos)
		}
		if err := isType(pos, p); err != nil {
			return err
		}
		*target = p.(T)
		return nil
	}
}

// PayloadSpec checks a full parameter list given to [Dispatcher.Emit].
type PayloadSpec func(params []Param) error

// Payload creates a [PayloadSpec] expecting exactly one [Param] per assertion, each checked by the assertion at the same position.
// Payload with no assertions expects no parameters.
func Payload(assertions ...ParamAssertion) PayloadSpec {
	return func(params []Param) error {
		switch {
		case len(params) < len(assertions):
			return fmt.Errorf("%w: expected %d parameters, got %d", ErrMissingParam, len(assertions), len(params))
		case len(params) > len(assertions):
			return fmt.Errorf("%w: expected %d parameters, got %d", ErrUnexpectedParam, len(assertions), len(params))
		}
		var errs []error
		for i, assertion := range assertions {
			if err := assertion(i, params[i]); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}

// MapParam stores the single payload of an emission in target.
func MapParam[T any](target *T, params []Param) error {
	return Payload(AssertAndStore(target))(params)
}
