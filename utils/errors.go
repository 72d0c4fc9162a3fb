package utils

import "errors"

// RunAndWrapOnError runs the given function and joins its error, if any, with the
// provided error.
func RunAndWrapOnError(runnable func() error, existingErr error) error {
	if runnable == nil {
		return existingErr
	}

	if runErr := runnable(); runErr != nil {
		if existingErr == nil {
			return runErr
		}
		return errors.Join(existingErr, runErr)
	}
	return existingErr
}
