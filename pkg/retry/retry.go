package retry

// Action is a function to be performed in a retriable manner.
type Action func() error

// Retrier retries the provided action.
type Retrier interface {
	Retry(action Action) (uint, error)
}

type retrier struct {
	strategies []Strategy
}

// NewRetrier returns a Retrier bound to a fixed set of strategies. With no
// strategies the retrier tight-loops until the action succeeds.
func NewRetrier(strategies ...Strategy) Retrier {
	return &retrier{
		strategies: strategies,
	}
}

func (r *retrier) Retry(action Action) (uint, error) {
	return Retry(action, r.strategies...)
}

// Retry executes the action until it succeeds or a strategy stops it,
// returning the number of attempts made along with the final error.
//
// Strategies run in the provided order on every failure, so strategies
// that induce delays should be specified last.
func Retry(action Action, strategies ...Strategy) (uint, error) {
	for attempts := uint(1); ; attempts++ {
		err := action()
		if err == nil {
			return attempts, nil
		}

		if !shouldRetry(attempts, err, strategies) {
			return attempts, err
		}
	}
}

// Loop executes the action indefinitely, resetting the attempt counter each
// time it succeeds. It returns the final error once a strategy stops it.
func Loop(action Action, strategies ...Strategy) error {
	for attempts := uint(1); ; attempts++ {
		err := action()
		if err == nil {
			attempts = 0
			continue
		}

		if !shouldRetry(attempts, err, strategies) {
			return err
		}
	}
}

func shouldRetry(attempts uint, err error, strategies []Strategy) bool {
	for _, s := range strategies {
		if !s(attempts, err) {
			return false
		}
	}
	return true
}
