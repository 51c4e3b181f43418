package simulate

import "errors"

var (
	// ErrPhysicalInconsistency indicates a day whose irrigation demand could
	// not be met even from a full tank.
	ErrPhysicalInconsistency = errors.New("physically inconsistent configuration")
	// ErrNoRefillObserved indicates a run that never had to top up the tank.
	ErrNoRefillObserved = errors.New("no refill observed")
)
