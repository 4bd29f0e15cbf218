package service

import (
	"fmt"
	"math/rand/v2"

	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"github.com/tejashwikalptaru/beetbox/internal/ports"
)

// NavigationStrategy computes the next or previous index within a list of
// count items. Implementations reject count <= 0 and indexes outside
// [0, count) with domain.ErrInvalidNavigationInput.
type NavigationStrategy interface {
	Next(current, count int) (int, error)
	Previous(current, count int) (int, error)
}

func checkNavigation(current, count int) error {
	if count <= 0 {
		return domain.NewValidationError("count", count,
			"must be positive", domain.ErrInvalidNavigationInput)
	}
	if current < 0 || current >= count {
		return domain.NewValidationError("current", current,
			fmt.Sprintf("must be in [0, %d)", count), domain.ErrInvalidNavigationInput)
	}
	return nil
}

// NormalStrategy walks the list in order and wraps around at both ends.
type NormalStrategy struct{}

// Next returns the following index, 0 after the last one.
func (NormalStrategy) Next(current, count int) (int, error) {
	if err := checkNavigation(current, count); err != nil {
		return 0, err
	}
	return (current + 1) % count, nil
}

// Previous returns the preceding index, count-1 before the first one.
func (NormalStrategy) Previous(current, count int) (int, error) {
	if err := checkNavigation(current, count); err != nil {
		return 0, err
	}
	return (current - 1 + count) % count, nil
}

// RandomStrategy picks a uniformly random index in both directions.
// The current index may be picked again.
type RandomStrategy struct {
	intN func(n int) int
}

// NewRandomStrategy returns a RandomStrategy drawing from intN, which must
// return a value in [0, n). A nil intN uses math/rand/v2.
func NewRandomStrategy(intN func(n int) int) *RandomStrategy {
	if intN == nil {
		intN = rand.IntN
	}
	return &RandomStrategy{intN: intN}
}

// Next returns a random index.
func (s *RandomStrategy) Next(current, count int) (int, error) {
	if err := checkNavigation(current, count); err != nil {
		return 0, err
	}
	return s.intN(count), nil
}

// Previous returns a random index.
func (s *RandomStrategy) Previous(current, count int) (int, error) {
	return s.Next(current, count)
}

// LoopingStrategy stays on the current index.
type LoopingStrategy struct{}

// Next returns current.
func (LoopingStrategy) Next(current, count int) (int, error) {
	if err := checkNavigation(current, count); err != nil {
		return 0, err
	}
	return current, nil
}

// Previous returns current.
func (LoopingStrategy) Previous(current, count int) (int, error) {
	return LoopingStrategy{}.Next(current, count)
}

// NavigationHandler binds one NavigationStrategy to the lists it moves
// through. The strategy is swapped when loop or shuffle is toggled.
type NavigationHandler struct {
	strategy NavigationStrategy
}

// NewNavigationHandler returns a handler using NormalStrategy.
func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{strategy: NormalStrategy{}}
}

// SetStrategy replaces the active strategy.
func (h *NavigationHandler) SetStrategy(s NavigationStrategy) {
	h.strategy = s
}

// Strategy returns the active strategy.
func (h *NavigationHandler) Strategy() NavigationStrategy {
	return h.strategy
}

// NextIndex delegates to the active strategy.
func (h *NavigationHandler) NextIndex(current, count int) (int, error) {
	return h.strategy.Next(current, count)
}

// PreviousIndex delegates to the active strategy.
func (h *NavigationHandler) PreviousIndex(current, count int) (int, error) {
	return h.strategy.Previous(current, count)
}

// Navigate moves the selection of list one step in direction and returns
// the new index. An empty list fails with domain.ErrEmptyList before the
// strategy is consulted, and a list without a selection fails with
// domain.ErrNoSelection. Unknown directions keep the current index.
func (h *NavigationHandler) Navigate(list ports.PlayableList, direction domain.Direction) (int, error) {
	count := list.Len()
	if count == 0 {
		return 0, domain.ErrEmptyList
	}

	current, ok := list.Selected()
	if !ok {
		return 0, domain.ErrNoSelection
	}

	next := current
	var err error
	switch direction {
	case domain.Forward:
		next, err = h.NextIndex(current, count)
	case domain.Backward:
		next, err = h.PreviousIndex(current, count)
	}
	if err != nil {
		return 0, err
	}

	list.Select(next)
	return next, nil
}
