package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/beetbox/internal/adapter/ui/listmodel"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
	"pgregory.net/rapid"
)

func allStrategies() map[string]NavigationStrategy {
	return map[string]NavigationStrategy{
		"normal":  NormalStrategy{},
		"random":  NewRandomStrategy(nil),
		"looping": LoopingStrategy{},
	}
}

func TestNormalStrategy_Wraparound(t *testing.T) {
	s := NormalStrategy{}

	next, err := s.Next(4, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, next)

	prev, err := s.Previous(0, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, prev)

	next, err = s.Next(1, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, next)
}

func TestStrategies_RejectInvalidInput(t *testing.T) {
	cases := []struct {
		name           string
		current, count int
	}{
		{"zero count", 0, 0},
		{"negative count", 0, -3},
		{"negative index", -1, 3},
		{"index at count", 3, 3},
		{"index past count", 9, 3},
	}

	for name, s := range allStrategies() {
		for _, tc := range cases {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				_, err := s.Next(tc.current, tc.count)
				assert.ErrorIs(t, err, domain.ErrInvalidNavigationInput)

				_, err = s.Previous(tc.current, tc.count)
				assert.ErrorIs(t, err, domain.ErrInvalidNavigationInput)

				var verr *domain.ValidationError
				assert.ErrorAs(t, err, &verr)
			})
		}
	}
}

func TestStrategies_SingleItem(t *testing.T) {
	for name, s := range allStrategies() {
		t.Run(name, func(t *testing.T) {
			next, err := s.Next(0, 1)
			require.NoError(t, err)
			assert.Equal(t, 0, next)

			prev, err := s.Previous(0, 1)
			require.NoError(t, err)
			assert.Equal(t, 0, prev)
		})
	}
}

func TestNormalStrategy_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 10_000).Draw(t, "count")
		i := rapid.IntRange(0, count-1).Draw(t, "i")
		s := NormalStrategy{}

		next, err := s.Next(i, count)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		back, err := s.Previous(next, count)
		if err != nil {
			t.Fatalf("previous: %v", err)
		}
		if back != i {
			t.Fatalf("previous(next(%d)) = %d with count %d", i, back, count)
		}
	})
}

func TestLoopingStrategy_Identity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 10_000).Draw(t, "count")
		i := rapid.IntRange(0, count-1).Draw(t, "i")
		s := LoopingStrategy{}

		next, _ := s.Next(i, count)
		prev, _ := s.Previous(i, count)
		if next != i || prev != i {
			t.Fatalf("looping moved from %d to next=%d prev=%d", i, next, prev)
		}
	})
}

func TestRandomStrategy_InRange(t *testing.T) {
	s := NewRandomStrategy(nil)
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 500).Draw(t, "count")
		i := rapid.IntRange(0, count-1).Draw(t, "i")

		for range 50 {
			next, err := s.Next(i, count)
			if err != nil || next < 0 || next >= count {
				t.Fatalf("next(%d, %d) = %d, %v", i, count, next, err)
			}
			prev, err := s.Previous(i, count)
			if err != nil || prev < 0 || prev >= count {
				t.Fatalf("previous(%d, %d) = %d, %v", i, count, prev, err)
			}
		}
	})
}

func TestRandomStrategy_MayRepeatCurrent(t *testing.T) {
	s := NewRandomStrategy(func(n int) int { return 1 })

	next, err := s.Next(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, next, "the current index is not excluded")
}

func newList(tracks ...domain.Track) *listmodel.List {
	l := listmodel.New("")
	l.Append(tracks...)
	return l
}

func TestNavigationHandler_Navigate(t *testing.T) {
	tests := []struct {
		name      string
		direction domain.Direction
		want      int
	}{
		{"forward", domain.Forward, 2},
		{"backward", domain.Backward, 0},
		{"unknown keeps index", domain.Direction("sideways"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewNavigationHandler()
			list := newList("A", "B", "C")
			list.Select(1)

			idx, err := h.Navigate(list, tt.direction)
			require.NoError(t, err)
			assert.Equal(t, tt.want, idx)

			sel, ok := list.Selected()
			require.True(t, ok)
			assert.Equal(t, tt.want, sel)
		})
	}
}

func TestNavigationHandler_EmptyList(t *testing.T) {
	h := NewNavigationHandler()

	_, err := h.Navigate(newList(), domain.Forward)

	assert.ErrorIs(t, err, domain.ErrEmptyList)
}

func TestNavigationHandler_NoSelection(t *testing.T) {
	h := NewNavigationHandler()
	list := newList("A", "B")

	for _, dir := range []domain.Direction{domain.Forward, domain.Backward} {
		_, err := h.Navigate(list, dir)
		assert.ErrorIs(t, err, domain.ErrNoSelection)
	}
	_, ok := list.Selected()
	assert.False(t, ok, "selection is left alone")
}

func TestNavigationHandler_SetStrategy(t *testing.T) {
	h := NewNavigationHandler()
	assert.IsType(t, NormalStrategy{}, h.Strategy())

	h.SetStrategy(LoopingStrategy{})
	list := newList("A", "B", "C")
	list.Select(2)

	idx, err := h.Navigate(list, domain.Forward)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}
