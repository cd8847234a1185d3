package slice

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Unrestricted(t *testing.T) {
	cases := []struct {
		text string
		n    int
	}{
		{"", 3},
		{"", 5},
		{":", 5},
		{"::", 5},
		{"2", 0},
		{"::-1", 0},
		{"1:3", 0},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q/%d", tc.text, tc.n), func(t *testing.T) {
			indexes, err := Resolve(tc.text, tc.n)
			require.NoError(t, err)
			assert.Nil(t, indexes)
		})
	}
}

func TestResolve_Malformed(t *testing.T) {
	cases := []struct {
		text    string
		wantErr error
		message string
	}{
		{"1:2:3:4", ErrInvalidFormat, "Illegal slice argument, expected format is i:j:k"},
		{"1:2::4", ErrInvalidFormat, "Illegal slice argument, expected format is i:j:k"},
		{":::4", ErrInvalidFormat, "Illegal slice argument, expected format is i:j:k"},
		{":::", ErrInvalidFormat, "Illegal slice argument, expected format is i:j:k"},
		{"a:2", ErrInvalidFormat, "Illegal slice argument, expected format is i:j:k"},
		{"1:2:0", ErrZeroStep, "Illegal slice argument, k cannot be zero"},
		{"::0", ErrZeroStep, "Illegal slice argument, k cannot be zero"},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			for _, n := range []int{0, 2, 10} {
				indexes, err := Resolve(tc.text, n)
				require.Error(t, err)
				assert.Nil(t, indexes)
				assert.EqualError(t, err, tc.message)
				assert.ErrorIs(t, err, ErrMalformedDescriptor)
				assert.ErrorIs(t, err, tc.wantErr)
				assert.True(t, IsMalformed(err))

				var descErr *DescriptorError
				require.True(t, errors.As(err, &descErr))
				assert.Equal(t, tc.text, descErr.Text)
			}
		})
	}
}

func TestResolve_PositiveDefaults(t *testing.T) {
	cases := []struct {
		text string
		n    int
		want []int
	}{
		{"::2", 5, []int{0, 2, 4}},
		{":5", 7, []int{0, 1, 2, 3, 4}},
		{":5:", 7, []int{0, 1, 2, 3, 4}},
		{":5:2", 7, []int{0, 2, 4}},
		{"1", 5, []int{1, 2, 3, 4}},
		{"2:", 5, []int{2, 3, 4}},
		{"2::", 5, []int{2, 3, 4}},
		{":2", 5, []int{0, 1}},
		{"2::2", 7, []int{2, 4, 6}},
		{"2:5:", 7, []int{2, 3, 4}},
	}
	runScenarios(t, cases)
}

func TestResolve_NegativeDefaults(t *testing.T) {
	cases := []struct {
		text string
		n    int
		want []int
	}{
		{"::-1", 5, []int{4, 3, 2, 1, 0}},
		{"::-2", 5, []int{4, 2, 0}},
		{"-2:10", 10, []int{8, 9}},
		{"-1", 5, []int{4}},
	}
	runScenarios(t, cases)
}

func TestResolve_PositiveSlice(t *testing.T) {
	cases := []struct {
		text string
		n    int
		want []int
	}{
		{"0:7:3", 7, []int{0, 3, 6}},
		{"0:7:2", 5, []int{0, 2, 4}},
		{"4:3:1", 7, []int{}},
		{"0:100", 3, []int{0, 1, 2}},
		{"-10:2", 5, []int{0, 1}},
		{"-10::3", 5, []int{1, 4}},
		{"7:", 5, []int{}},
	}
	runScenarios(t, cases)
}

func TestResolve_NegativeSlice(t *testing.T) {
	cases := []struct {
		text string
		n    int
		want []int
	}{
		{"-1:-4:-1", 6, []int{5, 4, 3}},
		{"-1:-5:-2", 6, []int{5, 3}},
		{"-3:3:-1", 10, []int{7, 6, 5, 4}},
		{"1:4:-1", 6, []int{}},
		{"10::-1", 5, []int{4, 3, 2, 1, 0}},
		{"10::-2", 5, []int{4, 2, 0}},
		{":-100:-1", 3, []int{2, 1, 0}},
	}
	runScenarios(t, cases)
}

func runScenarios(t *testing.T, cases []struct {
	text string
	n    int
	want []int
}) {
	t.Helper()
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q/%d", tc.text, tc.n), func(t *testing.T) {
			indexes, err := Resolve(tc.text, tc.n)
			require.NoError(t, err)
			require.NotNil(t, indexes)
			assert.Equal(t, tc.want, indexes)
		})
	}
}

func TestResolve_BoundsAndMonotonicity(t *testing.T) {
	fields := []string{"", "0", "1", "3", "-1", "-3", "-8", "8", "20", "-20"}
	steps := []string{"", "1", "2", "3", "-1", "-2", "-5"}

	for n := 0; n <= 9; n++ {
		for _, start := range fields {
			for _, stop := range fields {
				for _, step := range steps {
					text := start + ":" + stop + ":" + step
					indexes, err := Resolve(text, n)
					require.NoError(t, err, text)
					if indexes == nil {
						continue
					}

					descending := step != "" && step[0] == '-'
					for i, idx := range indexes {
						assert.GreaterOrEqual(t, idx, 0, "%s n=%d", text, n)
						assert.Less(t, idx, n, "%s n=%d", text, n)
						if i == 0 {
							continue
						}
						if descending {
							assert.Less(t, idx, indexes[i-1], "%s n=%d", text, n)
						} else {
							assert.Greater(t, idx, indexes[i-1], "%s n=%d", text, n)
						}
					}
				}
			}
		}
	}
}

func TestResolve_ExtremeValues(t *testing.T) {
	runScenarios(t, []struct {
		text string
		n    int
		want []int
	}{
		{"1::9223372036854775807", 5, []int{1}},
		{"::9223372036854775807", 5, []int{0}},
		{"-9223372036854775808::9223372036854775807", 5, []int{4}},
		{"-9223372036854775807:9223372036854775807", 5, []int{0, 1, 2, 3, 4}},
		{"3:1:-9223372036854775807", 5, []int{3}},
		{"::-9223372036854775808", 5, []int{4}},
		{"9223372036854775807::-2", 5, []int{3, 1}},
		{"9223372036854775807::-9223372036854775807", 5, []int{0}},
		{"9223372036854775807", 5, []int{}},
		{":-9223372036854775808", 5, []int{}},
		{"-9223372036854775808:-9223372036854775808:-1", 5, []int{}},
	})
}

func TestResolve_ExtremeValuesStayInBounds(t *testing.T) {
	extremes := []string{
		strconv.Itoa(math.MaxInt),
		strconv.Itoa(-math.MaxInt),
		strconv.Itoa(math.MinInt),
	}
	fields := append([]string{"", "2", "-2"}, extremes...)
	steps := append([]string{"", "1", "-1", "2", "-3"}, extremes...)

	for n := 0; n <= 6; n++ {
		for _, start := range fields {
			for _, stop := range fields {
				for _, step := range steps {
					text := start + ":" + stop + ":" + step
					var indexes []int
					require.NotPanics(t, func() {
						var err error
						indexes, err = Resolve(text, n)
						require.NoError(t, err, text)
					}, text)

					descending := step != "" && step[0] == '-'
					for i, idx := range indexes {
						assert.GreaterOrEqual(t, idx, 0, "%s n=%d", text, n)
						assert.Less(t, idx, n, "%s n=%d", text, n)
						if i == 0 {
							continue
						}
						if descending {
							assert.Less(t, idx, indexes[i-1], "%s n=%d", text, n)
						} else {
							assert.Greater(t, idx, indexes[i-1], "%s n=%d", text, n)
						}
					}
				}
			}
		}
	}
}

func TestResolve_Idempotent(t *testing.T) {
	first, err := Resolve("-1:-5:-2", 6)
	require.NoError(t, err)
	second, err := Resolve("-1:-5:-2", 6)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				indexes, err := Resolve("-3:3:-1", 10)
				assert.NoError(t, err)
				assert.Equal(t, []int{7, 6, 5, 4}, indexes)
			}
		}()
	}
	wg.Wait()
}

func TestParse(t *testing.T) {
	d, err := Parse("2:5")
	require.NoError(t, err)
	require.NotNil(t, d.Start)
	require.NotNil(t, d.Stop)
	assert.Nil(t, d.Step)
	assert.Equal(t, 2, *d.Start)
	assert.Equal(t, 5, *d.Stop)
	assert.False(t, d.IsUnrestricted())

	d, err = Parse("::")
	require.NoError(t, err)
	assert.True(t, d.IsUnrestricted())
	assert.Nil(t, d.Indexes(4))

	d, err = Parse("3")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, d.Indexes(5))
	assert.Equal(t, []int{3, 4, 5}, d.Indexes(6))
}
