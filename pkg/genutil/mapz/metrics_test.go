package mapz

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func newMetricsDictionary(t *testing.T, name string) *MultipleDictionary[string, int] {
	t.Helper()

	d, err := NewMultipleDictionaryWithComparers[string, int](true, StringComparer(), DefaultComparer[int](), WithMetricsName(name))
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d
}

func TestDictionaryMetrics(t *testing.T) {
	d := newMetricsDictionary(t, "test_metrics")
	d.AddMany("a", 1, 2, 3)
	d.Add("b", 4)

	values, ok := d.TryEnumerateValuesForKey("a")
	require.True(t, ok)
	d.Add("c", 5)
	_, err := enumerateAll(values)
	require.Error(t, err)

	expected := `
# HELP multidict_dictionary_keys Number of keys with at least one value
# TYPE multidict_dictionary_keys gauge
multidict_dictionary_keys{dictionary="test_metrics"} 3
# HELP multidict_dictionary_stale_enumerations_total Number of enumeration steps rejected because the dictionary changed
# TYPE multidict_dictionary_stale_enumerations_total counter
multidict_dictionary_stale_enumerations_total{dictionary="test_metrics"} 1
# HELP multidict_dictionary_values Number of key-value pairs
# TYPE multidict_dictionary_values gauge
multidict_dictionary_values{dictionary="test_metrics"} 5
`
	require.NoError(t, testutil.GatherAndCompare(
		prometheus.DefaultGatherer,
		strings.NewReader(expected),
		"multidict_dictionary_keys",
		"multidict_dictionary_values",
		"multidict_dictionary_stale_enumerations_total",
	))

	d.Clear()
	require.Equal(t, int64(0), d.GetMetrics().Keys())
	require.Equal(t, int64(0), d.GetMetrics().Values())
	require.Equal(t, int64(slotsForCapacity(8)), d.GetMetrics().CapacitySlots())
}

func TestDictionaryMetricsResizes(t *testing.T) {
	d := newMetricsDictionary(t, "test_resizes")
	for i := 0; i < 100; i++ {
		d.Add(strings.Repeat("k", i+1), i)
	}

	require.Equal(t, int64(100), d.GetMetrics().Keys())
	require.Positive(t, d.GetMetrics().Resizes())
	require.Equal(t, int64(d.hash.Capacity()), d.GetMetrics().CapacitySlots())
}

func TestDuplicateMetricsName(t *testing.T) {
	newMetricsDictionary(t, "test_duplicate")

	_, err := NewMultipleDictionaryWithComparers[string, int](true, StringComparer(), DefaultComparer[int](), WithMetricsName("test_duplicate"))
	require.ErrorIs(t, err, ErrDuplicateMetricsName)
}

func TestCloseUnregisters(t *testing.T) {
	d := newMetricsDictionary(t, "test_close")
	d.Close()
	d.Close()

	// The name can be reused once closed.
	other := newMetricsDictionary(t, "test_close")
	other.Add("a", 1)

	_, loaded := dictionaries.Load("test_close")
	require.True(t, loaded)
}

func TestCloneIsNotRegistered(t *testing.T) {
	d := newMetricsDictionary(t, "test_clone")
	d.Add("a", 1)

	clone := d.Clone()
	clone.Add("b", 2)
	require.Equal(t, int64(1), d.GetMetrics().Keys())
	require.Equal(t, int64(2), clone.GetMetrics().Keys())
	require.Empty(t, clone.metricsName)
}
