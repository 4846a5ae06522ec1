package mapz

import (
	"fmt"
	"sync/atomic"

	"github.com/jzelinskie/stringz"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/puzpuzpuz/xsync/v4"

	log "github.com/authzed/multidict/internal/logging"
)

func init() {
	prometheus.MustRegister(defaultCollector)
}

const (
	promNamespace = "multidict"
	promSubsystem = "dictionary"
)

var (
	descKeys = prometheus.NewDesc(
		stringz.Join("_", promNamespace, promSubsystem, "keys"),
		"Number of keys with at least one value",
		[]string{"dictionary"},
		nil,
	)

	descValues = prometheus.NewDesc(
		stringz.Join("_", promNamespace, promSubsystem, "values"),
		"Number of key-value pairs",
		[]string{"dictionary"},
		nil,
	)

	descCapacitySlots = prometheus.NewDesc(
		stringz.Join("_", promNamespace, promSubsystem, "capacity_slots"),
		"Number of slots allocated by the backing hash table",
		[]string{"dictionary"},
		nil,
	)

	descResizesTotal = prometheus.NewDesc(
		stringz.Join("_", promNamespace, promSubsystem, "resizes_total"),
		"Number of times the backing hash table was rebuilt",
		[]string{"dictionary"},
		nil,
	)

	descStaleEnumerationsTotal = prometheus.NewDesc(
		stringz.Join("_", promNamespace, promSubsystem, "stale_enumerations_total"),
		"Number of enumeration steps rejected because the dictionary changed",
		[]string{"dictionary"},
		nil,
	)
)

// Metrics are the statistics exported for a dictionary. They may be read
// concurrently with the dictionary's owner mutating it.
type Metrics interface {
	Keys() int64
	Values() int64
	CapacitySlots() int64
	Resizes() uint64
	StaleEnumerations() uint64
}

type withMetrics interface {
	GetMetrics() Metrics
}

// tableStats are maintained by a Hash.
type tableStats struct {
	elements          atomic.Int64
	capacity          atomic.Int64
	resizes           atomic.Uint64
	staleEnumerations atomic.Uint64
}

// dictionaryStats are maintained by a MultipleDictionary. The table stats
// outlive any single table, since Clear replaces the table.
type dictionaryStats struct {
	table  tableStats
	values atomic.Int64
}

func (ds *dictionaryStats) Keys() int64               { return ds.table.elements.Load() }
func (ds *dictionaryStats) Values() int64             { return ds.values.Load() }
func (ds *dictionaryStats) CapacitySlots() int64      { return ds.table.capacity.Load() }
func (ds *dictionaryStats) Resizes() uint64           { return ds.table.resizes.Load() }
func (ds *dictionaryStats) StaleEnumerations() uint64 { return ds.table.staleEnumerations.Load() }

var dictionaries = xsync.NewMap[string, withMetrics]()

func registerDictionary(name string, d withMetrics) error {
	if _, loaded := dictionaries.LoadOrStore(name, d); loaded {
		return fmt.Errorf("%w: %s", ErrDuplicateMetricsName, name)
	}

	log.Debug().Str("dictionary", name).Msg("registered dictionary metrics")
	return nil
}

func unregisterDictionary(name string) {
	dictionaries.Delete(name)
}

var (
	defaultCollector collector

	_ prometheus.Collector = (*collector)(nil)
	_ Metrics              = (*dictionaryStats)(nil)
)

type collector struct{}

func (c collector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(c, ch)
}

func (c collector) Collect(ch chan<- prometheus.Metric) {
	dictionaries.Range(func(dictionaryName string, d withMetrics) bool {
		metrics := d.GetMetrics()
		ch <- prometheus.MustNewConstMetric(descKeys, prometheus.GaugeValue, float64(metrics.Keys()), dictionaryName)
		ch <- prometheus.MustNewConstMetric(descValues, prometheus.GaugeValue, float64(metrics.Values()), dictionaryName)
		ch <- prometheus.MustNewConstMetric(descCapacitySlots, prometheus.GaugeValue, float64(metrics.CapacitySlots()), dictionaryName)
		ch <- prometheus.MustNewConstMetric(descResizesTotal, prometheus.CounterValue, float64(metrics.Resizes()), dictionaryName)
		ch <- prometheus.MustNewConstMetric(descStaleEnumerationsTotal, prometheus.CounterValue, float64(metrics.StaleEnumerations()), dictionaryName)
		return true
	})
}
