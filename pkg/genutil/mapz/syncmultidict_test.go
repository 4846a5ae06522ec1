package mapz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestSyncMultipleDictionary(t *testing.T) {
	smd := NewSyncMultipleDictionary(NewMultipleDictionary[string, string](false))

	require.False(t, smd.Add("foo", "1"))
	require.False(t, smd.Add("foo", "2"))
	require.False(t, smd.Add("bar", "1"))

	require.True(t, smd.Add("foo", "1"))
	require.Equal(t, 2, smd.CountValues("foo"))

	require.True(t, smd.Remove("foo", "1"))
	require.False(t, smd.Contains("foo", "1"))

	require.False(t, smd.Add("foo", "1"))
	require.True(t, smd.Add("foo", "2"))

	snapshot := smd.Snapshot()
	require.True(t, smd.RemoveKey("foo"))
	require.False(t, smd.ContainsKey("foo"))
	require.True(t, snapshot.Has("foo"))
	require.Equal(t, 2, snapshot.CountOf("foo"))

	smd.Clear()
	require.Equal(t, 0, smd.Len())
	require.Equal(t, 2, snapshot.Len())
}

func TestSyncMultipleDictionaryConcurrentWriters(t *testing.T) {
	smd := NewSyncMultipleDictionary(NewMultipleDictionary[int, int](true))

	const writers = 8
	const perWriter = 500

	var g errgroup.Group
	for w := 0; w < writers; w++ {
		g.Go(func() error {
			for i := 0; i < perWriter; i++ {
				smd.Add(i%10, w)
				if i%50 == 0 {
					_ = smd.Keys()
					if _, ok := smd.Get(i % 10); !ok {
						return fmt.Errorf("key %d missing after add", i%10)
					}
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	require.Equal(t, 10, smd.Len())
	require.Equal(t, writers*perWriter, smd.TotalCount())

	for key := 0; key < 10; key++ {
		values, ok := smd.Get(key)
		require.True(t, ok, fmt.Sprintf("key %d", key))
		require.Len(t, values, writers*perWriter/10)
	}

	smd.AddMany(100, 1, 2, 3)
	require.Equal(t, 3, smd.CountValues(100))
}
