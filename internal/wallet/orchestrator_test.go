package wallet

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/AlexZinkM/paper-wallet/internal/engine/enginetest"
	"github.com/AlexZinkM/paper-wallet/internal/metrics"
	"github.com/AlexZinkM/paper-wallet/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrchestrator_PopulateScenario(t *testing.T) {
	t.Parallel()

	fake := &enginetest.Fake{Response: twoShielded}
	o := NewOrchestrator(fake, nil)
	defer o.Close()

	batch, err := o.Populate(model.GenerationRequest{Testnet: true, ZCount: 2})
	require.NoError(t, err)

	require.Equal(t, 2, batch.Len())
	records := batch.Records()
	assert.Equal(t, "zs1...", records[0].Address)
	assert.Equal(t, "zs2...", records[1].Address)
	assert.True(t, batch.Testnet())
	assert.Same(t, batch, o.Current())

	req := fake.LastRequest()
	assert.True(t, req.Testnet)
	assert.Equal(t, 2, req.ZCount)
	assert.Equal(t, 0, req.TCount)
	assert.Empty(t, req.Entropy)
}

func TestOrchestrator_RejectsOutOfRangeBeforeEngine(t *testing.T) {
	t.Parallel()

	for _, req := range []model.GenerationRequest{
		{ZCount: -1},
		{ZCount: 26},
		{TCount: -1},
		{TCount: 26},
	} {
		fake := &enginetest.Fake{Response: `[]`}
		o := NewOrchestrator(fake, nil)

		batch, err := o.Populate(req)
		require.Error(t, err)
		assert.Nil(t, batch)
		assert.ErrorIs(t, err, model.ErrOutOfRange)
		assert.Equal(t, 0, fake.GenerateCalls(), "engine must not be called for %+v", req)
	}
}

func TestOrchestrator_ZeroAddressesIsEmptyBatch(t *testing.T) {
	t.Parallel()

	fake := &enginetest.Fake{Response: `[]`}
	o := NewOrchestrator(fake, nil)
	defer o.Close()

	batch, err := o.Populate(model.GenerationRequest{})
	require.NoError(t, err)
	assert.True(t, batch.Empty())
	assert.Equal(t, 1, fake.GenerateCalls())
}

func TestOrchestrator_BatchSizeMatchesRequest(t *testing.T) {
	t.Parallel()

	for _, counts := range [][2]int{{0, 1}, {1, 0}, {3, 4}, {25, 25}} {
		a, b := counts[0], counts[1]
		var items []string
		for i := 0; i < a+b; i++ {
			items = append(items, fmt.Sprintf(`{"address":"addr%d","private_key":"key%d"}`, i, i))
		}
		fake := &enginetest.Fake{Response: "[" + strings.Join(items, ",") + "]"}
		o := NewOrchestrator(fake, nil)

		batch, err := o.Populate(model.GenerationRequest{ZCount: a, TCount: b})
		require.NoError(t, err)
		assert.Equal(t, a+b, batch.Len())
		o.Close()
	}
}

func TestOrchestrator_ReplacementZeroesPreviousBatch(t *testing.T) {
	t.Parallel()

	fake := &enginetest.Fake{Response: twoShielded}
	o := NewOrchestrator(fake, nil)
	defer o.Close()

	first, err := o.Populate(model.GenerationRequest{ZCount: 2})
	require.NoError(t, err)

	// Keep handles on the memory the first batch's secrets occupy
	var regions [][]byte
	for _, r := range first.Records() {
		b := r.PrivateKey.Bytes()
		regions = append(regions, b[:cap(b)])
	}
	raw := first.Raw().Bytes()
	regions = append(regions, raw[:cap(raw)])

	fake.Response = `[{"address":"zs3...","private_key":"sk3..."}]`
	second, err := o.Populate(model.GenerationRequest{ZCount: 1})
	require.NoError(t, err)

	for i, region := range regions {
		assert.True(t, allZero(region), "region %d still holds key bytes", i)
	}
	assert.True(t, first.Empty())
	assert.Equal(t, 1, second.Len())
}

func TestOrchestrator_CloseZeroesCurrentBatch(t *testing.T) {
	t.Parallel()

	o := NewOrchestrator(&enginetest.Fake{Response: twoShielded}, nil)
	batch, err := o.Populate(model.GenerationRequest{ZCount: 2})
	require.NoError(t, err)

	key := batch.Records()[0].PrivateKey.Bytes()
	o.Close()

	assert.True(t, allZero(key))
	assert.Nil(t, o.Current())
}

func TestOrchestrator_MalformedResponseKeepsPreviousBatch(t *testing.T) {
	t.Parallel()

	fake := &enginetest.Fake{Response: twoShielded}
	o := NewOrchestrator(fake, nil)
	defer o.Close()

	prev, err := o.Populate(model.GenerationRequest{ZCount: 2})
	require.NoError(t, err)

	fake.Response = `[{"address":"abc"}]`
	batch, err := o.Populate(model.GenerationRequest{ZCount: 1})
	require.Error(t, err)
	assert.Nil(t, batch)
	assert.True(t, model.IsParseError(err))
	assert.ErrorIs(t, err, model.ErrEngineFailure)

	assert.Same(t, prev, o.Current())
	require.Equal(t, 2, prev.Len())
	assert.True(t, prev.Records()[0].PrivateKey.EqualString("sk1..."))
	assert.Equal(t, twoShielded, string(prev.Raw().Bytes()))
}

func TestOrchestrator_EngineFailureKeepsPreviousBatch(t *testing.T) {
	t.Parallel()

	fake := &enginetest.Fake{Response: twoShielded}
	o := NewOrchestrator(fake, nil)
	defer o.Close()

	prev, err := o.Populate(model.GenerationRequest{ZCount: 2})
	require.NoError(t, err)

	fake.GenerateErr = errors.New("library crashed")
	_, err = o.Populate(model.GenerationRequest{ZCount: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrEngineFailure)
	assert.False(t, model.IsParseError(err))
	assert.Same(t, prev, o.Current())

	fake.GenerateErr = nil
	fake.Response = ""
	_, err = o.Populate(model.GenerationRequest{ZCount: 2})
	assert.ErrorIs(t, err, model.ErrEngineFailure)
	assert.Same(t, prev, o.Current())
}

func TestOrchestrator_Metrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	fake := &enginetest.Fake{Response: twoShielded}
	o := NewOrchestrator(fake, metrics.New(reg))
	defer o.Close()

	_, err := o.Populate(model.GenerationRequest{ZCount: 2})
	require.NoError(t, err)
	_, err = o.Populate(model.GenerationRequest{ZCount: 99})
	require.Error(t, err)

	expected := `
# HELP paperwallet_records_generated_total Wallet records produced by successful generations.
# TYPE paperwallet_records_generated_total counter
paperwallet_records_generated_total 2
# HELP paperwallet_current_batch_records Records in the current batch.
# TYPE paperwallet_current_batch_records gauge
paperwallet_current_batch_records 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"paperwallet_records_generated_total", "paperwallet_current_batch_records"))

	count, err := testutil.GatherAndCount(reg, "paperwallet_generations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestOrchestrator_ConcurrentReadersSeeWholeBatches(t *testing.T) {
	t.Parallel()

	fake := &enginetest.Fake{Response: twoShielded}
	o := NewOrchestrator(fake, nil)
	defer o.Close()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, err := o.Populate(model.GenerationRequest{ZCount: 2})
				assert.NoError(t, err)
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_ = o.View(func(b *Batch) error {
					if b == nil {
						return nil
					}
					for _, r := range b.Records() {
						assert.False(t, r.PrivateKey.Destroyed(), "reader observed a destroyed record")
					}
					assert.Equal(t, twoShielded, string(b.Raw().Bytes()))
					return nil
				})
			}
		}()
	}
	wg.Wait()
}
