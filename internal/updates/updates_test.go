package updates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/gateway"
)

func TestMain(m *testing.M) {
	// generative-ai-go pulls in opencensus, whose stats worker starts in init.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

func TestCheckWithoutKeyIsNoOp(t *testing.T) {
	c := NewChecker(nil, nil)
	assert.False(t, c.Enabled())

	u, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, u.Skipped)
	assert.Equal(t, MessageNoAPIKey, u.Message)

	_, ok := c.Latest()
	assert.False(t, ok)
}

func TestCheckStoresLatest(t *testing.T) {
	fake := &gateway.Fake{ProviderName: gateway.Perplexity, Reply: "  The National Assembly adopted amendments on digital services.  "}
	c := NewChecker(fake, nil)

	u, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "The National Assembly adopted amendments on digital services.", u.Updates)
	assert.Equal(t, MessageChecked, u.Message)

	latest, ok := c.Latest()
	require.True(t, ok)
	assert.Equal(t, u, latest)
	assert.Equal(t, systemPrompt, fake.Calls()[0].System)
}

func TestCheckFailureKeepsPreviousUpdate(t *testing.T) {
	fake := &gateway.Fake{Reply: "first"}
	c := NewChecker(fake, nil)
	_, err := c.Check(context.Background())
	require.NoError(t, err)

	fake.Err = errors.New("rate limited")
	_, err = c.Check(context.Background())
	require.Error(t, err)

	latest, ok := c.Latest()
	require.True(t, ok)
	assert.Equal(t, "first", latest.Updates)
}

func TestSchedulerRunsChecks(t *testing.T) {
	fake := &gateway.Fake{Reply: "scheduled"}
	c := NewChecker(fake, nil)

	s, err := NewScheduler(c, "@every 1s", time.Second, nil)
	require.NoError(t, err)
	s.Start()

	assert.Eventually(t, func() bool {
		_, ok := c.Latest()
		return ok
	}, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	_, err := NewScheduler(NewChecker(nil, nil), "every tuesday", 0, nil)
	assert.Error(t, err)
}
